package person

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// VehiclePair 一对车辆ID（无序，A < B）
type VehiclePair struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
}

func newVehiclePair(i, j int32) VehiclePair {
	if i > j {
		i, j = j, i
	}
	return VehiclePair{A: i, B: j}
}

// detectPedestrianCollisions 行人-车辆碰撞检测
// 功能：找出本步被车辆撞到的行人
// 参数：pedestrians-在场行人，vehicles-在场车辆
// 返回：被撞行人（每个行人至多出现一次，命中第一辆车即停止检查）
// 说明：只移除行人，不移除车辆
func detectPedestrianCollisions(pedestrians []*Pedestrian, vehicles []*Vehicle) (struck []*Pedestrian) {
	for _, p := range pedestrians {
		for _, v := range vehicles {
			if v.pedestrianZone().ContainsPoint(p.pos) {
				log.Debugf("pedestrian %d struck by vehicle %d", p.id, v.id)
				struck = append(struck, p)
				break
			}
		}
	}
	return
}

// vehicleCollisionTracker 车辆-车辆碰撞检测（跨步去重）
// 功能：维护上一步处于重叠状态的车辆对集合，只在重叠开始的那一步计数
// 更新规则：next_active = overlapping，new_events = overlapping - previous_active
type vehicleCollisionTracker struct {
	active map[VehiclePair]struct{}
}

func newVehicleCollisionTracker() *vehicleCollisionTracker {
	return &vehicleCollisionTracker{active: make(map[VehiclePair]struct{})}
}

// detect 检测本步重叠的车辆对并返回新发生的碰撞
// 参数：vehicles-在场车辆
// 返回：本步新开始重叠的车辆对
func (t *vehicleCollisionTracker) detect(vehicles []*Vehicle) (onsets []VehiclePair) {
	current := make(map[VehiclePair]struct{})
	for i := 0; i < len(vehicles); i++ {
		bi := vehicles[i].body()
		for j := i + 1; j < len(vehicles); j++ {
			if !bi.OverlapWithCircle(vehicles[j].body()) {
				continue
			}
			pair := newVehiclePair(vehicles[i].id, vehicles[j].id)
			current[pair] = struct{}{}
			if _, ok := t.active[pair]; !ok {
				log.Debugf("vehicle collision onset %d-%d", pair.A, pair.B)
				onsets = append(onsets, pair)
			}
		}
	}
	t.active = current
	return
}

// Active 当前处于重叠状态的车辆对（排序后返回）
func (t *vehicleCollisionTracker) Active() []VehiclePair {
	pairs := lo.Keys(t.active)
	slices.SortFunc(pairs, func(a, b VehiclePair) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return pairs
}
