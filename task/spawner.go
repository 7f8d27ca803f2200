package task

import (
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
)

// 浮点累加误差容限，避免整数倍间隔的事件因舍入推迟一步
const timeEpsilon = 1e-9

// spawnKind 生成事件类型
type spawnKind int

const (
	spawnVehicle spawnKind = iota
	spawnPedestrian
)

func (k spawnKind) String() string {
	switch k {
	case spawnVehicle:
		return "vehicle"
	case spawnPedestrian:
		return "pedestrian"
	default:
		return "unknown"
	}
}

// spawner 周期生成调度器
// 功能：按触发时间排列各类生成事件，每个事件触发后以固定间隔重新入队
// 说明：首次触发在开始后一个间隔处；同一时刻的多个事件按入队顺序触发
type spawner struct {
	queue     *container.PriorityQueue[spawnKind]
	intervals map[spawnKind]float64
}

func newSpawner(vehicleInterval, pedestrianInterval float64) *spawner {
	s := &spawner{
		queue: container.NewPriorityQueue[spawnKind](),
		intervals: map[spawnKind]float64{
			spawnVehicle:    vehicleInterval,
			spawnPedestrian: pedestrianInterval,
		},
	}
	s.queue.HeapPush(spawnVehicle, vehicleInterval)
	s.queue.HeapPush(spawnPedestrian, pedestrianInterval)
	return s
}

// due 弹出所有在时刻t之前（含）到期的事件
// 参数：t-当前仿真时间（秒）
// 返回：到期事件（按触发顺序，一步内落后多个间隔时同一类型可出现多次）
func (s *spawner) due(t float64) (kinds []spawnKind) {
	for {
		fired, at := s.queue.PopUntil(t + timeEpsilon)
		if len(fired) == 0 {
			return
		}
		for i, kind := range fired {
			kinds = append(kinds, kind)
			s.queue.HeapPush(kind, at[i]+s.intervals[kind])
		}
	}
}
