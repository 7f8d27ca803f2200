package person

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/randengine"
)

// GlobalRuntime 全局运行时统计
type GlobalRuntime struct {
	PedestrianCollisions int32 // 累计行人碰撞次数
	VehicleCollisions    int32 // 累计车辆碰撞次数（按碰撞开始计数）
	SpawnedVehicles      int32 // 累计生成车辆数
	SpawnedPedestrians   int32 // 累计生成行人数
	ExitedVehicles       int32 // 累计驶离区域的车辆数
	ExitedPedestrians    int32 // 累计离开区域的行人数
}

// PersonManager Person管理器
// 功能：持有所有在场的车辆与行人，分配ID，按固定顺序执行移动、碰撞检测与越界清理
// 说明：车辆与行人使用各自独立、单调递增的ID空间，ID从不复用
type PersonManager struct {
	ctx entity.ITaskContext

	vehicles    *container.IncrementalArray[*Vehicle]
	pedestrians *container.IncrementalArray[*Pedestrian]

	nextVehicleID    int32
	nextPedestrianID int32

	collisions *vehicleCollisionTracker
	runtime    GlobalRuntime
}

// NewManager 创建Person管理器实例
// 参数：ctx-任务上下文（提供信号灯、随机数引擎与运行时配置）
func NewManager(ctx entity.ITaskContext) *PersonManager {
	return &PersonManager{
		ctx:         ctx,
		vehicles:    container.NewIncrementalArray[*Vehicle](),
		pedestrians: container.NewIncrementalArray[*Pedestrian](),
		collisions:  newVehicleCollisionTracker(),
	}
}

// AddVehicle 在指定方向生成车辆，右转决策在此时由随机数引擎一次性确定
func (m *PersonManager) AddVehicle(d entity.Direction) entity.IVehicle {
	return m.SpawnVehicle(d, m.ctx.Generator().PTrue(m.ctx.RuntimeConfig().TurnRightP))
}

// AddRandomVehicle 随机方向生成车辆
func (m *PersonManager) AddRandomVehicle() entity.IVehicle {
	return m.AddVehicle(randengine.Choice(m.ctx.Generator(), entity.Directions))
}

// SpawnVehicle 以给定的右转决策生成车辆
// 说明：新车辆在下一次Update开始时加入在场集合
func (m *PersonManager) SpawnVehicle(d entity.Direction, willTurnRight bool) *Vehicle {
	v := newVehicle(m.nextVehicleID, d, willTurnRight)
	m.nextVehicleID++
	m.vehicles.Add(v)
	m.runtime.SpawnedVehicles++
	log.Debugf("spawn %v", v)
	return v
}

// AddPedestrian 在指定过街方向生成行人
func (m *PersonManager) AddPedestrian(c entity.Crossing) entity.IPedestrian {
	return m.SpawnPedestrian(c)
}

// AddRandomPedestrian 随机过街方向生成行人
func (m *PersonManager) AddRandomPedestrian() entity.IPedestrian {
	return m.AddPedestrian(randengine.Choice(m.ctx.Generator(), entity.Crossings))
}

// SpawnPedestrian 生成行人
func (m *PersonManager) SpawnPedestrian(c entity.Crossing) *Pedestrian {
	p := newPedestrian(m.nextPedestrianID, c)
	m.nextPedestrianID++
	m.pedestrians.Add(p)
	m.runtime.SpawnedPedestrians++
	log.Debugf("spawn %v", p)
	return p
}

// Vehicles 当前在场的车辆（按生成顺序）
func (m *PersonManager) Vehicles() []entity.IVehicle {
	return lo.Map(m.vehicles.Data(), func(v *Vehicle, _ int) entity.IVehicle { return v })
}

// Pedestrians 当前在场的行人（按生成顺序）
func (m *PersonManager) Pedestrians() []entity.IPedestrian {
	return lo.Map(m.pedestrians.Data(), func(p *Pedestrian, _ int) entity.IPedestrian { return p })
}

// ActiveVehiclePairs 当前处于重叠状态的车辆对
func (m *PersonManager) ActiveVehiclePairs() []VehiclePair {
	return m.collisions.Active()
}

// Collisions 累计碰撞次数
func (m *PersonManager) Collisions() (pedestrianCount, vehicleCount int32) {
	return m.runtime.PedestrianCollisions, m.runtime.VehicleCollisions
}

// Runtime 全局统计
func (m *PersonManager) Runtime() GlobalRuntime {
	return m.runtime
}

// Update 更新阶段
// 功能：执行一步内所有交通参与者的决策、碰撞检测与清理
// 算法说明：
// 1. 新生成的车辆与行人加入在场集合
// 2. 车辆按生成顺序依次移动（后移动的车辆能看到先移动车辆的新位置）
// 3. 行人依次移动
// 4. 行人-车辆碰撞：被撞行人计数并标记删除
// 5. 车辆-车辆碰撞：与上一步的重叠集合比较，只对新开始的重叠计数
// 6. 越界清理：标记离开区域的车辆与行人
// 7. 一次性压缩，删除本步标记的所有对象
func (m *PersonManager) Update() {
	m.vehicles.Prepare()
	m.pedestrians.Prepare()

	light := m.ctx.TrafficLight()
	vehicles := m.vehicles.Data()
	pedestrians := m.pedestrians.Data()

	for _, v := range vehicles {
		v.move(light, vehicles, pedestrians)
	}
	for _, p := range pedestrians {
		p.move(light)
	}

	struck := detectPedestrianCollisions(pedestrians, vehicles)
	for _, p := range struck {
		m.pedestrians.Remove(p)
	}
	m.runtime.PedestrianCollisions += int32(len(struck))

	onsets := m.collisions.detect(vehicles)
	m.runtime.VehicleCollisions += int32(len(onsets))

	for _, v := range vehicles {
		if !v.inBounds() {
			m.vehicles.Remove(v)
		}
	}
	for _, p := range pedestrians {
		if !p.inBounds() && !m.pedestrians.IsRemoved(p) {
			m.pedestrians.Remove(p)
			m.runtime.ExitedPedestrians++
		}
	}
	exited := m.vehicles.Prepare()
	m.runtime.ExitedVehicles += int32(len(exited))
	m.pedestrians.Prepare()

	if len(struck) > 0 || len(onsets) > 0 {
		log.Debugf("collisions: pedestrian +%d (total %d), vehicle +%d (total %d)",
			len(struck), m.runtime.PedestrianCollisions,
			len(onsets), m.runtime.VehicleCollisions,
		)
	}
}
