package person

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
)

// Vehicle 车辆实体
// 功能：管理车辆的位置、方向与右转状态，每步根据信号灯、前车与行人决定停车或前进
// 说明：位置为车身正方形的左上角
type Vehicle struct {
	container.IncrementalItemBase

	id        int32
	direction entity.Direction // 行驶方向，仅在右转完成时改变一次
	pos       geometry.Point
	speed     float64

	passedStopLine bool // 车头已越过停车线（单调）
	willTurnRight  bool // 生成时决定，之后不再改变
	completedTurn  bool // 右转已完成（单调）
}

func newVehicle(id int32, d entity.Direction, willTurnRight bool) *Vehicle {
	if !d.Valid() {
		log.Panicf("vehicle %d: invalid direction %v", id, d)
	}
	return &Vehicle{
		id:            id,
		direction:     d,
		pos:           entity.VehicleSpawn(d),
		speed:         entity.VehicleSpeed,
		willTurnRight: willTurnRight,
	}
}

func (v *Vehicle) ID() int32                   { return v.id }
func (v *Vehicle) Direction() entity.Direction { return v.direction }
func (v *Vehicle) Position() geometry.Point      { return v.pos }
func (v *Vehicle) PassedStopLine() bool        { return v.passedStopLine }
func (v *Vehicle) WillTurnRight() bool         { return v.willTurnRight }
func (v *Vehicle) CompletedTurn() bool         { return v.completedTurn }

// Center 车身中心
func (v *Vehicle) Center() geometry.Point {
	return geometry.Point{X: v.pos.X + entity.VehicleSize/2, Y: v.pos.Y + entity.VehicleSize/2}
}

// pedestrianZone 行人不得进入的圆形区域（车身中心为圆心，半径size/2+行人半径）
func (v *Vehicle) pedestrianZone() geometry.Circle {
	return geometry.NewCircle(v.Center(), entity.VehicleSize/2+entity.PedestrianSize)
}

// body 车身外接圆（用于车辆之间的重叠判定）
func (v *Vehicle) body() geometry.Circle {
	return geometry.NewCircle(v.Center(), entity.VehicleSize/2)
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{ID:%d, Dir:%v, Pos:(%.1f,%.1f), Turn:%v/%v}",
		v.id, v.direction, v.pos.X, v.pos.Y, v.willTurnRight, v.completedTurn)
}

// move 更新车辆状态
// 功能：依次检查三个停车条件，任一成立则本步不动，否则前进或执行右转
// 参数：light-信号灯，others-所有在场车辆（含自身），pedestrians-所有在场行人
// 返回：本步是否移动
// 算法说明：
// 1. 信号检查（仅在右转完成前）：未过停车线、已进入检查区且红灯则停车；车头越过停车线后永久跳过信号检查
// 2. 跟车：同向车辆在正前方(0, size+5)且横向偏差<5则停车
// 3. 行人：任一行人与车身中心距离小于size/2+行人半径则停车
// 4. 前进：右转车辆先直行过停车线，再沿新方向驶到转弯偏移线后切换方向；其余车辆沿当前方向前进
func (v *Vehicle) move(light entity.ITrafficLight, others []*Vehicle, pedestrians []*Pedestrian) bool {
	stop := false
	if !v.completedTurn && v.checkSignal(light) {
		stop = true
	}
	if v.blockedByVehicle(others) {
		stop = true
	}
	if v.blockedByPedestrian(pedestrians) {
		stop = true
	}
	if stop {
		return false
	}

	if v.willTurnRight && !v.completedTurn {
		v.turnRight()
	} else {
		v.forward(v.direction)
	}
	return true
}

// stopLineDistance 车头到停车线的距离，越过停车线后为负
func (v *Vehicle) stopLineDistance() float64 {
	switch v.direction {
	case entity.North:
		return v.pos.Y - (entity.CenterY + entity.LaneOffset)
	case entity.South:
		return (entity.CenterY - entity.LaneOffset) - (v.pos.Y + entity.VehicleSize)
	case entity.East:
		return (entity.CenterX - entity.LaneOffset) - (v.pos.X + entity.VehicleSize)
	case entity.West:
		return v.pos.X - (entity.CenterX + entity.LaneOffset)
	default:
		log.Panicf("vehicle %d: invalid direction %v", v.id, v.direction)
		return 0
	}
}

// checkSignal 信号检查，返回是否因红灯停车
// 说明：不停车且车头已越过停车线时置位passedStopLine
func (v *Vehicle) checkSignal(light entity.ITrafficLight) (stop bool) {
	if v.passedStopLine {
		return false
	}
	d := v.stopLineDistance()
	if d <= entity.SignalCheckOffset && !light.VehicleGreen(v.direction) {
		return true
	}
	if d < 0 {
		v.passedStopLine = true
	}
	return false
}

// aheadOf 沿方向d，to相对from的纵向前方距离与横向偏差
func aheadOf(d entity.Direction, from, to geometry.Point) (along, lateral float64) {
	switch d {
	case entity.North:
		return from.Y - to.Y, mathutil.Abs(from.X - to.X)
	case entity.South:
		return to.Y - from.Y, mathutil.Abs(from.X - to.X)
	case entity.East:
		return to.X - from.X, mathutil.Abs(from.Y - to.Y)
	case entity.West:
		return from.X - to.X, mathutil.Abs(from.Y - to.Y)
	default:
		log.Panicf("invalid direction %v", d)
		return 0, 0
	}
}

// blockedByVehicle 同车道正前方是否有车
func (v *Vehicle) blockedByVehicle(others []*Vehicle) bool {
	for _, other := range others {
		if other == v || other.direction != v.direction {
			continue
		}
		along, lateral := aheadOf(v.direction, v.pos, other.pos)
		if 0 < along && along < entity.FollowGap && lateral < entity.FollowLateral {
			return true
		}
	}
	return false
}

// blockedByPedestrian 是否有行人过近
func (v *Vehicle) blockedByPedestrian(pedestrians []*Pedestrian) bool {
	zone := v.pedestrianZone()
	for _, p := range pedestrians {
		if zone.ContainsPoint(p.pos) {
			return true
		}
	}
	return false
}

// turnRight 右转
// 第一段：直行至越过停车线
// 第二段：沿顺时针下一方向行驶，直到到达路口中心外TurnOffset处的偏移线
// 到达后切换行驶方向（该步不移动），此后按直行处理
func (v *Vehicle) turnRight() {
	if !v.passedStopLine {
		v.forward(v.direction)
		return
	}
	next := v.direction.TurnRight()
	if !reachedTurnOffset(next, v.pos) {
		v.forward(next)
		return
	}
	log.Debugf("vehicle %d turned right from %v to %v at (%.1f,%.1f)", v.id, v.direction, next, v.pos.X, v.pos.Y)
	v.direction = next
	v.completedTurn = true
}

// reachedTurnOffset 沿方向d行驶时是否已到达转弯偏移线
func reachedTurnOffset(d entity.Direction, p geometry.Point) bool {
	switch d {
	case entity.North:
		return p.Y <= entity.CenterY-entity.TurnOffset
	case entity.East:
		return p.X >= entity.CenterX+entity.TurnOffset
	case entity.South:
		return p.Y >= entity.CenterY+entity.TurnOffset
	case entity.West:
		return p.X <= entity.CenterX-entity.TurnOffset
	default:
		log.Panicf("invalid direction %v", d)
		return false
	}
}

// forward 沿方向d移动一个速度单位
func (v *Vehicle) forward(d entity.Direction) {
	switch d {
	case entity.North:
		v.pos.Y -= v.speed
	case entity.South:
		v.pos.Y += v.speed
	case entity.East:
		v.pos.X += v.speed
	case entity.West:
		v.pos.X -= v.speed
	default:
		log.Panicf("vehicle %d: invalid direction %v", v.id, d)
	}
}

// inBounds 车身是否仍与区域相交
func (v *Vehicle) inBounds() bool {
	return entity.BoxInBounds(v.pos, entity.VehicleSize)
}
