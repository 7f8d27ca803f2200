package person

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
)

// Pedestrian 行人实体
// 功能：沿固定过街方向行走，未越过停止线时只在行人绿灯下前进
// 说明：位置为圆心
type Pedestrian struct {
	container.IncrementalItemBase

	id       int32
	crossing entity.Crossing
	pos      geometry.Point
	speed    float64

	passedStopLine bool // 已进入路面（单调），此后无视信号灯
}

func newPedestrian(id int32, c entity.Crossing) *Pedestrian {
	if !c.Valid() {
		log.Panicf("pedestrian %d: invalid crossing %v", id, c)
	}
	return &Pedestrian{
		id:       id,
		crossing: c,
		pos:      entity.PedestrianSpawn(c),
		speed:    entity.PedestrianSpeed,
	}
}

func (p *Pedestrian) ID() int32                 { return p.id }
func (p *Pedestrian) Crossing() entity.Crossing { return p.crossing }
func (p *Pedestrian) Position() geometry.Point    { return p.pos }
func (p *Pedestrian) PassedStopLine() bool      { return p.passedStopLine }

func (p *Pedestrian) String() string {
	return fmt.Sprintf("Pedestrian{ID:%d, Crossing:%v, Pos:(%.1f,%.1f)}", p.id, p.crossing, p.pos.X, p.pos.Y)
}

// move 更新行人状态
// 功能：已过停止线的行人总是前进（避免在路中间因变灯停住）；否则仅在绿灯时前进，并在到达阈值后置位passedStopLine
// 返回：本步是否移动
func (p *Pedestrian) move(light entity.ITrafficLight) bool {
	if p.passedStopLine {
		p.step()
		return true
	}
	if !light.PedestrianGreen(p.crossing) {
		return false
	}
	p.step()
	if p.reachedCrosswalk() {
		p.passedStopLine = true
	}
	return true
}

func (p *Pedestrian) step() {
	switch p.crossing {
	case entity.CrossingNS:
		p.pos.Y -= p.speed
	case entity.CrossingSN:
		p.pos.Y += p.speed
	case entity.CrossingEW:
		p.pos.X += p.speed
	case entity.CrossingWE:
		p.pos.X -= p.speed
	default:
		log.Panicf("pedestrian %d: invalid crossing %v", p.id, p.crossing)
	}
}

func (p *Pedestrian) reachedCrosswalk() bool {
	switch p.crossing {
	case entity.CrossingNS:
		return p.pos.Y <= entity.CenterY+entity.CrosswalkOffset
	case entity.CrossingSN:
		return p.pos.Y >= entity.CenterY-entity.CrosswalkOffset
	case entity.CrossingEW:
		return p.pos.X >= entity.CenterX-entity.CrosswalkOffset
	case entity.CrossingWE:
		return p.pos.X <= entity.CenterX+entity.CrosswalkOffset
	default:
		log.Panicf("pedestrian %d: invalid crossing %v", p.id, p.crossing)
		return false
	}
}

func (p *Pedestrian) inBounds() bool {
	return entity.InBounds(p.pos)
}
