package entity

import "fmt"

// Direction 车辆行驶方向
type Direction int32

const (
	North Direction = iota // 向北（y减小）
	East                   // 向东（x增大）
	South                  // 向南（y增大）
	West                   // 向西（x减小）
)

// Directions 生成车辆时的随机候选方向
var Directions = []Direction{North, South, East, West}

// TurnRight 顺时针旋转90度后的方向
func (d Direction) TurnRight() Direction {
	return (d + 1) % 4
}

// IsVertical 是否沿南北轴行驶
func (d Direction) IsVertical() bool {
	return d == North || d == South
}

func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", int32(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int32(d))
	}
	return []byte(d.String()), nil
}

// Crossing 行人过街方向
// 命名沿用斑马线所在的一侧：NS与SN横穿东西向道路，EW与WE横穿南北向道路
type Crossing int32

const (
	CrossingNS Crossing = iota // 从南侧出发向北（y减小）
	CrossingSN                 // 向南（y增大）
	CrossingEW                 // 向东（x增大）
	CrossingWE                 // 向西（x减小）
)

// Crossings 生成行人时的随机候选过街方向
var Crossings = []Crossing{CrossingNS, CrossingSN, CrossingEW, CrossingWE}

// IsAxisA 是否跟随南北向相位放行
func (c Crossing) IsAxisA() bool {
	return c == CrossingNS || c == CrossingSN
}

func (c Crossing) Valid() bool {
	return c >= CrossingNS && c <= CrossingWE
}

func (c Crossing) String() string {
	switch c {
	case CrossingNS:
		return "NS"
	case CrossingSN:
		return "SN"
	case CrossingEW:
		return "EW"
	case CrossingWE:
		return "WE"
	default:
		return fmt.Sprintf("Crossing(%d)", int32(c))
	}
}

func (c Crossing) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid crossing %d", int32(c))
	}
	return []byte(c.String()), nil
}

// Phase 信号灯相位，表示当前拥有通行权的轴
type Phase int32

const (
	PhaseNS Phase = iota // 南北向车辆绿灯（AxisA）
	PhaseEW              // 东西向车辆绿灯（AxisB）
)

// Flip 切换到另一条轴
func (p Phase) Flip() Phase {
	if p == PhaseNS {
		return PhaseEW
	}
	return PhaseNS
}

func (p Phase) String() string {
	switch p {
	case PhaseNS:
		return "NS"
	case PhaseEW:
		return "EW"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
