package entity

import "git.fiblab.net/general/common/v2/geometry"

// 依赖倒置

// 给交通参与者提供的信控读取接口
type ITrafficLight interface {
	Phase() Phase                    // 车辆相位
	PedestrianPhase() Phase          // 行人相位（与车辆相位保持一致）
	VehicleGreen(d Direction) bool   // 指定行驶方向是否绿灯
	PedestrianGreen(c Crossing) bool // 指定过街方向是否绿灯
	Elapsed() int32                  // 当前相位已持续的步数
	CycleLength() int32              // 相位时长（步）
}

// 车辆只读接口
type IVehicle interface {
	ID() int32
	Direction() Direction
	Position() geometry.Point
	Center() geometry.Point
	PassedStopLine() bool
	WillTurnRight() bool
	CompletedTurn() bool
}

// 行人只读接口
type IPedestrian interface {
	ID() int32
	Crossing() Crossing
	Position() geometry.Point
	PassedStopLine() bool
}
