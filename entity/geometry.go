package entity

import (
	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
)

// 路口布局与交通参与者尺寸
// 所有偏移量均为可调常数，与路口尺寸之间没有推导关系，不保证适用于其他尺寸的路口
const (
	Width   = 800.       // 区域宽度
	Height  = 800.       // 区域高度
	CenterX = Width / 2  // 路口中心x
	CenterY = Height / 2 // 路口中心y

	VehicleSize     = 20. // 车辆边长（正方形，位置为左上角）
	PedestrianSize  = 10. // 行人半径（位置为圆心）
	VehicleSpeed    = 2.  // 车辆每步移动距离
	PedestrianSpeed = 1.  // 行人每步移动距离

	LaneOffset        = 10.  // 停车线距路口中心线的距离
	SignalCheckOffset = 100. // 信号检查起点在停车线之前的距离
	TurnOffset        = 60.  // 右转第二段终点距路口中心的距离

	FollowGap       = VehicleSize + 5 // 同向跟车的最小纵向间距
	FollowLateral   = 5.              // 同向跟车判定的横向容差
	CrosswalkOffset = 40.             // 行人越过停止线的阈值距路口中心的距离
	PedestrianInset = 70.             // 行人出发点距路口中心的横向距离
	PedestrianStart = 80.             // 行人出发点距路口中心的纵向距离
)

// VehicleSpawn 各方向车辆的出生位置（左上角）
// 靠右行驶：北向车辆在中心线右侧，南向车辆在左侧
func VehicleSpawn(d Direction) geometry.Point {
	switch d {
	case North:
		return geometry.Point{X: CenterX + LaneOffset, Y: Height}
	case South:
		return geometry.Point{X: CenterX - LaneOffset - VehicleSize, Y: -VehicleSize}
	case East:
		return geometry.Point{X: -VehicleSize, Y: CenterY + LaneOffset}
	case West:
		return geometry.Point{X: Width, Y: CenterY - LaneOffset - VehicleSize}
	default:
		log.Panicf("unknown direction %v", d)
		return geometry.Point{}
	}
}

// PedestrianSpawn 各过街方向行人的出生位置（圆心）
func PedestrianSpawn(c Crossing) geometry.Point {
	switch c {
	case CrossingNS:
		return geometry.Point{X: CenterX - PedestrianInset, Y: CenterY + PedestrianStart}
	case CrossingSN:
		return geometry.Point{X: CenterX + PedestrianInset, Y: CenterY - PedestrianStart}
	case CrossingEW:
		return geometry.Point{X: CenterX - PedestrianStart, Y: CenterY - PedestrianInset}
	case CrossingWE:
		return geometry.Point{X: CenterX + PedestrianStart, Y: CenterY + PedestrianInset}
	default:
		log.Panicf("unknown crossing %v", c)
		return geometry.Point{}
	}
}

// area 区域范围，InBBox2D不含边，向外扩展EPS使边界上的点仍算在区域内
var area = geometry.BBox{
	{X: -mathutil.EPS, Y: -mathutil.EPS},
	{X: Width + mathutil.EPS, Y: Height + mathutil.EPS},
}

// InBounds 点是否在区域内（含边界）
func InBounds(p geometry.Point) bool {
	return p.InBBox2D(area)
}

// BoxInBounds 以p为左上角、边长为size的正方形是否与区域相交（含边界接触）
// 等价于左上角落在向左上方扩展size后的区域内
func BoxInBounds(p geometry.Point, size float64) bool {
	return p.InBBox2D(geometry.BBox{
		{X: area[0].X - size, Y: area[0].Y - size},
		area[1],
	})
}
