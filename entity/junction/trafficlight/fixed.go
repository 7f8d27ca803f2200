package trafficlight

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
)

var log = logrus.WithField("module", "trafficlight")

// fixedTlRuntime 固定周期信号灯运行时数据
type fixedTlRuntime struct {
	phase           entity.Phase // 车辆相位
	pedestrianPhase entity.Phase // 行人相位，始终与车辆相位一致
	elapsed         int32        // 当前相位已持续的步数
	flips           int32        // 累计切换次数
}

// FixedTrafficLight 两相位固定周期信号灯
// 功能：在南北向放行与东西向放行之间按固定步数循环切换，行人相位与车辆相位同步
// 说明：状态机只有两个状态（NS、EW）和两个转移，没有终止状态
type FixedTrafficLight struct {
	cycleLength int32 // 单个相位持续的步数
	runtime     fixedTlRuntime
}

// NewFixedTrafficLight 创建固定周期信号灯
// 功能：初始化为南北向绿灯，计时清零
// 参数：cycleLength-单个相位持续的步数，必须为正数
// 返回：信号灯实例，参数非法时返回错误
func NewFixedTrafficLight(cycleLength int32) (*FixedTrafficLight, error) {
	if cycleLength <= 0 {
		return nil, fmt.Errorf("traffic light cycle length must be positive, got %d", cycleLength)
	}
	return &FixedTrafficLight{
		cycleLength: cycleLength,
		runtime: fixedTlRuntime{
			phase:           entity.PhaseNS,
			pedestrianPhase: entity.PhaseNS,
		},
	}, nil
}

// Update 推进一步
// 功能：计时加一，到达相位时长后清零并同时切换车辆与行人相位
func (l *FixedTrafficLight) Update() {
	l.runtime.elapsed++
	if l.runtime.elapsed >= l.cycleLength {
		l.runtime.elapsed = 0
		l.runtime.phase = l.runtime.phase.Flip()
		l.runtime.pedestrianPhase = l.runtime.phase
		l.runtime.flips++
		log.Debugf("phase switched to %v", l.runtime.phase)
	}
}

// VehicleGreen 指定行驶方向是否绿灯
func (l *FixedTrafficLight) VehicleGreen(d entity.Direction) bool {
	if d.IsVertical() {
		return l.runtime.phase == entity.PhaseNS
	}
	return l.runtime.phase == entity.PhaseEW
}

// PedestrianGreen 指定过街方向是否绿灯
func (l *FixedTrafficLight) PedestrianGreen(c entity.Crossing) bool {
	if c.IsAxisA() {
		return l.runtime.pedestrianPhase == entity.PhaseNS
	}
	return l.runtime.pedestrianPhase == entity.PhaseEW
}

func (l *FixedTrafficLight) Phase() entity.Phase {
	return l.runtime.phase
}

func (l *FixedTrafficLight) PedestrianPhase() entity.Phase {
	return l.runtime.pedestrianPhase
}

func (l *FixedTrafficLight) Elapsed() int32 {
	return l.runtime.elapsed
}

func (l *FixedTrafficLight) CycleLength() int32 {
	return l.cycleLength
}

// Flips 累计相位切换次数
func (l *FixedTrafficLight) Flips() int32 {
	return l.runtime.flips
}
