package config

import (
	"fmt"
	"math"
)

// 默认参数
const (
	DefaultFPS                  = 60
	DefaultDuration             = 60. // 秒
	DefaultVehicleInterval      = 1.5 // 秒
	DefaultPedestrianInterval   = 3.  // 秒
	DefaultTurnRightProbability = 0.3
	DefaultCycleLength          = 300 // 步
	DefaultHeartbeatInterval    = 600 // 步
)

// RuntimeConfig 运行时配置
// 功能：存储补全默认值并通过校验后的配置
type RuntimeConfig struct {
	All   Config  // 全部配置
	C     Control // 全局控制配置
	Spawn Spawn   // 生成配置
	Light Light   // 信控配置

	TurnRightP float64 // 右转概率
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：补全默认值并校验参数，非法参数在构造时直接拒绝
// 参数：config-原始配置对象
// 返回：运行时配置指针，参数非法时返回错误
// 算法说明：
// 1. 零值字段使用默认值
// 2. 负数、NaN、概率越界等非法输入返回错误
func NewRuntimeConfig(config Config) (*RuntimeConfig, error) {
	c := config.Control
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	if c.FPS < 0 {
		return nil, fmt.Errorf("control.fps must be positive, got %d", c.FPS)
	}
	if c.Step.Interval == 0 {
		c.Step.Interval = 1 / float64(c.FPS)
	}
	if c.Step.Duration == 0 {
		c.Step.Duration = DefaultDuration
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if err := positive("control.step.interval", c.Step.Interval); err != nil {
		return nil, err
	}
	if err := positive("control.step.duration", c.Step.Duration); err != nil {
		return nil, err
	}
	if c.HeartbeatInterval < 0 {
		return nil, fmt.Errorf("control.heartbeat_interval must be positive, got %d", c.HeartbeatInterval)
	}

	s := config.Spawn
	if s.VehicleInterval == 0 {
		s.VehicleInterval = DefaultVehicleInterval
	}
	if s.PedestrianInterval == 0 {
		s.PedestrianInterval = DefaultPedestrianInterval
	}
	if err := positive("spawn.vehicle_interval", s.VehicleInterval); err != nil {
		return nil, err
	}
	if err := positive("spawn.pedestrian_interval", s.PedestrianInterval); err != nil {
		return nil, err
	}
	p := DefaultTurnRightProbability
	if s.TurnRightProbability != nil {
		p = *s.TurnRightProbability
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("spawn.turn_right_probability must be in [0, 1], got %v", p)
	}

	l := config.Light
	if l.CycleLength == 0 {
		l.CycleLength = DefaultCycleLength
	}
	if l.CycleLength < 0 {
		return nil, fmt.Errorf("light.cycle_length must be positive, got %d", l.CycleLength)
	}

	return &RuntimeConfig{
		All:        config,
		C:          c,
		Spawn:      s,
		Light:      l,
		TurnRightP: p,
	}, nil
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be a positive finite number, got %v", name, v)
	}
	return nil
}
