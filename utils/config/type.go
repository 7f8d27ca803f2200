package config

// ControlStep 指定模拟器步长与运行时长的配置项
// 功能：定义仿真时间控制参数
type ControlStep struct {
	Interval float64 `yaml:"interval,omitempty"` // 每步的时间间隔（秒），默认1/FPS
	Duration float64 `yaml:"duration,omitempty"` // 运行时长（秒），到达后停止
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
// 说明：包含时间控制、实时节拍、随机种子与心跳日志
type Control struct {
	Step              ControlStep `yaml:"step"`
	Realtime          bool        `yaml:"realtime,omitempty"`           // 按真实帧率推进（否则无等待地按固定步长推进）
	FPS               int32       `yaml:"fps,omitempty"`                // 实时模式的帧率
	Seed              uint64      `yaml:"seed,omitempty"`               // 随机种子，0表示使用当前时间
	HeartbeatInterval int32       `yaml:"heartbeat_interval,omitempty"` // 心跳日志间隔步数
}

// Spawn 交通参与者生成配置
// 功能：定义车辆与行人的生成节拍与右转比例
type Spawn struct {
	VehicleInterval      float64  `yaml:"vehicle_interval,omitempty"`       // 车辆生成间隔（秒）
	PedestrianInterval   float64  `yaml:"pedestrian_interval,omitempty"`    // 行人生成间隔（秒）
	TurnRightProbability *float64 `yaml:"turn_right_probability,omitempty"` // 车辆右转概率
}

// Light 信号灯配置
type Light struct {
	CycleLength int32 `yaml:"cycle_length,omitempty"` // 单个相位持续的步数
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control Control `yaml:"control"` // 模拟过程控制
	Spawn   Spawn   `yaml:"spawn"`   // 生成节拍
	Light   Light   `yaml:"light"`   // 信控
}
