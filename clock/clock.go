package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/config"
)

const timeEpsilon = 1e-9

// Clock 仿真时钟
// 功能：记录已执行的步数与已流逝的时间，判断是否达到运行时长上限
// 说明：每步流逝的时间由外部传入（实时模式为真实帧间隔，无头模式为固定DT）
type Clock struct {
	DT  float64 // 默认每步时间间隔（秒）
	END float64 // 运行时长上限（秒），T >= END 即停止

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 功能：根据控制配置初始化时钟
// 参数：stepConfig-控制步配置，包含每步时间间隔与运行时长
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:  stepConfig.Interval,
		END: stepConfig.Duration,
	}
	c.Init()
	return c
}

// Init 重置时钟状态
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
}

// Tick 推进一步
// 功能：步数加一，时间增加dt
// 参数：dt-本步流逝的时间（秒），非正数时使用默认DT
func (c *Clock) Tick(dt float64) {
	if dt <= 0 {
		dt = c.DT
	}
	c.InternalStep++
	c.T += dt
}

// Done 是否已达到运行时长上限（容忍浮点累加误差）
func (c *Clock) Done() bool {
	return c.T >= c.END-timeEpsilon
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为可读的字符串
// 返回：格式化的时间字符串（HH:MM:SS）
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
