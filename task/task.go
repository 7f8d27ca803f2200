package task

import (
	"fmt"
	"time"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity/person"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/randengine"
)

// Context 仿真任务上下文
// 功能：包含一次仿真运行的所有状态，按固定顺序推进信号灯、生成调度与交通参与者
// 说明：单线程推进，所有状态只在Advance中修改；渲染等外部协作者只能通过Snapshot读取
type Context struct {
	// 时钟
	clock *clock.Clock
	// 信号灯
	light *trafficlight.FixedTrafficLight
	// Person管理器
	personManager *person.PersonManager
	// 生成调度
	spawner *spawner

	// 运行时配置
	runtimeConfig *config.RuntimeConfig
	// 随机数引擎（生成方向、过街方向与右转决策）
	generator *randengine.Engine
	// 实际使用的随机种子
	seed uint64

	// 已停止
	stopped bool
}

// NewContext 创建新的仿真任务上下文
// 功能：校验配置并初始化所有组件
// 参数：c-配置对象
// 返回：初始化完成的Context实例，配置非法时返回错误
// 算法说明：
// 1. 补全默认值并校验配置
// 2. 种子为0时使用当前时间
// 3. 创建时钟、信号灯、Person管理器与生成调度
func NewContext(c config.Config) (*Context, error) {
	rc, err := config.NewRuntimeConfig(c)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	light, err := trafficlight.NewFixedTrafficLight(rc.Light.CycleLength)
	if err != nil {
		return nil, err
	}
	seed := rc.C.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	ctx := &Context{
		clock:         clock.New(rc.C.Step),
		light:         light,
		spawner:       newSpawner(rc.Spawn.VehicleInterval, rc.Spawn.PedestrianInterval),
		runtimeConfig: rc,
		generator:     randengine.New(seed),
		seed:          seed,
	}
	ctx.personManager = person.NewManager(ctx)
	log.Infof("seed: %d, duration: %.1fs, dt: %.4fs, cycle: %d ticks, spawn: vehicle %.2fs pedestrian %.2fs, turn right p=%.2f",
		seed, rc.C.Step.Duration, rc.C.Step.Interval, rc.Light.CycleLength,
		rc.Spawn.VehicleInterval, rc.Spawn.PedestrianInterval, rc.TurnRightP,
	)
	return ctx, nil
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) TrafficLight() entity.ITrafficLight {
	return ctx.light
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Generator() *randengine.Engine {
	return ctx.generator
}

// Seed 实际使用的随机种子，用于复现
func (ctx *Context) Seed() uint64 {
	return ctx.seed
}

// Stopped 是否已到达运行时长上限
func (ctx *Context) Stopped() bool {
	return ctx.stopped
}

// Report 运行结果
type Report struct {
	PedestrianCollisions int32 `json:"pedestrian_collisions"`
	VehicleCollisions    int32 `json:"vehicle_collisions"`
}

// Report 当前累计的碰撞计数
func (ctx *Context) Report() Report {
	p, v := ctx.personManager.Collisions()
	return Report{PedestrianCollisions: p, VehicleCollisions: v}
}

// VehicleView 车辆只读视图
type VehicleView struct {
	ID             int32            `json:"id"`
	Direction      entity.Direction `json:"direction"`
	Position       geometry.Point   `json:"position"`
	PassedStopLine bool             `json:"passed_stop_line"`
	WillTurnRight  bool             `json:"will_turn_right"`
	CompletedTurn  bool             `json:"completed_turn"`
}

// PedestrianView 行人只读视图
type PedestrianView struct {
	ID             int32           `json:"id"`
	Crossing       entity.Crossing `json:"crossing"`
	Position       geometry.Point  `json:"position"`
	PassedStopLine bool            `json:"passed_stop_line"`
}

// Snapshot 某一步结束时的完整状态（值拷贝，可跨goroutine传递）
type Snapshot struct {
	Step            int32                `json:"step"`
	Time            float64              `json:"time"`
	Phase           entity.Phase         `json:"phase"`
	PedestrianPhase entity.Phase         `json:"pedestrian_phase"`
	PhaseElapsed    int32                `json:"phase_elapsed"`
	CycleLength     int32                `json:"cycle_length"`
	Flips           int32                `json:"flips"`
	Vehicles        []VehicleView        `json:"vehicles"`
	Pedestrians     []PedestrianView     `json:"pedestrians"`
	Overlapping     []person.VehiclePair `json:"overlapping"` // 当前处于重叠状态的车辆对，渲染端用于高亮
	Report
	Stopped bool `json:"stopped"`
}

// Snapshot 获取当前状态的只读快照
func (ctx *Context) Snapshot() Snapshot {
	vehicles := ctx.personManager.Vehicles()
	pedestrians := ctx.personManager.Pedestrians()
	s := Snapshot{
		Step:            ctx.clock.InternalStep,
		Time:            ctx.clock.T,
		Phase:           ctx.light.Phase(),
		PedestrianPhase: ctx.light.PedestrianPhase(),
		PhaseElapsed:    ctx.light.Elapsed(),
		CycleLength:     ctx.light.CycleLength(),
		Flips:           ctx.light.Flips(),
		Vehicles:        make([]VehicleView, 0, len(vehicles)),
		Pedestrians:     make([]PedestrianView, 0, len(pedestrians)),
		Overlapping:     ctx.personManager.ActiveVehiclePairs(),
		Report:          ctx.Report(),
		Stopped:         ctx.stopped,
	}
	for _, v := range vehicles {
		s.Vehicles = append(s.Vehicles, VehicleView{
			ID:             v.ID(),
			Direction:      v.Direction(),
			Position:       v.Position(),
			PassedStopLine: v.PassedStopLine(),
			WillTurnRight:  v.WillTurnRight(),
			CompletedTurn:  v.CompletedTurn(),
		})
	}
	for _, p := range pedestrians {
		s.Pedestrians = append(s.Pedestrians, PedestrianView{
			ID:             p.ID(),
			Crossing:       p.Crossing(),
			Position:       p.Position(),
			PassedStopLine: p.PassedStopLine(),
		})
	}
	return s
}
