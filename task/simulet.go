package task

import (
	"context"
	"time"
)

// Advance 推进一步
// 功能：执行一步完整的仿真逻辑
// 参数：dt-本步流逝的时间（秒），非正数时使用配置的固定步长
// 返回：是否已停止
// 算法说明：
// 1. 推进时钟与信号灯
// 2. 到达运行时长上限则停止，本步不再移动任何对象
// 3. 执行所有到期的生成事件
// 4. Person管理器更新：车辆移动、行人移动、碰撞检测、越界清理
// 5. 心跳日志
func (ctx *Context) Advance(dt float64) bool {
	if ctx.stopped {
		return true
	}
	ctx.clock.Tick(dt)
	ctx.light.Update()
	if ctx.clock.Done() {
		ctx.stopped = true
		log.Infof("duration reached at step %d (%s)", ctx.clock.InternalStep, ctx.clock)
		return true
	}

	for _, kind := range ctx.spawner.due(ctx.clock.T) {
		switch kind {
		case spawnVehicle:
			ctx.personManager.AddRandomVehicle()
		case spawnPedestrian:
			ctx.personManager.AddRandomPedestrian()
		default:
			log.Panicf("unknown spawn kind %v", kind)
		}
	}

	ctx.personManager.Update()

	if interval := ctx.runtimeConfig.C.HeartbeatInterval; ctx.clock.InternalStep%interval == 0 {
		rt := ctx.personManager.Runtime()
		log.Infof(
			"STEP: %d(%s) phase=%v vehicles=%d pedestrians=%d collisions: pedestrian=%d vehicle=%d",
			ctx.clock.InternalStep, ctx.clock, ctx.light.Phase(),
			len(ctx.personManager.Vehicles()), len(ctx.personManager.Pedestrians()),
			rt.PedestrianCollisions, rt.VehicleCollisions,
		)
	}
	return false
}

// Run 运行至停止
// 功能：反复推进直到到达运行时长上限或被外部取消
// 参数：c-取消信号，observe-每步结束后的回调（可为nil，用于渲染或推送快照）
// 返回：被取消时返回c.Err()，正常结束返回nil
// 说明：实时模式按配置帧率节拍推进，每步流逝真实经过的时间；否则不等待，每步流逝固定步长
func (ctx *Context) Run(c context.Context, observe func(Snapshot)) error {
	log.Infof("engine start (realtime: %v)", ctx.runtimeConfig.C.Realtime)
	var tick <-chan time.Time
	if ctx.runtimeConfig.C.Realtime {
		ticker := time.NewTicker(time.Second / time.Duration(ctx.runtimeConfig.C.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}
	last := time.Now()
	for !ctx.stopped {
		dt := 0.
		if tick != nil {
			select {
			case <-c.Done():
				log.Warnf("engine aborted at step %d", ctx.clock.InternalStep)
				return c.Err()
			case now := <-tick:
				dt = now.Sub(last).Seconds()
				last = now
			}
		} else if err := c.Err(); err != nil {
			log.Warnf("engine aborted at step %d", ctx.clock.InternalStep)
			return err
		}
		ctx.Advance(dt)
		if observe != nil {
			observe(ctx.Snapshot())
		}
	}
	rt := ctx.personManager.Runtime()
	log.Infof("engine complete: %d steps, spawned %d vehicles and %d pedestrians, %d vehicles and %d pedestrians left the area",
		ctx.clock.InternalStep, rt.SpawnedVehicles, rt.SpawnedPedestrians, rt.ExitedVehicles, rt.ExitedPedestrians,
	)
	return nil
}
