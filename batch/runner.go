// 批量运行：多次独立运行仿真程序，收集每次的碰撞计数并写出结果
package batch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Result 单次运行结果
type Result struct {
	BatchID              string `bson:"batch_id"`
	Run                  int    `bson:"run"`
	PedestrianCollisions int32  `bson:"collisions_ped"`
	VehicleCollisions    int32  `bson:"collisions_car"`
}

// Runner 批量运行器
// 功能：顺序执行N次仿真，单次失败只记录日志并跳过
type Runner struct {
	executor Executor
	n        int
	batchID  string
}

// NewRunner 创建批量运行器，每个批次分配唯一ID
func NewRunner(executor Executor, n int) (*Runner, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of runs must be positive, got %d", n)
	}
	return &Runner{
		executor: executor,
		n:        n,
		batchID:  uuid.NewString(),
	}, nil
}

func (r *Runner) BatchID() string {
	return r.batchID
}

// Run 执行全部运行
// 返回：成功运行的结果（按运行序号），ctx被取消时返回已完成部分与ctx.Err()
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	log.Infof("batch %s: %d runs", r.batchID, r.n)
	results := make([]Result, 0, r.n)
	for i := 1; i <= r.n; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		out, err := r.executor.Execute(ctx)
		if err != nil {
			log.Warnf("run %d/%d failed: %v", i, r.n, err)
			continue
		}
		ped, car, err := ParseCollisions(out)
		if err != nil {
			log.Warnf("run %d/%d failed: %v", i, r.n, err)
			continue
		}
		log.Infof("run %d/%d OK (pedestrians=%d, vehicles=%d)", i, r.n, ped, car)
		results = append(results, Result{
			BatchID:              r.batchID,
			Run:                  i,
			PedestrianCollisions: ped,
			VehicleCollisions:    car,
		})
	}
	if len(results) > 0 {
		log.Infof("batch %s: %d/%d runs succeeded, mean collisions: pedestrian %.2f, vehicle %.2f",
			r.batchID, len(results), r.n,
			float64(lo.SumBy(results, func(x Result) int32 { return x.PedestrianCollisions }))/float64(len(results)),
			float64(lo.SumBy(results, func(x Result) int32 { return x.VehicleCollisions }))/float64(len(results)),
		)
	}
	return results, nil
}
