package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/config"
)

func newTestContext(t *testing.T, duration float64, seed uint64) *Context {
	ctx, err := NewContext(config.Config{
		Control: config.Control{
			Step: config.ControlStep{Duration: duration},
			Seed: seed,
		},
	})
	require.NoError(t, err)
	return ctx
}

func TestNewContextRejectsInvalidConfig(t *testing.T) {
	p := 1.5
	cases := map[string]config.Config{
		"negative vehicle interval": {Spawn: config.Spawn{VehicleInterval: -1}},
		"probability above one":     {Spawn: config.Spawn{TurnRightProbability: &p}},
		"negative cycle":            {Light: config.Light{CycleLength: -300}},
		"negative duration":         {Control: config.Control{Step: config.ControlStep{Duration: -1}}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewContext(c)
			assert.Error(t, err)
		})
	}
}

func TestSpawnCadence(t *testing.T) {
	ctx := newTestContext(t, 60, 7)

	for range 89 {
		ctx.Advance(0)
	}
	assert.Zero(t, ctx.personManager.Runtime().SpawnedVehicles)

	ctx.Advance(0) // t = 1.5s
	assert.Equal(t, int32(1), ctx.personManager.Runtime().SpawnedVehicles)
	assert.Zero(t, ctx.personManager.Runtime().SpawnedPedestrians)

	for range 90 {
		ctx.Advance(0) // t = 3s
	}
	assert.Equal(t, int32(2), ctx.personManager.Runtime().SpawnedVehicles)
	assert.Equal(t, int32(1), ctx.personManager.Runtime().SpawnedPedestrians)
}

func TestSpawnerCatchesUpOnLongTick(t *testing.T) {
	s := newSpawner(1.5, 3)
	kinds := s.due(4.6)
	assert.Equal(t, []spawnKind{spawnVehicle, spawnPedestrian, spawnVehicle, spawnVehicle}, kinds)
	assert.Empty(t, s.due(4.6))
	assert.Equal(t, []spawnKind{spawnPedestrian, spawnVehicle}, s.due(6))
}

func TestAdvanceStopsAtDuration(t *testing.T) {
	ctx := newTestContext(t, 2, 1)
	steps := 0
	for !ctx.Advance(0) {
		steps++
	}
	// 第120步到达时长上限，不再移动
	assert.Equal(t, 119, steps)
	assert.True(t, ctx.Stopped())
	assert.Equal(t, int32(120), ctx.Clock().InternalStep)

	before := ctx.Snapshot()
	assert.True(t, ctx.Advance(0))
	assert.Equal(t, before, ctx.Snapshot())
}

func TestRunIsReproducibleWithSeed(t *testing.T) {
	run := func() (Report, Snapshot) {
		ctx := newTestContext(t, 30, 42)
		var last Snapshot
		require.NoError(t, ctx.Run(context.Background(), func(s Snapshot) { last = s }))
		return ctx.Report(), last
	}
	r1, s1 := run()
	r2, s2 := run()
	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)
	assert.True(t, s1.Stopped)
	assert.Equal(t, r1, s1.Report)
}

func TestRunObservesMonotonicCounters(t *testing.T) {
	ctx := newTestContext(t, 60, 3)
	var last Snapshot
	observed := 0
	err := ctx.Run(context.Background(), func(s Snapshot) {
		observed++
		assert.GreaterOrEqual(t, s.PedestrianCollisions, last.PedestrianCollisions)
		assert.GreaterOrEqual(t, s.VehicleCollisions, last.VehicleCollisions)
		assert.GreaterOrEqual(t, s.Flips, last.Flips)
		for i := 1; i < len(s.Vehicles); i++ {
			assert.Less(t, s.Vehicles[i-1].ID, s.Vehicles[i].ID)
		}
		for _, p := range s.Pedestrians {
			assert.True(t, entity.InBounds(p.Position))
		}
		last = s
	})
	require.NoError(t, err)
	assert.Equal(t, 3600, observed)
	assert.Equal(t, int32(3600), last.Step)
}

func TestRunCancelled(t *testing.T) {
	ctx := newTestContext(t, 60, 1)
	c, cancel := context.WithCancel(context.Background())
	steps := 0
	err := ctx.Run(c, func(Snapshot) {
		steps++
		if steps == 10 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ctx.Stopped())
	assert.Equal(t, int32(10), ctx.Clock().InternalStep)
}

func TestSnapshotPhaseMirrorsLight(t *testing.T) {
	ctx := newTestContext(t, 60, 1)
	for range 300 {
		ctx.Advance(0)
	}
	s := ctx.Snapshot()
	assert.Equal(t, entity.PhaseEW, s.Phase)
	assert.Equal(t, s.Phase, s.PedestrianPhase)
	assert.Zero(t, s.PhaseElapsed)
}

func TestRunRealtimeUsesWallClock(t *testing.T) {
	ctx, err := NewContext(config.Config{
		Control: config.Control{
			Step:     config.ControlStep{Duration: 0.1},
			Realtime: true,
			FPS:      200,
			Seed:     1,
		},
	})
	require.NoError(t, err)

	start := time.Now()
	var times []float64
	require.NoError(t, ctx.Run(context.Background(), func(s Snapshot) { times = append(times, s.Time) }))
	elapsed := time.Since(start)

	assert.True(t, ctx.Stopped())
	// 每步流逝真实的帧间隔，步数约为duration*fps，总耗时不少于duration
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	require.NotEmpty(t, times)
	assert.LessOrEqual(t, len(times), 25)
	assert.GreaterOrEqual(t, ctx.Clock().T, 0.1-1e-9)
	for i := 1; i < len(times); i++ {
		assert.Greater(t, times[i], times[i-1])
	}
}
