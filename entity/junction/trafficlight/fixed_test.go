package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity/junction/trafficlight"
)

func TestFixedTrafficLightInvalidCycle(t *testing.T) {
	_, err := trafficlight.NewFixedTrafficLight(0)
	assert.Error(t, err)
	_, err = trafficlight.NewFixedTrafficLight(-5)
	assert.Error(t, err)
}

func TestFixedTrafficLightFlipsAfterCycle(t *testing.T) {
	l, err := trafficlight.NewFixedTrafficLight(300)
	require.NoError(t, err)
	assert.Equal(t, entity.PhaseNS, l.Phase())

	for i := 0; i < 299; i++ {
		l.Update()
		assert.Equal(t, entity.PhaseNS, l.Phase(), "tick %d", i+1)
	}
	l.Update()
	assert.Equal(t, entity.PhaseEW, l.Phase())
	assert.Equal(t, int32(1), l.Flips())
	assert.Equal(t, int32(0), l.Elapsed())

	for i := 0; i < 300; i++ {
		l.Update()
	}
	assert.Equal(t, entity.PhaseNS, l.Phase())
	assert.Equal(t, int32(2), l.Flips())
}

func TestFixedTrafficLightPhaseInvariants(t *testing.T) {
	l, err := trafficlight.NewFixedTrafficLight(7)
	require.NoError(t, err)
	for tick := 1; tick <= 100; tick++ {
		l.Update()
		assert.Equal(t, l.Phase(), l.PedestrianPhase())
		// 恰好一条轴为绿灯
		assert.NotEqual(t, l.VehicleGreen(entity.North), l.VehicleGreen(entity.East))
		assert.Equal(t, l.VehicleGreen(entity.North), l.VehicleGreen(entity.South))
		assert.Equal(t, l.VehicleGreen(entity.East), l.VehicleGreen(entity.West))
		// 行人与车辆同轴放行
		assert.Equal(t, l.VehicleGreen(entity.North), l.PedestrianGreen(entity.CrossingNS))
		assert.Equal(t, l.VehicleGreen(entity.North), l.PedestrianGreen(entity.CrossingSN))
		assert.Equal(t, l.VehicleGreen(entity.East), l.PedestrianGreen(entity.CrossingEW))
		assert.Equal(t, l.VehicleGreen(entity.East), l.PedestrianGreen(entity.CrossingWE))
		assert.Equal(t, int32(tick/7), l.Flips())
	}
}
