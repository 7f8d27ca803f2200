package entity_test

import (
	"testing"

	"git.fiblab.net/general/common/v2/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/entity"
)

func TestInBoundsIncludesEdges(t *testing.T) {
	cases := []struct {
		p  geometry.Point
		in bool
	}{
		{geometry.Point{X: 0, Y: 0}, true},
		{geometry.Point{X: entity.Width, Y: entity.Height}, true},
		{geometry.Point{X: 400, Y: 800}, true},
		{geometry.Point{X: -1, Y: 400}, false},
		{geometry.Point{X: 400, Y: 801}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.in, entity.InBounds(c.p), "%+v", c.p)
	}
}

func TestBoxInBoundsAtSpawn(t *testing.T) {
	// 所有方向的出生点都与区域相交
	for _, d := range entity.Directions {
		assert.True(t, entity.BoxInBounds(entity.VehicleSpawn(d), entity.VehicleSize), d.String())
	}
	assert.True(t, entity.BoxInBounds(geometry.Point{X: -entity.VehicleSize, Y: 0}, entity.VehicleSize))
	assert.False(t, entity.BoxInBounds(geometry.Point{X: -entity.VehicleSize - 2, Y: 0}, entity.VehicleSize))
	assert.False(t, entity.BoxInBounds(geometry.Point{X: 400, Y: entity.Height + 2}, entity.VehicleSize))
}

func TestPedestrianSpawnInBounds(t *testing.T) {
	for _, c := range entity.Crossings {
		assert.True(t, entity.InBounds(entity.PedestrianSpawn(c)), c.String())
	}
}
