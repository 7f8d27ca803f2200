package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/randengine"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := randengine.New(7)
	b := randengine.New(7)
	for range 100 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestPTrueBounds(t *testing.T) {
	e := randengine.New(1)
	for range 1000 {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}

func TestChoice(t *testing.T) {
	e := randengine.New(3)
	candidates := []string{"a", "b", "c"}
	seen := map[string]int{}
	for range 300 {
		seen[randengine.Choice(e, candidates)]++
	}
	assert.Len(t, seen, 3)
	assert.Panics(t, func() { randengine.Choice(e, []int{}) })
}
