package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	_, _, ok := q.First()
	assert.False(t, ok)

	q.HeapPush("c", 3)
	q.HeapPush("a", 1)
	q.HeapPush("b1", 2)
	q.HeapPush("b2", 2)
	assert.Equal(t, 4, q.Len())

	v, p, ok := q.First()
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 1., p)

	values, priorities := q.PopUntil(2)
	// 相同优先级按入队顺序出队
	assert.Equal(t, []string{"a", "b1", "b2"}, values)
	assert.Equal(t, []float64{1, 2, 2}, priorities)
	assert.Equal(t, 1, q.Len())

	v, p = q.HeapPop()
	assert.Equal(t, "c", v)
	assert.Equal(t, 3., p)
	values, _ = q.PopUntil(100)
	assert.Empty(t, values)
}
