package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-crossing-sim/utils/container"
)

type testData struct {
	container.IncrementalItemBase
	id int
}

func ids(a *container.IncrementalArray[*testData]) []int {
	res := make([]int, 0, a.Len())
	for _, x := range a.Data() {
		res = append(res, x.id)
	}
	return res
}

func TestArrayInit(t *testing.T) {
	a := container.NewIncrementalArray[*testData]()
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Prepare())
}

func TestArrayDeferredAdd(t *testing.T) {
	a := container.NewIncrementalArray[*testData]()
	d0, d1 := &testData{id: 0}, &testData{id: 1}
	a.Add(d0)
	a.Add(d1)
	// 未Prepare前不可见
	assert.Equal(t, 0, a.Len())
	a.Prepare()
	assert.Equal(t, []int{0, 1}, ids(a))
	assert.Equal(t, 0, d0.Index())
	assert.Equal(t, 1, d1.Index())
}

func TestArrayCompactionKeepsOrder(t *testing.T) {
	a := container.NewIncrementalArray[*testData]()
	items := make([]*testData, 6)
	for i := range items {
		items[i] = &testData{id: i}
		a.Add(items[i])
	}
	a.Prepare()

	a.Remove(items[1])
	a.Remove(items[4])
	a.Remove(items[1]) // 重复删除
	assert.True(t, a.IsRemoved(items[1]))
	assert.False(t, a.IsRemoved(items[2]))
	a.Add(&testData{id: 6})
	removed := a.Prepare()

	assert.Equal(t, []*testData{items[1], items[4]}, removed)
	assert.Equal(t, []int{0, 2, 3, 5, 6}, ids(a))
	for i, x := range a.Data() {
		assert.Equal(t, i, x.Index())
	}
	assert.Equal(t, -1, items[1].Index())
}

func TestArrayRemovePending(t *testing.T) {
	a := container.NewIncrementalArray[*testData]()
	d := &testData{id: 0}
	a.Add(d)
	assert.Panics(t, func() { a.Remove(d) })
}
