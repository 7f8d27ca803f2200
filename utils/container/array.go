package container

import (
	"log"

	"github.com/samber/lo"
)

// IIncrementalItem 支持增量更新的元素接口
// 功能：定义支持增量更新的元素必须实现的方法
// 说明：元素需要记录自己在数组中的位置，用于O(1)标记删除
type IIncrementalItem interface {
	Index() int         // 获取元素的索引
	SetIndex(index int) // 设置元素的索引
}

// IncrementalItemBase 增量元素基类
// 功能：提供增量元素的基础实现，包含索引管理功能
// 说明：可以作为其他结构体的嵌入字段，快速实现IIncrementalItem接口
type IncrementalItemBase struct {
	index int // 元素在数组中的索引
}

// Index 获取元素的索引
func (b *IncrementalItemBase) Index() int {
	return b.index
}

// SetIndex 设置元素的索引
func (b *IncrementalItemBase) SetIndex(index int) {
	b.index = index
}

// IncrementalArray 增量数组，支持延迟增删的有序数组
// 功能：遍历阶段只记录增删，由Prepare一次性完成压缩，避免边遍历边修改
// 说明：压缩保持元素原有的相对顺序（生成顺序），新增元素追加在末尾
type IncrementalArray[T IIncrementalItem] struct {
	data    []T              // 主数据数组
	add     []T              // 待添加的元素列表
	removed map[int]struct{} // 待删除元素的索引集合
}

// NewIncrementalArray 创建增量数组
func NewIncrementalArray[T IIncrementalItem]() *IncrementalArray[T] {
	return &IncrementalArray[T]{
		data:    make([]T, 0),
		add:     make([]T, 0),
		removed: make(map[int]struct{}),
	}
}

// Len 获取当前数组长度
func (a *IncrementalArray[T]) Len() int {
	return len(a.data)
}

// Data 获取原始数据
// 功能：返回主数据数组（不含尚未Prepare的增删）
// 说明：调用方不得修改返回的切片
func (a *IncrementalArray[T]) Data() []T {
	return a.data
}

// Add 增加元素（等到Prepare时才会真正增加）
func (a *IncrementalArray[T]) Add(value T) {
	value.SetIndex(-1)
	a.add = append(a.add, value)
}

// Remove 删除元素（等到Prepare时才会真正删除）
// 功能：标记主数组中的元素待删除，重复标记同一元素无副作用
func (a *IncrementalArray[T]) Remove(value T) {
	ind := value.Index()
	if ind < 0 || ind >= len(a.data) {
		log.Panicf("remove item with invalid index %d (len=%d)", ind, len(a.data))
	}
	a.removed[ind] = struct{}{}
}

// IsRemoved 元素是否已被标记删除
func (a *IncrementalArray[T]) IsRemoved(value T) bool {
	_, ok := a.removed[value.Index()]
	return ok && value.Index() >= 0
}

// Prepare 执行增量操作
// 功能：统一执行所有待处理的删除与添加操作
// 返回：本次被删除的元素（按原顺序）
// 算法说明：
// 1. 将主数组划分为保留与删除两部分，保留部分维持原有顺序
// 2. 将待添加元素追加到末尾
// 3. 重新写入所有元素的索引
// 4. 清空待处理列表
func (a *IncrementalArray[T]) Prepare() (removed []T) {
	if len(a.removed) > 0 {
		var kept []T
		kept, removed = lo.FilterReject(a.data, func(_ T, i int) bool {
			_, ok := a.removed[i]
			return !ok
		})
		a.data = kept
	}
	a.data = append(a.data, a.add...)
	for i, x := range a.data {
		x.SetIndex(i)
	}
	for _, x := range removed {
		x.SetIndex(-1)
	}
	a.add = make([]T, 0)
	a.removed = make(map[int]struct{})
	return removed
}
