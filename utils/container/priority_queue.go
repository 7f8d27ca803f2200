package container

import "container/heap"

// item 优先队列中单个元素
// 说明：seq为入队序号，优先级相同时先入队者先出队
type item[T any] struct {
	Value    T       // 元素的值
	Priority float64 // 元素优先级（越小越优先）
	seq      uint64  // 入队序号
	index    int     // 项在堆中的索引
}

// priorityQueue 实现了 heap.Interface
type priorityQueue[T any] []*item[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

func (pq priorityQueue[T]) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue[T]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	n := len(*pq)
	item := x.(*item[T])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.index = -1 // 为了安全起见
	*pq = old[0 : n-1]
	return item
}

// PriorityQueue 稳定的最小优先队列
// 功能：按优先级从小到大出队，优先级相同按入队顺序出队
// 说明：用于按触发时间排列的事件调度
type PriorityQueue[T any] struct {
	queue priorityQueue[T] // 内部优先队列实现
	seq   uint64           // 下一个入队序号
}

// NewPriorityQueue 创建优先队列
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{queue: make(priorityQueue[T], 0)}
}

// Len 获取当前队列长度
func (q *PriorityQueue[T]) Len() int {
	return len(q.queue)
}

// First 查看优先级数值最小的元素，不出队
// 返回：元素值与优先级，队列为空时ok为false
func (q *PriorityQueue[T]) First() (value T, priority float64, ok bool) {
	if len(q.queue) == 0 {
		return value, 0, false
	}
	return q.queue[0].Value, q.queue[0].Priority, true
}

// HeapPush 加入元素并维护堆结构
func (q *PriorityQueue[T]) HeapPush(value T, priority float64) {
	heap.Push(&q.queue, &item[T]{
		Value:    value,
		Priority: priority,
		seq:      q.seq,
	})
	q.seq++
}

// HeapPop 弹出优先级最高的元素
func (q *PriorityQueue[T]) HeapPop() (value T, priority float64) {
	item := heap.Pop(&q.queue).(*item[T])
	return item.Value, item.Priority
}

// PopUntil 弹出所有优先级不大于limit的元素（按出队顺序）
func (q *PriorityQueue[T]) PopUntil(limit float64) (values []T, priorities []float64) {
	for len(q.queue) > 0 && q.queue[0].Priority <= limit {
		v, p := q.HeapPop()
		values = append(values, v)
		priorities = append(priorities, p)
	}
	return
}
