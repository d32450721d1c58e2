package ecs

// ID 是竞技场槽位的唯一标识符
type ID uint64

// Arena 管理一类实体的存活集合
//
// 粒子池建立在这个竞技场之上：槽位 ID 稳定，删除是延迟的
// （先标记，帧末统一清理），避免在遍历中途改变集合。
type Arena[T any] struct {
	nextID uint64
	// 槽位映射: ID -> 实体实例
	slots map[ID]*T
	// 插入顺序（保证遍历/绘制顺序确定）
	order []ID
	// 待删除的 ID 列表
	toDestroy []ID
}

// NewArena 创建一个新的 Arena 实例
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{
		nextID:    1, // ID从1开始,0保留为无效ID
		slots:     make(map[ID]*T),
		order:     make([]ID, 0),
		toDestroy: make([]ID, 0),
	}
}

// Create 放入新实体并返回唯一ID
func (a *Arena[T]) Create(v *T) ID {
	id := ID(a.nextID)
	a.nextID++
	a.slots[id] = v
	a.order = append(a.order, id)
	return id
}

// Get 获取指定槽位的实体
func (a *Arena[T]) Get(id ID) (*T, bool) {
	v, ok := a.slots[id]
	return v, ok
}

// Destroy 标记实体待删除(不立即删除)
func (a *Arena[T]) Destroy(id ID) {
	a.toDestroy = append(a.toDestroy, id)
}

// RemoveMarked 清理所有标记删除的实体
func (a *Arena[T]) RemoveMarked() {
	if len(a.toDestroy) == 0 {
		return
	}
	dead := make(map[ID]bool, len(a.toDestroy))
	for _, id := range a.toDestroy {
		if _, ok := a.slots[id]; ok {
			delete(a.slots, id)
			dead[id] = true
		}
	}
	kept := a.order[:0]
	for _, id := range a.order {
		if !dead[id] {
			kept = append(kept, id)
		}
	}
	a.order = kept
	a.toDestroy = a.toDestroy[:0]
}

// Len 返回存活实体数量（含已标记未清理的）
func (a *Arena[T]) Len() int {
	return len(a.slots)
}

// All 按插入顺序返回所有存活实体的 ID
//
// 返回副本，调用方在遍历中 Destroy 不会影响快照。
func (a *Arena[T]) All() []ID {
	ids := make([]ID, len(a.order))
	copy(ids, a.order)
	return ids
}

// Clear 立即清空全部实体
func (a *Arena[T]) Clear() {
	a.slots = make(map[ID]*T)
	a.order = a.order[:0]
	a.toDestroy = a.toDestroy[:0]
}
