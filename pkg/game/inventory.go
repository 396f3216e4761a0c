package game

import "github.com/decker502/boarddefence/pkg/types"

// Inventory 本关剩余可放置的防御单位数量，数量永不为负
type Inventory struct {
	counts map[types.DefenderType]int
}

// NewInventory 按配额创建库存
func NewInventory(alloc map[types.DefenderType]int) *Inventory {
	inv := &Inventory{}
	inv.Reset(alloc)
	return inv
}

// Reset 用新的配额替换库存（负数按 0 处理）
func (i *Inventory) Reset(alloc map[types.DefenderType]int) {
	i.counts = make(map[types.DefenderType]int, len(alloc))
	for t, n := range alloc {
		if n > 0 {
			i.counts[t] = n
		}
	}
}

// Remaining 剩余数量
func (i *Inventory) Remaining(t types.DefenderType) int {
	return i.counts[t]
}

// Consume 扣除一个，数量为 0 时返回 false
func (i *Inventory) Consume(t types.DefenderType) bool {
	if i.counts[t] <= 0 {
		return false
	}
	i.counts[t]--
	return true
}

// Restore 归还一个（移除防御单位时）
func (i *Inventory) Restore(t types.DefenderType) {
	i.counts[t]++
}

// Total 所有类型的剩余总数
func (i *Inventory) Total() int {
	total := 0
	for _, n := range i.counts {
		total += n
	}
	return total
}

// Counts 返回库存副本
func (i *Inventory) Counts() map[types.DefenderType]int {
	out := make(map[types.DefenderType]int, len(i.counts))
	for t, n := range i.counts {
		out[t] = n
	}
	return out
}
