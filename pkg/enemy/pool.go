package enemy

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/types"
)

// ErrPoolExhausted 对象池不可扩展且该类型没有空闲实例
var ErrPoolExhausted = errors.New("enemy pool exhausted")

// PoolOptions 对象池参数
type PoolOptions struct {
	InitialPerType int  // 每种敌人的预分配数量
	Expandable     bool // 空闲列表为空时是否新建实例
}

// Pool 敌人对象池，同时充当场上敌人的注册表
//
// 实例存放在一个按 ID 索引的数组中，每种敌人维护一条空闲列表；
// 活跃实例按生成顺序记录。
type Pool struct {
	stats   map[types.EnemyType]config.EnemyStats
	opts    PoolOptions
	slots   []*Enemy
	free    map[types.EnemyType][]ID
	active  []ID
	nextSeq uint64
}

// NewPool 创建对象池并按类型预分配实例
func NewPool(stats *config.UnitStats, opts PoolOptions) *Pool {
	p := &Pool{
		stats: make(map[types.EnemyType]config.EnemyStats, len(stats.Enemies)),
		opts:  opts,
		free:  make(map[types.EnemyType][]ID),
	}
	for t, s := range stats.Enemies {
		p.stats[t] = s
	}
	for _, t := range types.AllEnemyTypes() {
		if _, ok := p.stats[t]; !ok {
			continue
		}
		for i := 0; i < opts.InitialPerType; i++ {
			e := p.allocate(t)
			p.free[t] = append(p.free[t], e.ID)
		}
	}
	log.Printf("[EnemyPool] Pre-populated %d instances (%d per type, expandable=%v)", len(p.slots), opts.InitialPerType, opts.Expandable)
	return p
}

func (p *Pool) allocate(t types.EnemyType) *Enemy {
	e := &Enemy{ID: ID(len(p.slots)), Type: t}
	p.reset(e)
	p.slots = append(p.slots, e)
	return e
}

func (p *Pool) reset(e *Enemy) {
	s := p.stats[e.Type]
	e.Health = s.Health
	e.MaxHealth = s.Health
	e.Speed = s.Speed
	e.Cell = types.Cell{}
	e.Progress = 0
	e.State = StateInactive
}

// Acquire 取出一个 t 类型的实例并放置在 cell 上
// 返回:
//   - *Enemy: 满血、Alive 状态的实例
//   - error: 池不可扩展且无空闲实例时返回 ErrPoolExhausted
func (p *Pool) Acquire(t types.EnemyType, cell types.Cell) (*Enemy, error) {
	if _, ok := p.stats[t]; !ok {
		return nil, fmt.Errorf("no stats for enemy type %s", t)
	}

	var e *Enemy
	if free := p.free[t]; len(free) > 0 {
		id := free[len(free)-1]
		p.free[t] = free[:len(free)-1]
		e = p.slots[id]
	} else if p.opts.Expandable {
		e = p.allocate(t)
		log.Printf("[EnemyPool] Expanded pool for %s (allocated=%d)", t, len(p.slots))
	} else {
		return nil, fmt.Errorf("%w: type %s", ErrPoolExhausted, t)
	}

	p.reset(e)
	e.Cell = cell
	e.State = StateAlive
	p.nextSeq++
	e.Seq = p.nextSeq
	p.active = append(p.active, e.ID)
	return e, nil
}

// Release 将实例归还空闲列表，重置生命值和位置
// 实例不在活跃集合中时返回 false
func (p *Pool) Release(id ID) bool {
	idx := p.activeIndex(id)
	if idx < 0 {
		return false
	}
	p.active = append(p.active[:idx], p.active[idx+1:]...)
	e := p.slots[id]
	p.reset(e)
	p.free[e.Type] = append(p.free[e.Type], id)
	return true
}

// ReleaseAll 强制回收所有活跃实例，返回回收数量
func (p *Pool) ReleaseAll() int {
	n := len(p.active)
	for len(p.active) > 0 {
		p.Release(p.active[0])
	}
	if n > 0 {
		log.Printf("[EnemyPool] Released all %d active enemies", n)
	}
	return n
}

func (p *Pool) activeIndex(id ID) int {
	for i, a := range p.active {
		if a == id {
			return i
		}
	}
	return -1
}

// Get 返回活跃实例
func (p *Pool) Get(id ID) (*Enemy, bool) {
	if p.activeIndex(id) < 0 {
		return nil, false
	}
	return p.slots[id], true
}

// Active 按生成顺序返回所有活跃实例（包括尚未回收的终态实例）
func (p *Pool) Active() []*Enemy {
	out := make([]*Enemy, len(p.active))
	for i, id := range p.active {
		out[i] = p.slots[id]
	}
	return out
}

// ActiveCount 活跃实例数量
func (p *Pool) ActiveCount() int {
	return len(p.active)
}

// Allocated 已分配实例总数（活跃 + 空闲）
func (p *Pool) Allocated() int {
	return len(p.slots)
}

// FreeCount 某类型的空闲实例数量
func (p *Pool) FreeCount(t types.EnemyType) int {
	return len(p.free[t])
}

// Filter 目标查询的附加筛选条件
type Filter func(*Enemy) bool

// Near 返回距离 target 不超过 tolerance 的 Alive 敌人
// 按距离升序排列，距离相同时先生成的在前
func (p *Pool) Near(target types.Vec2, tolerance float64, layout grid.Layout, filter Filter) []*Enemy {
	type candidate struct {
		e    *Enemy
		dist float64
	}
	cands := make([]candidate, 0)
	for _, id := range p.active {
		e := p.slots[id]
		if !e.IsAlive() {
			continue
		}
		if filter != nil && !filter(e) {
			continue
		}
		d := e.Position(layout).Distance(target)
		if d <= tolerance {
			cands = append(cands, candidate{e: e, dist: d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].e.Seq < cands[j].e.Seq
	})
	out := make([]*Enemy, len(cands))
	for i, c := range cands {
		out[i] = c.e
	}
	return out
}

// Nearest 返回 Near 结果中的第一个
func (p *Pool) Nearest(target types.Vec2, tolerance float64, layout grid.Layout, filter Filter) (*Enemy, bool) {
	cands := p.Near(target, tolerance, layout, filter)
	if len(cands) == 0 {
		return nil, false
	}
	return cands[0], true
}
