// Package enemy 定义敌人实例、状态机以及对象池
package enemy

import (
	"fmt"

	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/types"
)

// ID 敌人在对象池中的槽位编号，实例被回收复用时 ID 不变
type ID int

// State 敌人状态
type State int

const (
	// StateInactive 位于对象池空闲列表中
	StateInactive State = iota
	// StateAlive 在场上移动、可被攻击
	StateAlive
	// StateDead 生命值降到 0 以下（终态）
	StateDead
	// StateEscaped 越过最后一行到达基地（终态）
	StateEscaped
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateAlive:
		return "Alive"
	case StateDead:
		return "Dead"
	case StateEscaped:
		return "Escaped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Enemy 敌人实例
type Enemy struct {
	ID        ID
	Seq       uint64 // 生成序号，越小越早生成；用于目标选择的平局裁决
	Type      types.EnemyType
	Health    int
	MaxHealth int
	Speed     float64 // 格/秒
	Cell      types.Cell
	Progress  float64 // 当前格到下一行的进度 [0,1)
	State     State
}

// IsAlive 是否可被攻击和移动
func (e *Enemy) IsAlive() bool {
	return e.State == StateAlive
}

// IsDead 生命值是否已耗尽
func (e *Enemy) IsDead() bool {
	return e.Health <= 0
}

// IsTerminal 是否处于 Dead 或 Escaped
func (e *Enemy) IsTerminal() bool {
	return e.State == StateDead || e.State == StateEscaped
}

// TakeDamage 扣除生命值
// 返回:
//   - applied: 伤害是否生效（终态或非正伤害时为 false）
//   - died: 本次伤害是否导致死亡
func (e *Enemy) TakeDamage(amount int) (applied, died bool) {
	if e.State != StateAlive || amount <= 0 {
		return false, false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.State = StateDead
		return true, true
	}
	return true, false
}

// Advance 按速度推进，跨过格子边界时行号加一
// 返回:
//   - rows: 本次跨过的行数
//   - escaped: 是否越过最后一行
func (e *Enemy) Advance(dt float64, height int) (rows int, escaped bool) {
	if e.State != StateAlive || dt <= 0 {
		return 0, false
	}
	e.Progress += e.Speed * dt
	for e.Progress >= 1 {
		e.Progress -= 1
		e.Cell.Row++
		rows++
		if e.Cell.Row >= height {
			e.Progress = 0
			e.State = StateEscaped
			return rows, true
		}
	}
	return rows, false
}

// Position 返回敌人当前的连续坐标（当前格与下一行之间插值）
func (e *Enemy) Position(l grid.Layout) types.Vec2 {
	return l.Between(e.Cell, e.Progress)
}
