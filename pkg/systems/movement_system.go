package systems

import "github.com/decker502/boarddefence/pkg/enemy"

// MovementSystem 推进场上所有 Alive 敌人
type MovementSystem struct {
	pool   *enemy.Pool
	height int
}

// NewMovementSystem 创建移动系统，height 为棋盘行数
func NewMovementSystem(pool *enemy.Pool, height int) *MovementSystem {
	return &MovementSystem{pool: pool, height: height}
}

// Update 按生成顺序推进敌人，返回本次越过最后一行的敌人
// 越界的敌人仍留在活跃集合中，由调用方结算后回收
func (s *MovementSystem) Update(dt float64) []*enemy.Enemy {
	var escaped []*enemy.Enemy
	for _, e := range s.pool.Active() {
		if _, out := e.Advance(dt, s.height); out {
			escaped = append(escaped, e)
		}
	}
	return escaped
}
