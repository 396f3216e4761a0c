package enemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/boarddefence/pkg/types"
)

func aliveEnemy(health int, speed float64) *Enemy {
	return &Enemy{Health: health, MaxHealth: health, Speed: speed, State: StateAlive}
}

func TestTakeDamage(t *testing.T) {
	e := aliveEnemy(5, 1)

	applied, died := e.TakeDamage(3)
	assert.True(t, applied)
	assert.False(t, died)
	assert.Equal(t, 2, e.Health)

	applied, died = e.TakeDamage(10)
	assert.True(t, applied)
	assert.True(t, died)
	assert.Equal(t, StateDead, e.State)
	assert.True(t, e.IsDead())

	// 终态后不再受伤
	applied, died = e.TakeDamage(1)
	assert.False(t, applied)
	assert.False(t, died)
	assert.Equal(t, -8, e.Health)
}

func TestTakeDamageIgnoresNonPositive(t *testing.T) {
	e := aliveEnemy(5, 1)
	applied, _ := e.TakeDamage(0)
	assert.False(t, applied)
	applied, _ = e.TakeDamage(-3)
	assert.False(t, applied)
	assert.Equal(t, 5, e.Health)
}

// TestHealthMonotonic 生命值单调不增，死亡只发生一次
func TestHealthMonotonic(t *testing.T) {
	e := aliveEnemy(10, 1)
	deaths := 0
	last := e.Health
	for _, dmg := range []int{1, 0, 2, -5, 3, 4, 7, 1} {
		_, died := e.TakeDamage(dmg)
		if died {
			deaths++
		}
		require.LessOrEqual(t, e.Health, last)
		last = e.Health
	}
	assert.Equal(t, 1, deaths)
	assert.True(t, e.IsDead())
}

func TestAdvance(t *testing.T) {
	e := aliveEnemy(3, 0.5)
	e.Cell = types.Cell{Col: 1, Row: 0}

	rows, escaped := e.Advance(1, 8)
	assert.Equal(t, 0, rows)
	assert.False(t, escaped)
	assert.InDelta(t, 0.5, e.Progress, 1e-9)

	rows, _ = e.Advance(1, 8)
	assert.Equal(t, 1, rows)
	assert.Equal(t, 1, e.Cell.Row)
	assert.InDelta(t, 0, e.Progress, 1e-9)

	// 一次大步长可跨过多行
	rows, _ = e.Advance(6, 8)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, e.Cell.Row)
	assert.Equal(t, 1, e.Cell.Col, "column never changes")
}

func TestAdvanceEscapes(t *testing.T) {
	e := aliveEnemy(3, 1)
	e.Cell = types.Cell{Col: 0, Row: 7}

	rows, escaped := e.Advance(1, 8)
	assert.Equal(t, 1, rows)
	assert.True(t, escaped)
	assert.Equal(t, StateEscaped, e.State)

	// 终态不再移动
	rows, escaped = e.Advance(5, 8)
	assert.Equal(t, 0, rows)
	assert.False(t, escaped)
	assert.Equal(t, 8, e.Cell.Row)
}

func TestDeadEnemyStopsMoving(t *testing.T) {
	e := aliveEnemy(1, 1)
	e.Cell = types.Cell{Row: 2}
	e.TakeDamage(1)
	e.Advance(3, 8)
	assert.Equal(t, 2, e.Cell.Row)
}
