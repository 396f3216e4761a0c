package enemy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/types"
)

func newPool(perType int, expandable bool) *Pool {
	return NewPool(config.DefaultUnitStats(), PoolOptions{InitialPerType: perType, Expandable: expandable})
}

func testLayout() grid.Layout {
	return grid.NewLayout(config.DefaultGameConfig().Board)
}

func TestNewPoolPrepopulates(t *testing.T) {
	p := newPool(2, false)
	assert.Equal(t, 6, p.Allocated())
	assert.Equal(t, 0, p.ActiveCount())
	for _, et := range types.AllEnemyTypes() {
		assert.Equal(t, 2, p.FreeCount(et))
	}
}

func TestAcquireInitialisesInstance(t *testing.T) {
	p := newPool(1, false)
	cell := types.Cell{Col: 2, Row: 0}

	e, err := p.Acquire(types.EnemyType2, cell)
	require.NoError(t, err)
	assert.Equal(t, StateAlive, e.State)
	assert.Equal(t, 10, e.Health)
	assert.Equal(t, 10, e.MaxHealth)
	assert.Equal(t, 0.25, e.Speed)
	assert.Equal(t, cell, e.Cell)
	assert.Equal(t, 1, p.ActiveCount())

	got, ok := p.Get(e.ID)
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestPoolRoundTrip(t *testing.T) {
	p := newPool(1, false)

	e, err := p.Acquire(types.EnemyType1, types.Cell{Col: 1})
	require.NoError(t, err)
	e.TakeDamage(2)
	e.Advance(0.5, 8)

	require.True(t, p.Release(e.ID))
	assert.Equal(t, e.MaxHealth, e.Health)
	assert.Equal(t, StateInactive, e.State)
	assert.Equal(t, 0.0, e.Progress)
	assert.Equal(t, 0, p.ActiveCount())
	_, ok := p.Get(e.ID)
	assert.False(t, ok, "released instance must leave the active set")

	assert.False(t, p.Release(e.ID), "double release is rejected")
}

func TestPoolReusesInstances(t *testing.T) {
	p := newPool(1, false)
	initial := p.Allocated()

	for i := 0; i < 50; i++ {
		e, err := p.Acquire(types.EnemyType3, types.Cell{})
		require.NoError(t, err)
		require.True(t, p.Release(e.ID))
	}
	assert.Equal(t, initial, p.Allocated())
}

func TestPoolExhausted(t *testing.T) {
	p := newPool(1, false)

	_, err := p.Acquire(types.EnemyType1, types.Cell{})
	require.NoError(t, err)

	_, err = p.Acquire(types.EnemyType1, types.Cell{})
	assert.True(t, errors.Is(err, ErrPoolExhausted))

	// 其他类型不受影响
	_, err = p.Acquire(types.EnemyType2, types.Cell{})
	assert.NoError(t, err)
}

func TestPoolExpandable(t *testing.T) {
	p := newPool(0, true)
	for i := 0; i < 5; i++ {
		_, err := p.Acquire(types.EnemyType1, types.Cell{})
		require.NoError(t, err)
	}
	assert.Equal(t, 5, p.Allocated())
	assert.Equal(t, 5, p.ActiveCount())
}

func TestReleaseAll(t *testing.T) {
	p := newPool(2, false)
	for _, et := range types.AllEnemyTypes() {
		_, err := p.Acquire(et, types.Cell{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.ReleaseAll())
	assert.Equal(t, 0, p.ActiveCount())
	for _, et := range types.AllEnemyTypes() {
		assert.Equal(t, 2, p.FreeCount(et))
	}
}

func TestActiveKeepsSpawnOrder(t *testing.T) {
	p := newPool(3, false)
	a, _ := p.Acquire(types.EnemyType1, types.Cell{Col: 0})
	b, _ := p.Acquire(types.EnemyType2, types.Cell{Col: 1})
	c, _ := p.Acquire(types.EnemyType1, types.Cell{Col: 2})
	p.Release(b.ID)

	active := p.Active()
	require.Len(t, active, 2)
	assert.Same(t, a, active[0])
	assert.Same(t, c, active[1])
	assert.Less(t, a.Seq, c.Seq)
}

func TestNearestPrefersCloserThenEarlier(t *testing.T) {
	p := newPool(3, false)
	l := testLayout()
	target := l.ToSpace(types.Cell{Col: 1, Row: 3})

	far, _ := p.Acquire(types.EnemyType1, types.Cell{Col: 1, Row: 3})
	far.Progress = 0.5
	first, _ := p.Acquire(types.EnemyType2, types.Cell{Col: 1, Row: 3})
	second, _ := p.Acquire(types.EnemyType3, types.Cell{Col: 1, Row: 3})

	got, ok := p.Nearest(target, 0.75, l, nil)
	require.True(t, ok)
	assert.Same(t, first, got, "equal distance resolves to the first spawned")

	near := p.Near(target, 0.75, l, nil)
	require.Len(t, near, 3)
	assert.Same(t, first, near[0])
	assert.Same(t, second, near[1])
	assert.Same(t, far, near[2])
}

func TestNearExcludesTerminalAndFiltered(t *testing.T) {
	p := newPool(3, false)
	l := testLayout()
	cell := types.Cell{Col: 2, Row: 2}

	dead, _ := p.Acquire(types.EnemyType1, cell)
	dead.TakeDamage(100)
	other, _ := p.Acquire(types.EnemyType1, types.Cell{Col: 3, Row: 2})

	_, ok := p.Nearest(l.ToSpace(cell), 0.75, l, nil)
	assert.False(t, ok, "dead enemies are never candidates")

	// 相邻列的敌人超出容差
	_, ok = p.Nearest(l.ToSpace(cell), 0.75, l, nil)
	assert.False(t, ok)

	wide := p.Near(l.ToSpace(cell), 5, l, func(e *Enemy) bool { return e.Cell.Col == 2 })
	assert.Empty(t, wide)
	wide = p.Near(l.ToSpace(cell), 5, l, nil)
	require.Len(t, wide, 1)
	assert.Same(t, other, wide[0])
}

func TestAcquireUnknownType(t *testing.T) {
	p := newPool(1, true)
	_, err := p.Acquire(types.EnemyUnknown, types.Cell{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrPoolExhausted))
}
