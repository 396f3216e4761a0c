package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/types"
)

func preparedSession(t *testing.T) (*Session, *event.Recorder) {
	t.Helper()
	lvl := testLevel(1, map[types.DefenderType]int{types.DefenderType1: 1, types.DefenderType3: 2}, testSpawn(types.EnemyType1, 1))
	s, rec := newTestSession(t, testBundle(t, 4, lvl))
	require.True(t, s.StartGame())
	require.Equal(t, types.StatePreparation, s.State())
	return s, rec
}

func TestPlaceDefenderConsumesInventory(t *testing.T) {
	s, rec := preparedSession(t)

	id, err := s.PlaceDefender(types.DefenderType1, types.Cell{Col: 1, Row: 6})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, 0, s.Remaining(types.DefenderType1))
	assert.Equal(t, id, s.Grid().Occupant(types.Cell{Col: 1, Row: 6}))

	placed := rec.OfType(event.TypeDefenderPlaced)
	require.Len(t, placed, 1)
	assert.Equal(t, types.DefenderType1, placed[0].(event.DefenderPlaced).DefenderType)
}

func TestPlaceDefenderRejections(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(s *Session)
		dt     types.DefenderType
		cell   types.Cell
		reason grid.PlacementReason
		target error
	}{
		{"敌人区域", nil, types.DefenderType1, types.Cell{Col: 0, Row: 3}, grid.ReasonNotPlaceable, grid.ErrNotPlaceable},
		{"棋盘外", nil, types.DefenderType3, types.Cell{Col: 4, Row: 6}, grid.ReasonNotPlaceable, grid.ErrNotPlaceable},
		{"格子已占用", func(s *Session) {
			_, _ = s.PlaceDefender(types.DefenderType3, types.Cell{Col: 2, Row: 5})
		}, types.DefenderType3, types.Cell{Col: 2, Row: 5}, grid.ReasonOccupied, grid.ErrOccupied},
		{"没有配额", nil, types.DefenderType2, types.Cell{Col: 0, Row: 7}, grid.ReasonInsufficientInventory, grid.ErrInsufficientInventory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := preparedSession(t)
			if tt.setup != nil {
				tt.setup(s)
			}
			before := s.Remaining(tt.dt)
			occupied := len(s.Grid().OccupiedCells())

			_, err := s.PlaceDefender(tt.dt, tt.cell)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))
			var pe *grid.PlacementError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.reason, pe.Reason)

			assert.Equal(t, before, s.Remaining(tt.dt), "inventory must not change")
			assert.Len(t, s.Grid().OccupiedCells(), occupied, "board must not change")
		})
	}
}

func TestRemoveDefenderRestoresInventory(t *testing.T) {
	s, rec := preparedSession(t)
	cell := types.Cell{Col: 3, Row: 4}

	_, err := s.PlaceDefender(types.DefenderType3, cell)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Remaining(types.DefenderType3))

	assert.True(t, s.RemoveDefender(cell))
	assert.Equal(t, 2, s.Remaining(types.DefenderType3))
	assert.False(t, s.Grid().IsOccupied(cell))
	assert.False(t, s.RemoveDefender(cell), "removing an empty cell")
	assert.Equal(t, 1, rec.Count(event.TypeDefenderRemoved))
}

func TestPlacementLockedDuringBattle(t *testing.T) {
	s, _ := preparedSession(t)
	cell := types.Cell{Col: 0, Row: 6}
	_, err := s.PlaceDefender(types.DefenderType3, cell)
	require.NoError(t, err)

	require.True(t, s.StartBattle())

	_, err = s.PlaceDefender(types.DefenderType3, types.Cell{Col: 1, Row: 6})
	assert.ErrorIs(t, err, ErrPlacementLocked)
	assert.False(t, s.RemoveDefender(cell))
	assert.True(t, s.Grid().IsOccupied(cell))
	assert.Equal(t, 1, s.Remaining(types.DefenderType3))
}

func TestSelectDefenderType(t *testing.T) {
	s, rec := preparedSession(t)

	assert.False(t, s.SelectDefenderType(types.DefenderType2), "no allocation")
	assert.Equal(t, types.DefenderUnknown, s.SelectedDefenderType())

	require.True(t, s.SelectDefenderType(types.DefenderType1))
	assert.Equal(t, 1, rec.Count(event.TypeDefenderTypeSelected))

	_, err := s.PlaceSelected(types.Cell{Col: 0, Row: 7})
	require.NoError(t, err)
	assert.Equal(t, types.DefenderUnknown, s.SelectedDefenderType(), "selection clears when stock runs out")

	_, err = s.PlaceSelected(types.Cell{Col: 1, Row: 7})
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.False(t, s.SelectDefenderType(types.DefenderType1))
}

func TestClearAllIgnoresLock(t *testing.T) {
	s, rec := preparedSession(t)
	_, err := s.PlaceDefender(types.DefenderType3, types.Cell{Col: 0, Row: 4})
	require.NoError(t, err)
	_, err = s.PlaceDefender(types.DefenderType3, types.Cell{Col: 1, Row: 4})
	require.NoError(t, err)

	s.placement.Lock()
	assert.Equal(t, 2, s.placement.ClearAll())
	assert.Empty(t, s.Grid().OccupiedCells())
	assert.Equal(t, 0, s.placement.Count())
	assert.GreaterOrEqual(t, rec.Count(event.TypeBoardCleared), 1)
}
