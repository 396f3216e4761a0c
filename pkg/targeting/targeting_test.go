package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/boarddefence/pkg/types"
)

func c(col, row int) types.Cell { return types.Cell{Col: col, Row: row} }

func TestTargetCellsForward(t *testing.T) {
	got := TargetCells(types.DirectionForward, c(2, 6), 4)
	assert.Equal(t, []types.Cell{c(2, 5), c(2, 4), c(2, 3), c(2, 2)}, got)
}

func TestTargetCellsAll(t *testing.T) {
	got := TargetCells(types.DirectionAll, c(1, 6), 2)
	want := []types.Cell{
		c(1, 5), c(1, 4), // up
		c(1, 7), c(1, 8), // down
		c(0, 6), c(-1, 6), // left
		c(2, 6), c(3, 6), // right
	}
	assert.Equal(t, want, got)
}

func TestTargetCellsRangeOne(t *testing.T) {
	got := TargetCells(types.DirectionAll, c(1, 6), 1)
	require.Len(t, got, 4)
	assert.Equal(t, c(1, 5), got[0], "forward cell is scanned first")
}

func TestTargetCellsZeroRange(t *testing.T) {
	assert.Empty(t, TargetCells(types.DirectionForward, c(0, 0), 0))
}

func TestTargetCellsDeterministic(t *testing.T) {
	first := TargetCells(types.DirectionAll, c(3, 7), 3)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, TargetCells(types.DirectionAll, c(3, 7), 3))
	}
}

func TestForwardStaysInColumn(t *testing.T) {
	for col := 0; col < 6; col++ {
		for rng := 1; rng < 8; rng++ {
			for _, cell := range TargetCells(types.DirectionForward, c(col, 7), rng) {
				assert.Equal(t, col, cell.Col)
				assert.Less(t, cell.Row, 7)
			}
		}
	}
}

func TestDirections(t *testing.T) {
	assert.Equal(t, []types.Cell{Up}, Directions(types.DirectionForward))
	assert.Equal(t, []types.Cell{Up, Down, Left, Right}, Directions(types.DirectionAll))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(types.DirectionForward, c(0, 6), 4, c(0, 2)))
	assert.False(t, InRange(types.DirectionForward, c(0, 6), 4, c(1, 3)))
	assert.True(t, InRange(types.DirectionAll, c(1, 6), 1, c(2, 6)))
}
