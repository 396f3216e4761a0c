package grid

import (
	"errors"
	"fmt"

	"github.com/decker502/boarddefence/pkg/types"
)

// PlacementReason 放置被拒绝的原因
type PlacementReason int

const (
	// ReasonNotPlaceable 格子越界或不在放置区
	ReasonNotPlaceable PlacementReason = iota + 1
	// ReasonOccupied 格子已有防御单位
	ReasonOccupied
	// ReasonInsufficientInventory 该类型的剩余配额为 0
	ReasonInsufficientInventory
)

func (r PlacementReason) String() string {
	switch r {
	case ReasonNotPlaceable:
		return "NotPlaceable"
	case ReasonOccupied:
		return "Occupied"
	case ReasonInsufficientInventory:
		return "InsufficientInventory"
	default:
		return fmt.Sprintf("PlacementReason(%d)", int(r))
	}
}

// 与 PlacementError 配合 errors.Is 使用的哨兵错误
var (
	ErrNotPlaceable          = errors.New("cell is not placeable")
	ErrOccupied              = errors.New("cell is occupied")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// PlacementError 放置命令被拒绝，棋盘状态不变
type PlacementError struct {
	Reason PlacementReason
	Cell   types.Cell
}

// NewPlacementError 创建放置错误
func NewPlacementError(reason PlacementReason, cell types.Cell) *PlacementError {
	return &PlacementError{Reason: reason, Cell: cell}
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place at %s: %s", e.Cell, e.sentinel())
}

func (e *PlacementError) sentinel() error {
	switch e.Reason {
	case ReasonNotPlaceable:
		return ErrNotPlaceable
	case ReasonOccupied:
		return ErrOccupied
	case ReasonInsufficientInventory:
		return ErrInsufficientInventory
	}
	return errors.New(e.Reason.String())
}

// Unwrap 让 errors.Is(err, grid.ErrOccupied) 之类的判断生效
func (e *PlacementError) Unwrap() error {
	return e.sentinel()
}
