// Package grid 管理棋盘格子的占用状态
//
// 棋盘由 width 列 × height 行组成，敌人从第 0 行进入；
// 行号 >= placementRowStart 的格子构成放置区，每个格子最多容纳一个防御单位。
package grid

import (
	"log"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/types"
)

// Grid 棋盘占用表
// 占用者以实体 ID 记录，0 表示空格
type Grid struct {
	width             int
	height            int
	placementRowStart int
	occupancy         []ecs.EntityID // 行优先存储
}

// New 创建棋盘，所有格子初始为空
// 参数:
//   - width, height: 列数和行数，均需 >= 1
//   - placementRowStart: 放置区起始行，需在 [0, height] 内（等于 height 表示没有放置区）
//
// 返回:
//   - *Grid: 棋盘实例
//   - error: 参数非法时返回 *config.ConfigError
func New(width, height, placementRowStart int) (*Grid, error) {
	b := config.BoardConfig{
		Width:             width,
		Height:            height,
		PlacementRowStart: placementRowStart,
		CellSize:          1,
	}
	if err := b.Validate("grid"); err != nil {
		return nil, err
	}
	return &Grid{
		width:             width,
		height:            height,
		placementRowStart: placementRowStart,
		occupancy:         make([]ecs.EntityID, width*height),
	}, nil
}

// NewFromConfig 按棋盘配置创建
func NewFromConfig(b config.BoardConfig) (*Grid, error) {
	return New(b.Width, b.Height, b.PlacementRowStart)
}

// Width 返回列数
func (g *Grid) Width() int { return g.width }

// Height 返回行数
func (g *Grid) Height() int { return g.height }

// PlacementRowStart 返回放置区起始行
func (g *Grid) PlacementRowStart() int { return g.placementRowStart }

// IsValid 边界检查
func (g *Grid) IsValid(c types.Cell) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// IsPlaceable 格子在棋盘内且位于放置区
func (g *Grid) IsPlaceable(c types.Cell) bool {
	return g.IsValid(c) && c.Row >= g.placementRowStart
}

func (g *Grid) index(c types.Cell) int {
	return c.Row*g.width + c.Col
}

// IsOccupied 检查格子是否有防御单位（越界视为未占用）
func (g *Grid) IsOccupied(c types.Cell) bool {
	return g.Occupant(c) != 0
}

// Occupant 返回格子上的防御单位 ID，空格或越界返回 0
func (g *Grid) Occupant(c types.Cell) ecs.EntityID {
	if !g.IsValid(c) {
		return 0
	}
	return g.occupancy[g.index(c)]
}

// TryPlace 将防御单位放到格子上
// 返回:
//   - error: 不在放置区返回 ReasonNotPlaceable，已被占用返回 ReasonOccupied；失败时棋盘不变
func (g *Grid) TryPlace(c types.Cell, id ecs.EntityID) error {
	if !g.IsPlaceable(c) {
		return NewPlacementError(ReasonNotPlaceable, c)
	}
	idx := g.index(c)
	if g.occupancy[idx] != 0 {
		return NewPlacementError(ReasonOccupied, c)
	}
	g.occupancy[idx] = id
	log.Printf("[Grid] Cell %s occupied by entity %d", c, id)
	return nil
}

// Remove 清空格子，返回原占用者
func (g *Grid) Remove(c types.Cell) (ecs.EntityID, bool) {
	if !g.IsValid(c) {
		return 0, false
	}
	idx := g.index(c)
	prev := g.occupancy[idx]
	if prev == 0 {
		return 0, false
	}
	g.occupancy[idx] = 0
	log.Printf("[Grid] Cell %s released (was entity %d)", c, prev)
	return prev, true
}

// Clear 清空所有占用，不改变棋盘几何
func (g *Grid) Clear() {
	for i := range g.occupancy {
		g.occupancy[i] = 0
	}
}

// OccupiedCells 按行优先顺序返回所有被占用的格子
func (g *Grid) OccupiedCells() []types.Cell {
	cells := make([]types.Cell, 0)
	for i, id := range g.occupancy {
		if id != 0 {
			cells = append(cells, types.Cell{Col: i % g.width, Row: i / g.width})
		}
	}
	return cells
}
