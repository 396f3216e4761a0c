package grid

import (
	"math"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/types"
)

// Layout 格子坐标与连续空间坐标之间的换算
// 棋盘中心位于原点，x 随列增大，y 随行增大
type Layout struct {
	Width       int
	Height      int
	CellSize    float64
	CellSpacing float64
}

// NewLayout 按棋盘配置创建布局
func NewLayout(b config.BoardConfig) Layout {
	return Layout{
		Width:       b.Width,
		Height:      b.Height,
		CellSize:    b.CellSize,
		CellSpacing: b.CellSpacing,
	}
}

// Pitch 返回相邻格子中心的间距
func (l Layout) Pitch() float64 {
	return l.CellSize + l.CellSpacing
}

// ToSpace 返回格子中心的连续坐标
// 每个轴: cell*pitch - (dim-1)*pitch/2
// 越界格子同样按公式外推，供目标查询使用
func (l Layout) ToSpace(c types.Cell) types.Vec2 {
	p := l.Pitch()
	return types.Vec2{
		X: float64(c.Col)*p - float64(l.Width-1)*p/2,
		Y: float64(c.Row)*p - float64(l.Height-1)*p/2,
	}
}

// FromSpace 将连续坐标换算为最近的格子，并限制在棋盘范围内
func (l Layout) FromSpace(v types.Vec2) types.Cell {
	p := l.Pitch()
	col := int(math.Round((v.X + float64(l.Width-1)*p/2) / p))
	row := int(math.Round((v.Y + float64(l.Height-1)*p/2) / p))
	return types.Cell{
		Col: clamp(col, 0, l.Width-1),
		Row: clamp(row, 0, l.Height-1),
	}
}

// Contains 判断连续坐标是否落在棋盘的外接矩形内
func (l Layout) Contains(v types.Vec2) bool {
	p := l.Pitch()
	halfW := float64(l.Width) * p / 2
	halfH := float64(l.Height) * p / 2
	return v.X >= -halfW && v.X < halfW && v.Y >= -halfH && v.Y < halfH
}

// Between 返回格子 c 与下一行之间按 t ∈ [0,1] 插值的位置（敌人移动用）
func (l Layout) Between(c types.Cell, t float64) types.Vec2 {
	from := l.ToSpace(c)
	to := l.ToSpace(types.Cell{Col: c.Col, Row: c.Row + 1})
	return from.Lerp(to, t)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
