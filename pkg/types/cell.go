package types

import (
	"fmt"
	"math"
)

// Cell 棋盘格子坐标（从 0 开始）
// Row 0 是敌人入口一侧，行号增大代表靠近玩家基地
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// Add 返回两个坐标相加的结果
func (c Cell) Add(o Cell) Cell {
	return Cell{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// Scale 将坐标按整数倍缩放（用于方向向量乘以距离）
func (c Cell) Scale(k int) Cell {
	return Cell{Col: c.Col * k, Row: c.Row * k}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Vec2 连续空间坐标，由布局回调从格子坐标换算而来
type Vec2 struct {
	X float64
	Y float64
}

// Sub 返回 v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len 返回向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance 返回两点之间的欧氏距离
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Len()
}

// Lerp 在 v 与 o 之间按 t 线性插值
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}
