// Package targeting 根据攻击方向模式计算候选目标格子
//
// 所有函数都是纯函数：相同输入总是得到相同顺序的输出。
package targeting

import "github.com/decker502/boarddefence/pkg/types"

// 方向单位向量（Row 0 为敌人入口）
var (
	Up    = types.Cell{Col: 0, Row: -1} // 朝敌人入口
	Down  = types.Cell{Col: 0, Row: 1}  // 朝玩家基地
	Left  = types.Cell{Col: -1, Row: 0}
	Right = types.Cell{Col: 1, Row: 0}
)

// Directions 返回攻击模式覆盖的方向，顺序即扫描顺序
func Directions(mode types.AttackDirection) []types.Cell {
	switch mode {
	case types.DirectionAll:
		return []types.Cell{Up, Down, Left, Right}
	default:
		return []types.Cell{Up}
	}
}

// TargetCells 返回防御单位在 origin 处、攻击距离为 rng 时的候选格子
//
// Forward: origin-(0,1) … origin-(0,rng)，由近及远
// All: 依次为上、下、左、右四个方向，每个方向由近及远
//
// 候选格子可能越出棋盘，在棋盘外查询不会命中任何敌人
func TargetCells(mode types.AttackDirection, origin types.Cell, rng int) []types.Cell {
	if rng < 1 {
		return nil
	}
	dirs := Directions(mode)
	cells := make([]types.Cell, 0, len(dirs)*rng)
	for _, d := range dirs {
		for i := 1; i <= rng; i++ {
			cells = append(cells, origin.Add(d.Scale(i)))
		}
	}
	return cells
}

// InRange 判断 cell 是否在 origin 的攻击范围内（用于范围高亮）
func InRange(mode types.AttackDirection, origin types.Cell, rng int, cell types.Cell) bool {
	for _, c := range TargetCells(mode, origin, rng) {
		if c == cell {
			return true
		}
	}
	return false
}
