package game

import (
	"github.com/decker502/boarddefence/pkg/components"
	"github.com/decker502/boarddefence/pkg/types"
)

// DefenderView 渲染用的防御单位信息
type DefenderView struct {
	Cell      types.Cell
	Type      types.DefenderType
	State     components.DefenderState
	Range     int
	Direction types.AttackDirection
}

// EnemyView 渲染用的敌人信息
type EnemyView struct {
	Type      types.EnemyType
	Cell      types.Cell
	Position  types.Vec2 // 连续坐标（含行间插值）
	Health    int
	MaxHealth int
}

// Snapshot 会话的只读快照，供渲染层和测试使用
type Snapshot struct {
	SessionID string
	State     types.GameState
	Level     int
	LevelName string
	Lives     int

	Width             int
	Height            int
	PlacementRowStart int

	Selected  types.DefenderType
	Inventory map[types.DefenderType]int
	Defenders []DefenderView
	Enemies   []EnemyView

	Spawning  bool
	Spawned   int
	Remaining int
	Countdown float64 // 自动开战倒计时，未启用时为 0
	Elapsed   float64
}

// Snapshot 生成当前状态的快照
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:         s.ID,
		State:             s.State(),
		Lives:             s.lives,
		Width:             s.grid.Width(),
		Height:            s.grid.Height(),
		PlacementRowStart: s.grid.PlacementRowStart(),
		Selected:          s.placement.Selected(),
		Inventory:         s.inventory.Counts(),
		Spawning:          s.waves.IsSpawning(),
		Spawned:           s.waves.TotalSpawned(),
		Elapsed:           s.elapsed,
	}
	if s.level != nil {
		snap.Level = s.level.Number
		snap.LevelName = s.level.Name
		snap.Remaining = s.waves.RemainingEnemies()
	}
	if snap.State == types.StatePreparation && s.settings.GetSettings().AutoStartBattle {
		snap.Countdown = s.countdown
	}

	for _, cell := range s.grid.OccupiedCells() {
		def, ok := s.placement.DefenderAt(cell)
		if !ok {
			continue
		}
		snap.Defenders = append(snap.Defenders, DefenderView{
			Cell:      def.Cell,
			Type:      def.DefenderType,
			State:     def.State,
			Range:     def.Range,
			Direction: def.Direction,
		})
	}

	for _, e := range s.pool.Active() {
		if !e.IsAlive() {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyView{
			Type:      e.Type,
			Cell:      e.Cell,
			Position:  e.Position(s.layout),
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		})
	}
	return snap
}
