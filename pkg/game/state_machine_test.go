package game

import (
	"testing"

	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/types"
)

func TestStateMachineTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []types.GameState
		want []bool
	}{
		{"正常流程", []types.GameState{types.StateMainMenu, types.StatePreparation, types.StateBattle, types.StateVictory}, []bool{true, true, true, true}},
		{"暂停恢复", []types.GameState{types.StateMainMenu, types.StatePreparation, types.StateBattle, types.StatePaused, types.StateBattle}, []bool{true, true, true, true, true}},
		{"自迁移无效", []types.GameState{types.StateMainMenu, types.StateMainMenu}, []bool{true, false}},
		{"非法迁移被忽略", []types.GameState{types.StateMainMenu, types.StateBattle, types.StateVictory}, []bool{true, false, false}},
		{"失败后重新准备", []types.GameState{types.StateMainMenu, types.StatePreparation, types.StateBattle, types.StateDefeat, types.StatePreparation}, []bool{true, true, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStateMachine(event.NewBus())
			for i, to := range tt.path {
				if got := m.Transition(to); got != tt.want[i] {
					t.Errorf("step %d: Transition(%s) = %v, want %v", i, to, got, tt.want[i])
				}
			}
		})
	}
}

func TestStateMachinePublishesOneEventPerChange(t *testing.T) {
	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	m := NewStateMachine(bus)

	m.Transition(types.StateMainMenu)
	m.Transition(types.StateMainMenu)
	m.Transition(types.StateDefeat)
	m.Transition(types.StatePreparation)

	changes := rec.OfType(event.TypeGameStateChanged)
	if len(changes) != 2 {
		t.Fatalf("got %d GameStateChanged events, want 2", len(changes))
	}
	last := changes[1].(event.GameStateChanged)
	if last.From != types.StateMainMenu || last.To != types.StatePreparation {
		t.Errorf("last change = %s -> %s", last.From, last.To)
	}
	if m.State() != types.StatePreparation {
		t.Errorf("State() = %s, want Preparation", m.State())
	}
}

func TestInventoryNeverNegative(t *testing.T) {
	inv := NewInventory(map[types.DefenderType]int{types.DefenderType1: 1, types.DefenderType2: -2})
	if inv.Remaining(types.DefenderType2) != 0 {
		t.Errorf("negative allocation should be stored as 0")
	}
	if !inv.Consume(types.DefenderType1) {
		t.Fatal("first Consume should succeed")
	}
	if inv.Consume(types.DefenderType1) {
		t.Error("Consume on empty stock should fail")
	}
	if inv.Remaining(types.DefenderType1) != 0 {
		t.Errorf("Remaining = %d, want 0", inv.Remaining(types.DefenderType1))
	}
	inv.Restore(types.DefenderType1)
	if inv.Total() != 1 {
		t.Errorf("Total = %d, want 1", inv.Total())
	}
}
