package entities

import (
	"testing"

	"github.com/decker502/boarddefence/pkg/components"
	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/types"
)

func TestNewDefenderEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	stats := config.DefaultUnitStats()
	cell := types.Cell{Col: 2, Row: 5}

	id, err := NewDefenderEntity(em, stats, types.DefenderType1, cell)
	if err != nil {
		t.Fatalf("NewDefenderEntity error: %v", err)
	}
	if id == 0 {
		t.Fatal("entity id should not be 0")
	}

	def, ok := ecs.GetComponent[*components.DefenderComponent](em, id)
	if !ok {
		t.Fatal("DefenderComponent missing")
	}
	if def.Cell != cell || def.Damage != 3 || def.Range != 4 || def.Direction != types.DirectionForward {
		t.Errorf("DefenderComponent: got %+v", def)
	}
	if def.State != components.DefenderIdle {
		t.Errorf("initial state: got %s, want Idle", def.State)
	}

	timer, ok := ecs.GetComponent[*components.TimerComponent](em, id)
	if !ok {
		t.Fatal("TimerComponent missing")
	}
	if timer.TargetTime != 3 || timer.CurrentTime != 0 {
		t.Errorf("TimerComponent: got %+v", timer)
	}
}

func TestNewDefenderEntityUnknownType(t *testing.T) {
	em := ecs.NewEntityManager()
	id, err := NewDefenderEntity(em, config.DefaultUnitStats(), types.DefenderUnknown, types.Cell{})
	if err == nil {
		t.Fatal("expected error for unknown defender type")
	}
	if id != 0 || em.Count() != 0 {
		t.Error("no entity should be created on error")
	}
}
