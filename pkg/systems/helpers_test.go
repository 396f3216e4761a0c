package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/enemy"
	"github.com/decker502/boarddefence/pkg/entities"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/types"
)

// testWorld 4×8 棋盘上的最小战斗环境
type testWorld struct {
	em        *ecs.EntityManager
	stats     *config.UnitStats
	pool      *enemy.Pool
	bus       *event.Bus
	rec       *event.Recorder
	layout    grid.Layout
	defenders *DefenderSystem
	movement  *MovementSystem
}

func newTestWorld(t *testing.T, tolerance float64) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	stats := config.DefaultUnitStats()
	bus := event.NewBus()
	w := &testWorld{
		em:     ecs.NewEntityManager(),
		stats:  stats,
		pool:   enemy.NewPool(stats, enemy.PoolOptions{InitialPerType: 4, Expandable: true}),
		bus:    bus,
		rec:    event.NewRecorder(bus),
		layout: grid.NewLayout(cfg.Board),
	}
	w.defenders = NewDefenderSystem(w.em, w.pool, w.layout, tolerance, bus)
	w.movement = NewMovementSystem(w.pool, cfg.Board.Height)
	return w
}

func (w *testWorld) placeDefender(t *testing.T, dt types.DefenderType, cell types.Cell) ecs.EntityID {
	t.Helper()
	id, err := entities.NewDefenderEntity(w.em, w.stats, dt, cell)
	if err != nil {
		t.Fatalf("NewDefenderEntity: %v", err)
	}
	return id
}

func (w *testWorld) spawn(t *testing.T, et types.EnemyType, cell types.Cell) *enemy.Enemy {
	t.Helper()
	e, err := w.pool.Acquire(et, cell)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	return e
}

// tick 先移动再攻击，与会话中的顺序一致
func (w *testWorld) tick(dt float64) {
	w.movement.Update(dt)
	w.defenders.Update(dt)
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}
