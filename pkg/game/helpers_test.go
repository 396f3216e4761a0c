package game

import (
	"math/rand"
	"testing"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/types"
)

// 0.125 可以被二进制精确表示，累加不会产生误差
const tickDt = 0.125

func testSpawn(et types.EnemyType, count int) config.SpawnEntry {
	return config.SpawnEntry{Type: et.String(), Count: count, EnemyType: et}
}

func testLevel(n int, defenders map[types.DefenderType]int, spawns ...config.SpawnEntry) *config.LevelConfig {
	l := &config.LevelConfig{
		Number:            n,
		Name:              "Test",
		Spawns:            spawns,
		PreparationTime:   5,
		TimeBetweenSpawns: 1,
		InitialSpawnDelay: 0,
	}
	for _, dt := range types.AllDefenderTypes() {
		if c, ok := defenders[dt]; ok {
			l.Defenders = append(l.Defenders, config.DefenderAllocation{Type: dt.String(), Count: c, DefenderType: dt})
		}
	}
	return l
}

// testBundle 单列棋盘让所有敌人都出现在第 0 列
func testBundle(t *testing.T, width int, levels ...*config.LevelConfig) *config.Bundle {
	t.Helper()
	game := config.DefaultGameConfig()
	game.Board.Width = width
	set, err := config.NewLevelSet(levels...)
	if err != nil {
		t.Fatalf("NewLevelSet: %v", err)
	}
	return &config.Bundle{Game: game, Units: config.DefaultUnitStats(), Levels: set}
}

func newTestSession(t *testing.T, bundle *config.Bundle) (*Session, *event.Recorder) {
	t.Helper()
	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	s, err := NewSession(SessionOptions{
		Bundle: bundle,
		Rand:   rand.New(rand.NewSource(7)),
		Bus:    bus,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, rec
}

// tickUntil 以固定步长推进，直到 cond 成立或达到 max 次
func tickUntil(s *Session, max int, cond func() bool) int {
	for i := 1; i <= max; i++ {
		s.Tick(tickDt)
		if cond() {
			return i
		}
	}
	return -1
}
