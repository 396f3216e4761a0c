package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/boarddefence/pkg/types"
)

const validLevelYAML = `
number: 2
name: "Test Level"
defenders:
  - type: Type1
    count: 2
  - type: Type3
    count: 1
spawns:
  - type: Type1
    count: 2
  - type: Type2
    count: 1
    spawnDelay: 4
timeBetweenSpawns: 1.5
initialSpawnDelay: 0
`

func TestLoadLevelConfig(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "level-2.yaml")
	if err := os.WriteFile(path, []byte(validLevelYAML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	lvl, err := LoadLevelConfig(path)
	if err != nil {
		t.Fatalf("LoadLevelConfig error: %v", err)
	}

	if lvl.Number != 2 || lvl.Name != "Test Level" {
		t.Errorf("header: got number=%d name=%q", lvl.Number, lvl.Name)
	}
	if lvl.TotalEnemies() != 3 {
		t.Errorf("TotalEnemies: got %d, want 3", lvl.TotalEnemies())
	}
	if lvl.EnemyCount(types.EnemyType2) != 1 {
		t.Errorf("EnemyCount(Type2): got %d, want 1", lvl.EnemyCount(types.EnemyType2))
	}
	if lvl.DefenderCount(types.DefenderType1) != 2 || lvl.DefenderCount(types.DefenderType2) != 0 {
		t.Errorf("DefenderCount mismatch: %+v", lvl.Allocations())
	}

	// 显式写 0 的 initialSpawnDelay 不被默认值覆盖，未写的 preparationTime 取默认值
	if lvl.InitialSpawnDelay != 0 {
		t.Errorf("InitialSpawnDelay: got %v, want 0", lvl.InitialSpawnDelay)
	}
	if lvl.PreparationTime != DefaultPreparationTime {
		t.Errorf("PreparationTime: got %v, want %v", lvl.PreparationTime, DefaultPreparationTime)
	}

	if got := lvl.Spawns[0].Interval(lvl); got != 1.5 {
		t.Errorf("entry 0 interval: got %v, want 1.5 (level default)", got)
	}
	if got := lvl.Spawns[1].Interval(lvl); got != 4 {
		t.Errorf("entry 1 interval: got %v, want 4 (entry override)", got)
	}
}

func TestParseLevelConfigDefaultName(t *testing.T) {
	lvl, err := ParseLevelConfig([]byte("number: 7\nspawns: [{type: Type1, count: 1}]\n"), "inline")
	if err != nil {
		t.Fatalf("ParseLevelConfig error: %v", err)
	}
	if lvl.Name != "Level 7" {
		t.Errorf("Name: got %q, want %q", lvl.Name, "Level 7")
	}
}

func TestParseLevelConfigInvalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{"缺少序号", "spawns: [{type: Type1, count: 1}]", "number"},
		{"没有生成条目", "number: 1", "spawns"},
		{"生成数量为零", "number: 1\nspawns: [{type: Type1, count: 0}]", "spawns[0].count"},
		{"未知敌人类型", "number: 1\nspawns: [{type: Boss, count: 1}]", "spawns[0].type"},
		{"未知防御类型", "number: 1\ndefenders: [{type: Cannon, count: 1}]\nspawns: [{type: Type1, count: 1}]", "defenders[0].type"},
		{"重复配额", "number: 1\ndefenders: [{type: Type1, count: 1}, {type: Type1, count: 2}]\nspawns: [{type: Type1, count: 1}]", "defenders[1].type"},
		{"负配额", "number: 1\ndefenders: [{type: Type1, count: -1}]\nspawns: [{type: Type1, count: 1}]", "defenders[0].count"},
		{"负间隔", "number: 1\nspawns: [{type: Type1, count: 1}]\ntimeBetweenSpawns: -1", "timeBetweenSpawns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevelConfig([]byte(tt.content), "inline")
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field: got %q, want %q (%v)", cfgErr.Field, tt.wantField, err)
			}
		})
	}
}

func TestLevelSet(t *testing.T) {
	levels := DefaultLevels()
	if levels.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", levels.Len())
	}
	if levels.First().Number != 1 {
		t.Errorf("First: got %d, want 1", levels.First().Number)
	}

	next, ok := levels.Next(1)
	if !ok || next.Number != 2 {
		t.Errorf("Next(1): got %v, %v", next, ok)
	}
	if _, ok := levels.Next(3); ok {
		t.Error("Next(3) should report no further level")
	}

	l3, ok := levels.Get(3)
	if !ok {
		t.Fatal("Get(3) failed")
	}
	if l3.TotalEnemies() != 15 {
		t.Errorf("level 3 TotalEnemies: got %d, want 15", l3.TotalEnemies())
	}
	if l3.DefenderCount(types.DefenderType2) != 7 {
		t.Errorf("level 3 Type2 allocation: got %d, want 7", l3.DefenderCount(types.DefenderType2))
	}
}

func TestNewLevelSetDuplicate(t *testing.T) {
	a := &LevelConfig{Number: 1}
	b := &LevelConfig{Number: 1}
	if _, err := NewLevelSet(a, b); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("duplicate numbers should be a config error, got %v", err)
	}
}

func TestLoadBundleFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		GameConfigPath:             {Data: []byte("startingLives: 2\n")},
		UnitStatsPath:              {Data: []byte("enemies: {Type1: {health: 4, speed: 1}}\n")},
		"data/levels/level-1.yaml": {Data: []byte("number: 1\nspawns: [{type: Type1, count: 2}]\n")},
		"data/levels/level-2.yaml": {Data: []byte(validLevelYAML)},
	}

	b, err := LoadBundle(fsys)
	if err != nil {
		t.Fatalf("LoadBundle error: %v", err)
	}
	if b.Game.StartingLives != 2 {
		t.Errorf("StartingLives: got %d, want 2", b.Game.StartingLives)
	}
	if e1, _ := b.Units.Enemy(types.EnemyType1); e1.Health != 4 {
		t.Errorf("Type1 health: got %d, want 4", e1.Health)
	}
	if b.Levels.Len() != 2 {
		t.Errorf("Levels: got %d, want 2", b.Levels.Len())
	}
}

func TestLoadBundleBadLevel(t *testing.T) {
	fsys := fstest.MapFS{
		GameConfigPath:             {Data: []byte("")},
		UnitStatsPath:              {Data: []byte("")},
		"data/levels/level-1.yaml": {Data: []byte("number: 1\n")},
	}
	_, err := LoadBundle(fsys)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %v", err)
	}
	if cfgErr.Source != "data/levels/level-1.yaml" {
		t.Errorf("Source: got %q", cfgErr.Source)
	}
}
