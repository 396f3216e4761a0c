package config

import (
	"fmt"
	"io/fs"
)

// 数据文件在文件系统中的默认位置
const (
	GameConfigPath   = "data/game.yaml"
	UnitStatsPath    = "data/units.yaml"
	LevelFilePattern = "data/levels/level-*.yaml"
)

// Bundle 一次完整会话所需的全部静态数据
type Bundle struct {
	Game   *GameConfig
	Units  *UnitStats
	Levels *LevelSet
}

// DefaultBundle 返回内置数据（不读取任何文件）
func DefaultBundle() *Bundle {
	return &Bundle{
		Game:   DefaultGameConfig(),
		Units:  DefaultUnitStats(),
		Levels: DefaultLevels(),
	}
}

// LoadBundle 从文件系统加载 game.yaml、units.yaml 和所有关卡
func LoadBundle(fsys fs.FS) (*Bundle, error) {
	data, err := fs.ReadFile(fsys, GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", GameConfigPath, err)
	}
	game, err := ParseGameConfig(data, GameConfigPath)
	if err != nil {
		return nil, err
	}

	data, err = fs.ReadFile(fsys, UnitStatsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit stats file %s: %w", UnitStatsPath, err)
	}
	units, err := ParseUnitStats(data, UnitStatsPath)
	if err != nil {
		return nil, err
	}

	levels, err := LoadLevelSet(fsys, LevelFilePattern)
	if err != nil {
		return nil, err
	}

	return &Bundle{Game: game, Units: units, Levels: levels}, nil
}
