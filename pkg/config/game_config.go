package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BoardConfig 棋盘尺寸和布局参数
type BoardConfig struct {
	Width             int     `yaml:"width"`             // 列数
	Height            int     `yaml:"height"`            // 行数（敌人从第 0 行进入，越过最后一行即到达基地）
	PlacementRowStart int     `yaml:"placementRowStart"` // 放置区起始行，行号 >= 该值的格子可放置防御单位
	CellSize          float64 `yaml:"cellSize"`          // 单元格边长（连续空间单位）
	CellSpacing       float64 `yaml:"cellSpacing"`       // 单元格间距
}

// PoolConfig 敌人对象池参数
type PoolConfig struct {
	InitialSize int  `yaml:"initialSize"` // 预分配总数，平均分给每种敌人
	Expandable  bool `yaml:"expandable"`  // 空闲列表为空时是否允许新建实例
}

// GameConfig 全局玩法配置（data/game.yaml）
type GameConfig struct {
	Board           BoardConfig `yaml:"board"`
	StartingLives   int         `yaml:"startingLives"`
	TargetTolerance float64     `yaml:"targetTolerance"` // 目标格子与敌人连续坐标之间允许的最大距离
	Pool            PoolConfig  `yaml:"pool"`
	RandomSeed      int64       `yaml:"randomSeed"` // 0 表示使用时间种子
}

// DefaultGameConfig 返回内置默认配置：4 列 × 8 行棋盘，后 4 行为放置区，3 条命
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Board: BoardConfig{
			Width:             4,
			Height:            8,
			PlacementRowStart: 4,
			CellSize:          1.0,
			CellSpacing:       0.1,
		},
		StartingLives:   3,
		TargetTolerance: 0.75,
		Pool: PoolConfig{
			InitialSize: 20,
			Expandable:  true,
		},
	}
}

// PerTypePoolSize 返回每种敌人的预分配数量
func (c *GameConfig) PerTypePoolSize(typeCount int) int {
	if typeCount <= 0 {
		return 0
	}
	return c.Pool.InitialSize / typeCount
}

// LoadGameConfig 从 YAML 文件加载全局配置
// 文件中未出现的字段保留默认值
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", path, err)
	}
	return ParseGameConfig(data, path)
}

// ParseGameConfig 解析全局配置内容
// 参数:
//   - data: YAML 文本
//   - source: 用于错误信息的来源描述
func ParseGameConfig(data []byte, source string) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Source: source, Reason: "failed to parse game config YAML", Err: err}
	}
	if err := cfg.Validate(source); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验全局配置
func (c *GameConfig) Validate(source string) error {
	if err := c.Board.Validate(source); err != nil {
		return err
	}
	if c.StartingLives < 1 {
		return fieldError(source, "startingLives", "must be at least 1, got %d", c.StartingLives)
	}
	if c.TargetTolerance <= 0 {
		return fieldError(source, "targetTolerance", "must be positive, got %v", c.TargetTolerance)
	}
	if c.Pool.InitialSize < 0 {
		return fieldError(source, "pool.initialSize", "cannot be negative, got %d", c.Pool.InitialSize)
	}
	if !c.Pool.Expandable && c.Pool.InitialSize == 0 {
		return fieldError(source, "pool", "a non-expandable pool needs initialSize > 0")
	}
	return nil
}

// Validate 校验棋盘参数
func (b BoardConfig) Validate(source string) error {
	if b.Width < 1 {
		return fieldError(source, "board.width", "must be at least 1, got %d", b.Width)
	}
	if b.Height < 1 {
		return fieldError(source, "board.height", "must be at least 1, got %d", b.Height)
	}
	if b.PlacementRowStart < 0 || b.PlacementRowStart > b.Height {
		return fieldError(source, "board.placementRowStart", "must be within [0, %d], got %d", b.Height, b.PlacementRowStart)
	}
	if b.CellSize <= 0 {
		return fieldError(source, "board.cellSize", "must be positive, got %v", b.CellSize)
	}
	if b.CellSpacing < 0 {
		return fieldError(source, "board.cellSpacing", "cannot be negative, got %v", b.CellSpacing)
	}
	return nil
}
