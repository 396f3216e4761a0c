package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/boarddefence/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefenderStats 防御单位的不可变属性
type DefenderStats struct {
	Damage         int                   // 单次攻击伤害
	Range          int                   // 攻击距离（格）
	AttackInterval float64               // 攻击间隔（秒）
	Direction      types.AttackDirection // 攻击方向模式
}

// EnemyStats 敌人的不可变属性
type EnemyStats struct {
	Health int     `yaml:"health"` // 最大生命值
	Speed  float64 `yaml:"speed"`  // 移动速度（格/秒）
}

// UnitStats 所有单位类型的属性表（data/units.yaml）
type UnitStats struct {
	Defenders map[types.DefenderType]DefenderStats
	Enemies   map[types.EnemyType]EnemyStats
}

// DefaultUnitStats 返回内置属性表
func DefaultUnitStats() *UnitStats {
	return &UnitStats{
		Defenders: map[types.DefenderType]DefenderStats{
			types.DefenderType1: {Damage: 3, Range: 4, AttackInterval: 3, Direction: types.DirectionForward},
			types.DefenderType2: {Damage: 5, Range: 2, AttackInterval: 4, Direction: types.DirectionForward},
			types.DefenderType3: {Damage: 10, Range: 1, AttackInterval: 5, Direction: types.DirectionAll},
		},
		Enemies: map[types.EnemyType]EnemyStats{
			types.EnemyType1: {Health: 3, Speed: 1},
			types.EnemyType2: {Health: 10, Speed: 0.25},
			types.EnemyType3: {Health: 5, Speed: 0.5},
		},
	}
}

// Defender 查询防御单位属性
func (u *UnitStats) Defender(t types.DefenderType) (DefenderStats, bool) {
	s, ok := u.Defenders[t]
	return s, ok
}

// Enemy 查询敌人属性
func (u *UnitStats) Enemy(t types.EnemyType) (EnemyStats, bool) {
	s, ok := u.Enemies[t]
	return s, ok
}

// unitStatsFile 是 units.yaml 的文件结构，类型名以字符串作为键
type unitStatsFile struct {
	Defenders map[string]struct {
		Damage         int     `yaml:"damage"`
		Range          int     `yaml:"range"`
		AttackInterval float64 `yaml:"attackInterval"`
		Direction      string  `yaml:"direction"`
	} `yaml:"defenders"`
	Enemies map[string]EnemyStats `yaml:"enemies"`
}

// LoadUnitStats 从 YAML 文件加载单位属性表
func LoadUnitStats(path string) (*UnitStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit stats file %s: %w", path, err)
	}
	return ParseUnitStats(data, path)
}

// ParseUnitStats 解析单位属性表
// 文件中出现的类型覆盖内置属性，未出现的类型保留内置值
func ParseUnitStats(data []byte, source string) (*UnitStats, error) {
	var file unitStatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &ConfigError{Source: source, Reason: "failed to parse unit stats YAML", Err: err}
	}

	stats := DefaultUnitStats()

	// 按名称排序，保证错误信息稳定
	for _, name := range sortedKeys(file.Defenders) {
		raw := file.Defenders[name]
		dt, err := types.ParseDefenderType(name)
		if err != nil {
			return nil, &ConfigError{Source: source, Field: "defenders." + name, Reason: "unknown defender type", Err: err}
		}
		dir := types.DirectionForward
		if raw.Direction != "" {
			if dir, err = types.ParseAttackDirection(raw.Direction); err != nil {
				return nil, &ConfigError{Source: source, Field: "defenders." + name + ".direction", Reason: "unknown direction", Err: err}
			}
		}
		stats.Defenders[dt] = DefenderStats{
			Damage:         raw.Damage,
			Range:          raw.Range,
			AttackInterval: raw.AttackInterval,
			Direction:      dir,
		}
	}

	for _, name := range sortedKeys(file.Enemies) {
		et, err := types.ParseEnemyType(name)
		if err != nil {
			return nil, &ConfigError{Source: source, Field: "enemies." + name, Reason: "unknown enemy type", Err: err}
		}
		stats.Enemies[et] = file.Enemies[name]
	}

	if err := stats.Validate(source); err != nil {
		return nil, err
	}
	return stats, nil
}

// Validate 校验所有单位属性
func (u *UnitStats) Validate(source string) error {
	for _, dt := range types.AllDefenderTypes() {
		s, ok := u.Defenders[dt]
		field := "defenders." + dt.String()
		if !ok {
			return fieldError(source, field, "missing stats")
		}
		if s.Damage <= 0 {
			return fieldError(source, field+".damage", "must be positive, got %d", s.Damage)
		}
		if s.Range < 1 {
			return fieldError(source, field+".range", "must be at least 1, got %d", s.Range)
		}
		if s.AttackInterval <= 0 {
			return fieldError(source, field+".attackInterval", "must be positive, got %v", s.AttackInterval)
		}
	}
	for _, et := range types.AllEnemyTypes() {
		s, ok := u.Enemies[et]
		field := "enemies." + et.String()
		if !ok {
			return fieldError(source, field, "missing stats")
		}
		if s.Health <= 0 {
			return fieldError(source, field+".health", "must be positive, got %d", s.Health)
		}
		if s.Speed <= 0 {
			return fieldError(source, field+".speed", "must be positive, got %v", s.Speed)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
