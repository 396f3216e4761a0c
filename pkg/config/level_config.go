package config

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/decker502/boarddefence/pkg/types"
	"gopkg.in/yaml.v3"
)

// 关卡时间参数的默认值（秒）
const (
	DefaultPreparationTime   = 30.0
	DefaultTimeBetweenSpawns = 2.0
	DefaultInitialSpawnDelay = 3.0
)

// LevelConfig 关卡清单
// 定义了本关可放置的防御单位配额和按顺序生成的敌人
type LevelConfig struct {
	Number      int    `yaml:"number"`      // 关卡序号，从 1 开始
	Name        string `yaml:"name"`        // 关卡名称
	Description string `yaml:"description"` // 关卡描述（可选）

	Defenders []DefenderAllocation `yaml:"defenders"` // 防御单位配额
	Spawns    []SpawnEntry         `yaml:"spawns"`    // 敌人生成清单（按顺序执行）

	PreparationTime   float64 `yaml:"preparationTime"`   // 准备阶段时长（自动开战倒计时使用）
	TimeBetweenSpawns float64 `yaml:"timeBetweenSpawns"` // 相邻两次生成的默认间隔
	InitialSpawnDelay float64 `yaml:"initialSpawnDelay"` // 开战后第一次生成前的等待
}

// DefenderAllocation 单个防御单位类型的配额
type DefenderAllocation struct {
	Type  string `yaml:"type"`  // "Type1" / "Type2" / "Type3"
	Count int    `yaml:"count"` // 可放置数量

	DefenderType types.DefenderType `yaml:"-"`
}

// SpawnEntry 单条敌人生成配置
type SpawnEntry struct {
	Type       string  `yaml:"type"`       // 敌人类型名
	Count      int     `yaml:"count"`      // 生成数量
	SpawnDelay float64 `yaml:"spawnDelay"` // 本条目内的生成间隔，0 表示使用关卡的 timeBetweenSpawns

	EnemyType types.EnemyType `yaml:"-"`
}

// Interval 返回该条目的实际生成间隔
func (e SpawnEntry) Interval(level *LevelConfig) float64 {
	if e.SpawnDelay > 0 {
		return e.SpawnDelay
	}
	return level.TimeBetweenSpawns
}

// TotalEnemies 返回本关计划生成的敌人总数
func (c *LevelConfig) TotalEnemies() int {
	total := 0
	for _, s := range c.Spawns {
		total += s.Count
	}
	return total
}

// EnemyCount 返回某种敌人的计划生成数量
func (c *LevelConfig) EnemyCount(t types.EnemyType) int {
	n := 0
	for _, s := range c.Spawns {
		if s.EnemyType == t {
			n += s.Count
		}
	}
	return n
}

// DefenderCount 返回某种防御单位的配额
func (c *LevelConfig) DefenderCount(t types.DefenderType) int {
	for _, d := range c.Defenders {
		if d.DefenderType == t {
			return d.Count
		}
	}
	return 0
}

// Allocations 以 map 形式返回防御单位配额（用于初始化库存）
func (c *LevelConfig) Allocations() map[types.DefenderType]int {
	m := make(map[types.DefenderType]int, len(c.Defenders))
	for _, d := range c.Defenders {
		m[d.DefenderType] = d.Count
	}
	return m
}

// LoadLevelConfig 从 YAML 文件加载关卡配置
func LoadLevelConfig(path string) (*LevelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	return ParseLevelConfig(data, path)
}

// ParseLevelConfig 解析关卡配置内容
// 时间参数缺省时使用默认值；显式写 0 的 initialSpawnDelay 保持为 0
func ParseLevelConfig(data []byte, source string) (*LevelConfig, error) {
	cfg := &LevelConfig{
		PreparationTime:   DefaultPreparationTime,
		TimeBetweenSpawns: DefaultTimeBetweenSpawns,
		InitialSpawnDelay: DefaultInitialSpawnDelay,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Source: source, Reason: "failed to parse level config YAML", Err: err}
	}
	if err := cfg.resolve(source); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := validateLevelConfig(cfg, source); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve 把配置中的类型名解析为枚举
func (c *LevelConfig) resolve(source string) error {
	for i := range c.Defenders {
		dt, err := types.ParseDefenderType(c.Defenders[i].Type)
		if err != nil {
			return &ConfigError{Source: source, Field: fmt.Sprintf("defenders[%d].type", i), Reason: "unknown defender type", Err: err}
		}
		c.Defenders[i].DefenderType = dt
	}
	for i := range c.Spawns {
		et, err := types.ParseEnemyType(c.Spawns[i].Type)
		if err != nil {
			return &ConfigError{Source: source, Field: fmt.Sprintf("spawns[%d].type", i), Reason: "unknown enemy type", Err: err}
		}
		c.Spawns[i].EnemyType = et
	}
	return nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(c *LevelConfig) {
	if c.Name == "" {
		c.Name = fmt.Sprintf("Level %d", c.Number)
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(c *LevelConfig, source string) error {
	if c.Number < 1 {
		return fieldError(source, "number", "must be at least 1, got %d", c.Number)
	}

	seen := make(map[types.DefenderType]bool)
	for i, d := range c.Defenders {
		if d.Count < 0 {
			return fieldError(source, fmt.Sprintf("defenders[%d].count", i), "cannot be negative, got %d", d.Count)
		}
		if seen[d.DefenderType] {
			return fieldError(source, fmt.Sprintf("defenders[%d].type", i), "duplicate allocation for %s", d.DefenderType)
		}
		seen[d.DefenderType] = true
	}

	if len(c.Spawns) == 0 {
		return fieldError(source, "spawns", "at least one spawn entry is required")
	}
	for i, s := range c.Spawns {
		if s.Count < 1 {
			return fieldError(source, fmt.Sprintf("spawns[%d].count", i), "must be at least 1, got %d", s.Count)
		}
		if s.SpawnDelay < 0 {
			return fieldError(source, fmt.Sprintf("spawns[%d].spawnDelay", i), "cannot be negative, got %v", s.SpawnDelay)
		}
	}

	if c.PreparationTime < 0 {
		return fieldError(source, "preparationTime", "cannot be negative, got %v", c.PreparationTime)
	}
	if c.TimeBetweenSpawns < 0 {
		return fieldError(source, "timeBetweenSpawns", "cannot be negative, got %v", c.TimeBetweenSpawns)
	}
	if c.InitialSpawnDelay < 0 {
		return fieldError(source, "initialSpawnDelay", "cannot be negative, got %v", c.InitialSpawnDelay)
	}
	return nil
}

// LevelSet 按序号排列的关卡集合
type LevelSet struct {
	levels []*LevelConfig
}

// NewLevelSet 创建关卡集合，关卡按序号排序，序号不可重复
func NewLevelSet(levels ...*LevelConfig) (*LevelSet, error) {
	if len(levels) == 0 {
		return nil, fieldError("", "levels", "at least one level is required")
	}
	sorted := append([]*LevelConfig(nil), levels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Number == sorted[i-1].Number {
			return nil, fieldError("", "levels", "duplicate level number %d", sorted[i].Number)
		}
	}
	return &LevelSet{levels: sorted}, nil
}

// LoadLevelSet 从文件系统加载所有匹配 pattern 的关卡文件
// 参数:
//   - fsys: 文件系统（embed.FS、os.DirFS 或测试用的 fstest.MapFS）
//   - pattern: fs.Glob 模式，如 "data/levels/level-*.yaml"
func LoadLevelSet(fsys fs.FS, pattern string) (*LevelSet, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob level files %s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fieldError(pattern, "levels", "no level files found")
	}

	levels := make([]*LevelConfig, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read level config file %s: %w", p, err)
		}
		lvl, err := ParseLevelConfig(data, p)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return NewLevelSet(levels...)
}

// Len 返回关卡数量
func (s *LevelSet) Len() int {
	return len(s.levels)
}

// First 返回序号最小的关卡
func (s *LevelSet) First() *LevelConfig {
	return s.levels[0]
}

// Get 按序号查找关卡
func (s *LevelSet) Get(number int) (*LevelConfig, bool) {
	for _, l := range s.levels {
		if l.Number == number {
			return l, true
		}
	}
	return nil, false
}

// Next 返回序号大于 number 的下一关
func (s *LevelSet) Next(number int) (*LevelConfig, bool) {
	for _, l := range s.levels {
		if l.Number > number {
			return l, true
		}
	}
	return nil, false
}

// DefaultLevels 返回内置的三个关卡
func DefaultLevels() *LevelSet {
	mk := func(n int, name string, defenders [3]int, enemies [3]int) *LevelConfig {
		l := &LevelConfig{
			Number:            n,
			Name:              name,
			PreparationTime:   DefaultPreparationTime,
			TimeBetweenSpawns: DefaultTimeBetweenSpawns,
			InitialSpawnDelay: DefaultInitialSpawnDelay,
		}
		for i, dt := range types.AllDefenderTypes() {
			l.Defenders = append(l.Defenders, DefenderAllocation{Type: dt.String(), Count: defenders[i], DefenderType: dt})
		}
		for i, et := range types.AllEnemyTypes() {
			l.Spawns = append(l.Spawns, SpawnEntry{Type: et.String(), Count: enemies[i], EnemyType: et})
		}
		return l
	}
	set, _ := NewLevelSet(
		mk(1, "Level 1", [3]int{3, 2, 1}, [3]int{3, 1, 1}),
		mk(2, "Level 2", [3]int{3, 4, 2}, [3]int{5, 2, 3}),
		mk(3, "Level 3", [3]int{5, 7, 5}, [3]int{7, 3, 5}),
	)
	return set
}
