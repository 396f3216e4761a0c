package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/enemy"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/systems"
	"github.com/decker502/boarddefence/pkg/types"
)

// SessionOptions 创建会话的可选参数
type SessionOptions struct {
	Bundle   *config.Bundle   // nil 时使用内置数据
	Rand     *rand.Rand       // 生成列的随机源；nil 时按 GameConfig.RandomSeed 创建
	Settings *SettingsManager // nil 时使用内存中的默认设置
	Bus      *event.Bus       // nil 时新建
	Layout   *grid.Layout     // 格子与连续坐标的换算；nil 时按棋盘配置创建
}

// Session 一局游戏
//
// Session 拥有棋盘、敌人池和所有系统，是外部命令的唯一入口。
// 所有方法都在调用方的单个线程上执行，Tick 不会阻塞。
type Session struct {
	ID string

	bundle   *config.Bundle
	bus      *event.Bus
	settings *SettingsManager

	machine   *StateMachine
	grid      *grid.Grid
	layout    grid.Layout
	em        *ecs.EntityManager
	pool      *enemy.Pool
	inventory *Inventory
	placement *PlacementController
	defenders *systems.DefenderSystem
	movement  *systems.MovementSystem
	waves     *systems.WaveScheduler

	level      *config.LevelConfig
	lives      int
	timeScale  float64
	pausedFrom types.GameState
	countdown  float64 // 自动开战倒计时
	elapsed    float64 // 本关战斗时间
}

// NewSession 创建会话并进入 MainMenu 状态
func NewSession(opts SessionOptions) (*Session, error) {
	bundle := opts.Bundle
	if bundle == nil {
		bundle = config.DefaultBundle()
	}
	if bundle.Game == nil || bundle.Units == nil || bundle.Levels == nil || bundle.Levels.Len() == 0 {
		return nil, fmt.Errorf("incomplete config bundle")
	}
	if err := bundle.Game.Validate("session"); err != nil {
		return nil, err
	}
	if err := bundle.Units.Validate("session"); err != nil {
		return nil, err
	}

	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	settings := opts.Settings
	if settings == nil {
		settings, _ = NewSettingsManager(nil)
	}
	rng := opts.Rand
	if rng == nil {
		seed := bundle.Game.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	g, err := grid.NewFromConfig(bundle.Game.Board)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		bundle:    bundle,
		bus:       bus,
		settings:  settings,
		machine:   NewStateMachine(bus),
		grid:      g,
		layout:    grid.NewLayout(bundle.Game.Board),
		em:        ecs.NewEntityManager(),
		inventory: NewInventory(nil),
		timeScale: settings.GetSettings().GameSpeed,
	}
	if opts.Layout != nil {
		s.layout = *opts.Layout
	}
	s.pool = enemy.NewPool(bundle.Units, enemy.PoolOptions{
		InitialPerType: bundle.Game.PerTypePoolSize(len(types.AllEnemyTypes())),
		Expandable:     bundle.Game.Pool.Expandable,
	})
	s.defenders = systems.NewDefenderSystem(s.em, s.pool, s.layout, bundle.Game.TargetTolerance, bus)
	s.movement = systems.NewMovementSystem(s.pool, g.Height())
	s.waves = systems.NewWaveScheduler(s.pool, bus, rng, g.Width())
	s.placement = NewPlacementController(g, s.em, bundle.Units, s.inventory, s.defenders, bus)

	s.machine.Transition(types.StateMainMenu)
	log.Printf("[Session %s] Created: %dx%d board, %d levels", s.shortID(), g.Width(), g.Height(), bundle.Levels.Len())
	return s, nil
}

func (s *Session) shortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// Bus 事件总线
func (s *Session) Bus() *event.Bus { return s.bus }

// Layout 棋盘的连续空间布局
func (s *Session) Layout() grid.Layout { return s.layout }

// Grid 棋盘（只读使用）
func (s *Session) Grid() *grid.Grid { return s.grid }

// Settings 设置管理器
func (s *Session) Settings() *SettingsManager { return s.settings }

// State 当前游戏状态
func (s *Session) State() types.GameState { return s.machine.State() }

// Lives 剩余生命
func (s *Session) Lives() int { return s.lives }

// Level 当前关卡，StartGame 之前为 nil
func (s *Session) Level() *config.LevelConfig { return s.level }

// Remaining 某种防御单位的剩余库存
func (s *Session) Remaining(t types.DefenderType) int { return s.inventory.Remaining(t) }

// SelectedDefenderType 当前选中的防御单位类型
func (s *Session) SelectedDefenderType() types.DefenderType { return s.placement.Selected() }

// ActiveEnemies 场上敌人（按生成顺序）
func (s *Session) ActiveEnemies() []*enemy.Enemy { return s.pool.Active() }

// ---------------------------------------------------------------------------
// 命令
// ---------------------------------------------------------------------------

// StartGame 从主菜单进入第一关的准备阶段
func (s *Session) StartGame() bool {
	return s.StartGameAt(s.bundle.Levels.First().Number)
}

// StartGameAt 从主菜单直接进入指定关卡，关卡不存在时返回 false
func (s *Session) StartGameAt(number int) bool {
	if s.State() != types.StateMainMenu {
		return false
	}
	level, ok := s.bundle.Levels.Get(number)
	if !ok {
		log.Printf("[Session %s] Warning: level %d not found", s.shortID(), number)
		return false
	}
	s.bus.Publish(event.GameStarted{})
	s.enterLevel(level)
	return true
}

// StartBattle 结束准备阶段：锁定放置、防御单位开火、开始生成敌人
// 只在准备阶段有效；暂停中请使用 Resume
func (s *Session) StartBattle() bool {
	if s.State() != types.StatePreparation {
		return false
	}
	if !s.machine.Transition(types.StateBattle) {
		return false
	}
	s.beginBattle()
	return true
}

func (s *Session) beginBattle() {
	s.placement.Lock()
	s.placement.Deselect()
	s.placement.StartAll()
	s.waves.StartSpawning()
	log.Printf("[Session %s] Battle started on level %d", s.shortID(), s.level.Number)
}

// Pause 暂停（战斗或准备阶段）
func (s *Session) Pause() bool {
	from := s.State()
	if from != types.StateBattle && from != types.StatePreparation {
		return false
	}
	if !s.machine.Transition(types.StatePaused) {
		return false
	}
	s.pausedFrom = from
	s.timeScale = 0
	s.bus.Publish(event.GamePaused{})
	return true
}

// Resume 从暂停恢复到战斗
// 如果是从准备阶段暂停的，恢复时执行开战流程
func (s *Session) Resume() bool {
	if !s.machine.Transition(types.StateBattle) {
		return false
	}
	s.timeScale = s.settings.GetSettings().GameSpeed
	if s.pausedFrom == types.StatePreparation {
		s.beginBattle()
	}
	s.pausedFrom = types.StateNone
	s.bus.Publish(event.GameResumed{})
	return true
}

// Restart 胜利或失败后重新开始当前关卡
func (s *Session) Restart() bool {
	st := s.State()
	if st != types.StateVictory && st != types.StateDefeat {
		return false
	}
	s.enterLevel(s.level)
	return true
}

// SelectDefenderType 选中放置类型（仅准备阶段，且该类型还有库存）
func (s *Session) SelectDefenderType(t types.DefenderType) bool {
	if s.State() != types.StatePreparation {
		return false
	}
	return s.placement.SelectDefenderType(t)
}

// DeselectDefenderType 取消选中
func (s *Session) DeselectDefenderType() {
	s.placement.Deselect()
}

// PlaceDefender 在 cell 放置 t 类型防御单位
func (s *Session) PlaceDefender(t types.DefenderType, cell types.Cell) (ecs.EntityID, error) {
	if s.State() != types.StatePreparation {
		return 0, ErrPlacementLocked
	}
	return s.placement.Place(t, cell)
}

// PlaceSelected 在 cell 放置当前选中的类型
func (s *Session) PlaceSelected(cell types.Cell) (ecs.EntityID, error) {
	if s.State() != types.StatePreparation {
		return 0, ErrPlacementLocked
	}
	return s.placement.PlaceSelected(cell)
}

// RemoveDefender 移除 cell 上的防御单位（仅准备阶段）
func (s *Session) RemoveDefender(cell types.Cell) bool {
	if s.State() != types.StatePreparation {
		return false
	}
	return s.placement.Remove(cell)
}

// SetGameSpeed 修改游戏速度，暂停中只更新设置
func (s *Session) SetGameSpeed(speed float64) {
	s.settings.SetGameSpeed(speed)
	if s.State() != types.StatePaused {
		s.timeScale = s.settings.GetSettings().GameSpeed
	}
}

// ---------------------------------------------------------------------------
// 关卡流程
// ---------------------------------------------------------------------------

// enterLevel 重置棋盘、敌人、生命和库存，载入关卡并进入准备阶段
func (s *Session) enterLevel(level *config.LevelConfig) {
	s.placement.StopAll()
	s.waves.StopSpawning()
	s.placement.ClearAll()
	s.pool.ReleaseAll()

	s.level = level
	s.inventory.Reset(level.Allocations())
	s.waves.Load(level)
	s.placement.Unlock()
	s.countdown = level.PreparationTime
	s.elapsed = 0
	s.timeScale = s.settings.GetSettings().GameSpeed
	s.setLives(s.bundle.Game.StartingLives)

	s.machine.Transition(types.StatePreparation)
	log.Printf("[Session %s] Level %d (%s) ready: %d enemies", s.shortID(), level.Number, level.Name, level.TotalEnemies())
	s.bus.Publish(event.LevelStarted{Level: level.Number})
}

func (s *Session) setLives(n int) {
	s.lives = n
	s.bus.Publish(event.LivesChanged{Lives: n})
}

func (s *Session) defeat() {
	s.placement.StopAll()
	s.waves.StopSpawning()
	s.pool.ReleaseAll()
	s.machine.Transition(types.StateDefeat)
	log.Printf("[Session %s] Defeat on level %d", s.shortID(), s.level.Number)
	s.bus.Publish(event.GameOver{Level: s.level.Number})
}

func (s *Session) completeLevel() {
	s.placement.StopAll()
	next, ok := s.bundle.Levels.Next(s.level.Number)
	if ok {
		s.enterLevel(next)
		return
	}
	s.machine.Transition(types.StateVictory)
	log.Printf("[Session %s] Victory after level %d", s.shortID(), s.level.Number)
	s.bus.Publish(event.Victory{Level: s.level.Number})
}

// ---------------------------------------------------------------------------
// 每帧更新
// ---------------------------------------------------------------------------

// Tick 推进模拟 dt 秒（乘以游戏速度）
// 只有 Battle 状态推进战斗；Preparation 状态只推进自动开战倒计时
func (s *Session) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	scaled := dt * s.timeScale
	if scaled <= 0 {
		return
	}

	switch s.State() {
	case types.StatePreparation:
		if s.settings.GetSettings().AutoStartBattle {
			s.countdown -= scaled
			if s.countdown <= 0 {
				s.StartBattle()
			}
		}
	case types.StateBattle:
		s.battleTick(scaled)
	}
}

// battleTick 战斗阶段的固定顺序：移动 → 到达基地结算 → 生成 → 攻击 → 回收死亡敌人 → 完成判定
func (s *Session) battleTick(dt float64) {
	s.elapsed += dt

	for _, e := range s.movement.Update(dt) {
		s.waves.RecordEscaped()
		s.bus.Publish(event.EnemyReachedBase{ID: e.ID, Cell: e.Cell, EnemyType: e.Type})
		s.pool.Release(e.ID)
		s.setLives(s.lives - 1)
		log.Printf("[Session %s] Enemy %d reached base, %d lives left", s.shortID(), e.ID, s.lives)
		if s.lives <= 0 {
			s.defeat()
			return
		}
	}

	s.waves.Update(dt)
	s.defenders.Update(dt)

	for _, e := range s.pool.Active() {
		if e.IsDead() {
			s.pool.Release(e.ID)
			s.waves.RecordDefeated()
		}
	}

	if s.waves.CheckLevelComplete(s.pool.ActiveCount()) {
		s.completeLevel()
	}
}
