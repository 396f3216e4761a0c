// Package app 把游戏会话包装成 ebiten.Game
//
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
// 所有玩法逻辑都在 game.Session 中，这里只负责输入映射和绘制。
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/embedded"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/game"
	"github.com/decker502/boarddefence/pkg/types"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// gdata 存储使用的应用名
const storageAppName = "boarddefence"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 启动时直接进入的关卡序号，0 表示停在主菜单
	Level int
	// Seed 敌人生成列的随机种子，0 表示使用 game.yaml 中的设置
	Seed int64
}

// App 实现 ebiten.Game 接口
type App struct {
	session  *game.Session
	settings *game.SettingsManager
	view     *boardView
	feed     *eventFeed
	verbose  bool
}

// NewApp 创建并初始化游戏应用
//
// 如果已调用 embedded.Init()，从嵌入的 data/ 目录加载配置；否则使用内置数据。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	bundle := config.DefaultBundle()
	if embedded.IsInitialized() {
		loaded, err := config.LoadBundle(embedded.FS())
		if err != nil {
			return nil, fmt.Errorf("配置加载失败: %w", err)
		}
		bundle = loaded
	}

	// gdata 初始化失败时降级为内存设置
	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: storageAppName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v", err)
	} else {
		storage = m
	}
	settings, _ := game.NewSettingsManager(storage)
	if cfg.Verbose {
		settings.SetVerbose(true)
	}

	opts := game.SessionOptions{Bundle: bundle, Settings: settings}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}
	session, err := game.NewSession(opts)
	if err != nil {
		return nil, fmt.Errorf("会话创建失败: %w", err)
	}

	a := &App{
		session:  session,
		settings: settings,
		view:     newBoardView(session.Layout(), ScreenWidth, ScreenHeight),
		feed:     newEventFeed(session.Bus(), 6),
		verbose:  cfg.Verbose,
	}

	if cfg.Level > 0 {
		if !session.StartGameAt(cfg.Level) {
			return nil, fmt.Errorf("关卡 %d 不存在", cfg.Level)
		}
	}
	log.Printf("[App] Session %s ready", session.ID)
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleKeys()
	a.handlePointer()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.session.Tick(deltaTime)
	return nil
}

func (a *App) handleKeys() {
	s := a.session
	for i, dt := range types.AllDefenderTypes() {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			s.SelectDefenderType(dt)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		switch s.State() {
		case types.StateMainMenu:
			s.StartGame()
		case types.StatePreparation:
			s.StartBattle()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if s.State() == types.StatePaused {
			s.Resume()
		} else {
			s.Pause()
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.DeselectDefenderType()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		a.changeSpeed(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		a.changeSpeed(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.settings.SetAutoStartBattle(!a.settings.GetSettings().AutoStartBattle)
		a.saveSettings()
	}
}

func (a *App) changeSpeed(factor float64) {
	a.session.SetGameSpeed(a.settings.GetSettings().GameSpeed * factor)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// handlePointer 左键放置当前选中类型，右键移除
func (a *App) handlePointer() {
	pressed, x, y := justPressedPointer(ebiten.MouseButtonLeft)
	if pressed {
		if cell, ok := a.view.cellAt(x, y); ok {
			if _, err := a.session.PlaceSelected(cell); err != nil {
				a.feed.push(err.Error())
			}
		}
	}
	pressed, x, y = justPressedPointer(ebiten.MouseButtonRight)
	if pressed {
		if cell, ok := a.view.cellAt(x, y); ok {
			a.session.RemoveDefender(cell)
		}
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.session.Snapshot()
	hoverX, hoverY := pointerPosition()
	a.view.draw(screen, snap, hoverX, hoverY)
	drawHUD(screen, snap, a.settings.GetSettings(), a.feed.lines())
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Session 返回底层会话
func (a *App) Session() *game.Session {
	return a.session
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// eventFeed 保存最近的若干条事件描述，显示在 HUD 上
type eventFeed struct {
	max   int
	items []string
}

func newEventFeed(bus *event.Bus, max int) *eventFeed {
	f := &eventFeed{max: max}
	bus.SubscribeAll(func(e event.Event) {
		if msg, ok := describeEvent(e); ok {
			f.push(msg)
		}
	})
	return f
}

func (f *eventFeed) push(msg string) {
	f.items = append(f.items, msg)
	if len(f.items) > f.max {
		f.items = f.items[len(f.items)-f.max:]
	}
}

func (f *eventFeed) lines() []string {
	return f.items
}

// describeEvent 把玩家关心的事件转成一行文字，其余事件忽略
func describeEvent(e event.Event) (string, bool) {
	switch ev := e.(type) {
	case event.LevelStarted:
		return fmt.Sprintf("Level %d", ev.Level), true
	case event.WaveStarted:
		return fmt.Sprintf("Wave started: %d enemies", ev.Total), true
	case event.EnemyDied:
		return fmt.Sprintf("%s destroyed at %s", ev.EnemyType, ev.Cell), true
	case event.EnemyReachedBase:
		return fmt.Sprintf("%s reached the base!", ev.EnemyType), true
	case event.LevelCompleted:
		return fmt.Sprintf("Level %d complete", ev.Level), true
	case event.Victory:
		return "Victory!", true
	case event.GameOver:
		return "Game over", true
	}
	return "", false
}
