// simulate 在无窗口模式下运行完整的关卡流程，用于验证数据和玩法
//
// 每关按固定策略自动布置防御单位：近战单位放在最前排，远程单位放在后排。
//
// 用法：
//
//	go run ./cmd/simulate -seed 42 [-level 2] [-verbose]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/game"
	"github.com/decker502/boarddefence/pkg/types"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	seed       = flag.Int64("seed", 1, "敌人生成列的随机种子")
	startLevel = flag.Int("level", 0, "起始关卡，0 表示第一关")
	dataDir    = flag.String("data", "", "包含 data/ 的目录，为空时使用内置数据")
	maxSeconds = flag.Float64("max-seconds", 600, "单关最长模拟时间")
)

// 固定步长，与 60 TPS 的桌面端一致
const step = 1.0 / 60.0

// placementOrder 布置顺序：射程短的放前排
var placementOrder = []types.DefenderType{types.DefenderType3, types.DefenderType2, types.DefenderType1}

// startSession 从主菜单进入起始关卡，level 为 0 时进入第一关
func startSession(s *game.Session, level int) bool {
	if level > 0 {
		return s.StartGameAt(level)
	}
	return s.StartGame()
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	bundle := config.DefaultBundle()
	if *dataDir != "" {
		loaded, err := config.LoadBundle(os.DirFS(*dataDir))
		if err != nil {
			fmt.Printf("❌ 数据加载失败: %v\n", err)
			os.Exit(1)
		}
		bundle = loaded
	}

	bus := event.NewBus()
	rec := event.NewRecorder(bus)
	session, err := game.NewSession(game.SessionOptions{
		Bundle: bundle,
		Rand:   rand.New(rand.NewSource(*seed)),
		Bus:    bus,
	})
	if err != nil {
		fmt.Printf("❌ 会话创建失败: %v\n", err)
		os.Exit(1)
	}

	bus.Subscribe(event.TypeLevelCompleted, func(e event.Event) {
		fmt.Printf("✅ 关卡 %d 完成\n", e.(event.LevelCompleted).Level)
	})
	bus.Subscribe(event.TypeEnemyReachedBase, func(e event.Event) {
		fmt.Printf("⚠️  %s 到达基地\n", e.(event.EnemyReachedBase).EnemyType)
	})

	if !startSession(session, *startLevel) {
		fmt.Printf("❌ 关卡 %d 不存在\n", *startLevel)
		os.Exit(1)
	}

	for session.State() == types.StatePreparation {
		level := session.Level().Number
		placed := deploy(session)
		fmt.Printf("▶ 关卡 %d: 布置 %d 个防御单位\n", level, placed)
		session.StartBattle()

		for t := 0.0; session.State() == types.StateBattle && t < *maxSeconds; t += step {
			session.Tick(step)
		}
		if session.State() == types.StateBattle {
			fmt.Printf("❌ 关卡 %d 超时\n", level)
			os.Exit(1)
		}
	}

	fmt.Printf("结果: %s，剩余生命 %d\n", session.State(), session.Lives())
	fmt.Printf("生成 %d，击杀 %d，逃脱 %d，攻击 %d 次\n",
		rec.Count(event.TypeEnemySpawned),
		rec.Count(event.TypeEnemyDied),
		rec.Count(event.TypeEnemyReachedBase),
		rec.Count(event.TypeAttackPerformed))

	if session.State() != types.StateVictory {
		os.Exit(2)
	}
}

// deploy 从放置区最前排开始逐格布置，直到库存耗尽或没有空格
func deploy(s *game.Session) int {
	g := s.Grid()
	placed := 0
	next := 0
	for row := g.PlacementRowStart(); row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			for next < len(placementOrder) && s.Remaining(placementOrder[next]) == 0 {
				next++
			}
			if next == len(placementOrder) {
				return placed
			}
			if _, err := s.PlaceDefender(placementOrder[next], types.Cell{Col: col, Row: row}); err == nil {
				placed++
			}
		}
	}
	return placed
}
