// validate_data 校验 data/ 目录下的全局配置、单位属性和关卡清单
//
// 用法：
//
//	go run ./cmd/validate_data [-dir .]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/types"
)

func main() {
	dir := flag.String("dir", ".", "包含 data/ 目录的根目录")
	flag.Parse()

	bundle, err := config.LoadBundle(os.DirFS(*dir))
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Printf("❌ 配置错误: %s (字段: %s)\n", cfgErr.Reason, cfgErr.Field)
			fmt.Printf("   来源: %s\n", cfgErr.Source)
		} else {
			fmt.Printf("❌ 读取失败: %v\n", err)
		}
		os.Exit(1)
	}

	board := bundle.Game.Board
	fmt.Printf("✅ 棋盘: %d × %d，放置区从第 %d 行开始\n", board.Width, board.Height, board.PlacementRowStart)
	fmt.Printf("✅ 初始生命: %d，目标容差: %.2f\n", bundle.Game.StartingLives, bundle.Game.TargetTolerance)

	for _, t := range types.AllDefenderTypes() {
		s, ok := bundle.Units.Defender(t)
		if !ok {
			fmt.Printf("❌ %s: 缺少属性\n", t)
			os.Exit(1)
		}
		fmt.Printf("✅ %s: 伤害 %d，射程 %d，间隔 %.1fs，方向 %s\n", t, s.Damage, s.Range, s.AttackInterval, s.Direction)
	}
	for _, t := range types.AllEnemyTypes() {
		s, ok := bundle.Units.Enemy(t)
		if !ok {
			fmt.Printf("❌ %s: 缺少属性\n", t)
			os.Exit(1)
		}
		fmt.Printf("✅ %s: 生命 %d，速度 %.2f 格/秒\n", t, s.Health, s.Speed)
	}

	fmt.Printf("✅ 关卡数量: %d\n", bundle.Levels.Len())
	for level, ok := bundle.Levels.First(), true; ok; level, ok = bundle.Levels.Next(level.Number) {
		defenders := 0
		for _, d := range level.Defenders {
			defenders += d.Count
		}
		fmt.Printf("   关卡 %d (%s): %d 个防御单位，%d 个敌人\n", level.Number, level.Name, defenders, level.TotalEnemies())
	}
}
