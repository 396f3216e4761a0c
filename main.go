package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/boarddefence/pkg/app"
	"github.com/decker502/boarddefence/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	level := flag.Int("level", 0, "Start directly at the given level number")
	seed := flag.Int64("seed", 0, "Random seed for enemy spawn columns (0 = use data/game.yaml)")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Level:   *level,
		Seed:    *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Board Defence")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
