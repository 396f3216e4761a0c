package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/boarddefence/pkg/game"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/targeting"
	"github.com/decker502/boarddefence/pkg/types"
)

// 颜色
var (
	colorBackground = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	colorEnemyZone  = color.RGBA{R: 70, G: 52, B: 52, A: 255}
	colorPlaceZone  = color.RGBA{R: 52, G: 84, B: 60, A: 255}
	colorHover      = color.RGBA{R: 230, G: 230, B: 120, A: 255}
	colorRange      = color.RGBA{R: 120, G: 160, B: 230, A: 90}
	colorHealthBack = color.RGBA{R: 60, G: 0, B: 0, A: 255}
	colorHealth     = color.RGBA{R: 220, G: 40, B: 40, A: 255}

	defenderColors = map[types.DefenderType]color.RGBA{
		types.DefenderType1: {R: 80, G: 170, B: 250, A: 255},
		types.DefenderType2: {R: 250, G: 180, B: 60, A: 255},
		types.DefenderType3: {R: 200, G: 90, B: 230, A: 255},
	}
	enemyColors = map[types.EnemyType]color.RGBA{
		types.EnemyType1: {R: 240, G: 240, B: 240, A: 255},
		types.EnemyType2: {R: 150, G: 150, B: 150, A: 255},
		types.EnemyType3: {R: 200, G: 200, B: 120, A: 255},
	}
)

// boardView 负责连续坐标与屏幕像素之间的换算
// 棋盘中心对齐到 (originX, originY)，每个空间单位对应 scale 个像素
type boardView struct {
	layout           grid.Layout
	originX, originY float64
	scale            float64
}

func newBoardView(layout grid.Layout, screenW, screenH int) *boardView {
	p := layout.Pitch()
	// 棋盘占据屏幕左侧，高度留出上下边距
	scale := float64(screenH-40) / (float64(layout.Height) * p)
	if w := float64(screenW)*0.6 - 20; float64(layout.Width)*p*scale > w {
		scale = w / (float64(layout.Width) * p)
	}
	return &boardView{
		layout:  layout,
		originX: float64(screenW) * 0.3,
		originY: float64(screenH) / 2,
		scale:   scale,
	}
}

func (v *boardView) toScreen(p types.Vec2) (float32, float32) {
	return float32(v.originX + p.X*v.scale), float32(v.originY + p.Y*v.scale)
}

func (v *boardView) toSpace(x, y int) types.Vec2 {
	return types.Vec2{
		X: (float64(x) - v.originX) / v.scale,
		Y: (float64(y) - v.originY) / v.scale,
	}
}

// cellAt 屏幕坐标对应的格子，落在棋盘外时返回 false
func (v *boardView) cellAt(x, y int) (types.Cell, bool) {
	p := v.toSpace(x, y)
	if !v.layout.Contains(p) {
		return types.Cell{}, false
	}
	return v.layout.FromSpace(p), true
}

func (v *boardView) cellRect(c types.Cell) (x, y, size float32) {
	cx, cy := v.toScreen(v.layout.ToSpace(c))
	size = float32(v.layout.CellSize * v.scale)
	return cx - size/2, cy - size/2, size
}

func (v *boardView) draw(screen *ebiten.Image, snap game.Snapshot, hoverX, hoverY int) {
	screen.Fill(colorBackground)

	hover, hovering := v.cellAt(hoverX, hoverY)

	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			c := types.Cell{Col: col, Row: row}
			x, y, size := v.cellRect(c)
			clr := colorEnemyZone
			if row >= snap.PlacementRowStart {
				clr = colorPlaceZone
			}
			vector.DrawFilledRect(screen, x, y, size, size, clr, false)
		}
	}

	// 悬停在防御单位上时高亮攻击范围
	for _, d := range snap.Defenders {
		if !hovering || d.Cell != hover {
			continue
		}
		for _, c := range targeting.TargetCells(d.Direction, d.Cell, d.Range) {
			if c.Col < 0 || c.Col >= snap.Width || c.Row < 0 || c.Row >= snap.Height {
				continue
			}
			x, y, size := v.cellRect(c)
			vector.DrawFilledRect(screen, x, y, size, size, colorRange, false)
		}
	}

	if hovering {
		x, y, size := v.cellRect(hover)
		vector.StrokeRect(screen, x, y, size, size, 2, colorHover, false)
	}

	for _, d := range snap.Defenders {
		x, y, size := v.cellRect(d.Cell)
		inset := size * 0.15
		vector.DrawFilledRect(screen, x+inset, y+inset, size-2*inset, size-2*inset, defenderColors[d.Type], true)
		ebitenutil.DebugPrintAt(screen, strings.TrimPrefix(d.Type.String(), "Type"), int(x+size/2-3), int(y+size/2-8))
	}

	for _, e := range snap.Enemies {
		cx, cy := v.toScreen(e.Position)
		radius := float32(v.layout.CellSize*v.scale) * 0.3
		vector.DrawFilledCircle(screen, cx, cy, radius, enemyColors[e.Type], true)

		barW := radius * 2
		vector.DrawFilledRect(screen, cx-radius, cy-radius-6, barW, 3, colorHealthBack, false)
		if e.MaxHealth > 0 {
			ratio := float32(e.Health) / float32(e.MaxHealth)
			vector.DrawFilledRect(screen, cx-radius, cy-radius-6, barW*ratio, 3, colorHealth, false)
		}
	}
}

// drawHUD 在右侧面板打印状态文字
func drawHUD(screen *ebiten.Image, snap game.Snapshot, settings *game.GameSettings, feed []string) {
	screenW := float64(ScreenWidth)
	x := int(screenW * 0.62)
	var b strings.Builder

	fmt.Fprintf(&b, "State: %s\n", snap.State)
	if snap.Level > 0 {
		fmt.Fprintf(&b, "Level %d: %s\n", snap.Level, snap.LevelName)
	}
	fmt.Fprintf(&b, "Lives: %d\n", snap.Lives)
	fmt.Fprintf(&b, "Speed: x%.2f  Auto: %v\n\n", settings.GameSpeed, settings.AutoStartBattle)

	for i, t := range types.AllDefenderTypes() {
		marker := " "
		if snap.Selected == t {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s[%d] %s x%d\n", marker, i+1, t, snap.Inventory[t])
	}

	fmt.Fprintf(&b, "\nEnemies left: %d  on board: %d\n", snap.Remaining, len(snap.Enemies))
	if snap.Countdown > 0 {
		fmt.Fprintf(&b, "Battle in %.0fs\n", snap.Countdown)
	}

	b.WriteString("\n")
	switch snap.State {
	case types.StateMainMenu:
		b.WriteString("ENTER: start game\n")
	case types.StatePreparation:
		b.WriteString("1-3: select  LMB: place\nRMB: remove  ENTER: battle\n")
	case types.StateVictory, types.StateDefeat:
		b.WriteString("R: restart level\n")
	}
	b.WriteString("P: pause  +/-: speed  A: auto\n\n")

	for _, line := range feed {
		b.WriteString(line)
		b.WriteString("\n")
	}

	ebitenutil.DebugPrintAt(screen, b.String(), x, 16)
}
