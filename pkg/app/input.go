package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// justPressedPointer 检查本帧是否有点击或触摸
// 触摸只映射到左键；button 为右键时只检查鼠标
func justPressedPointer(button ebiten.MouseButton) (bool, int, int) {
	if button == ebiten.MouseButtonLeft {
		touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
		if len(touchIDs) > 0 {
			x, y := ebiten.TouchPosition(touchIDs[0])
			return true, x, y
		}
	}

	if inpututil.IsMouseButtonJustPressed(button) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// pointerPosition 获取当前指针位置（触摸优先）
func pointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
