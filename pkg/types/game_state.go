package types

// GameState 游戏全局状态
type GameState int

const (
	// StateNone 会话尚未初始化
	StateNone GameState = iota
	// StateMainMenu 主菜单
	StateMainMenu
	// StatePreparation 准备阶段：放置/移除防御单位
	StatePreparation
	// StateBattle 战斗阶段：模拟时钟推进
	StateBattle
	// StatePaused 暂停（时钟冻结）
	StatePaused
	// StateVictory 通关
	StateVictory
	// StateDefeat 失败
	StateDefeat
)

func (s GameState) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateMainMenu:
		return "MainMenu"
	case StatePreparation:
		return "Preparation"
	case StateBattle:
		return "Battle"
	case StatePaused:
		return "Paused"
	case StateVictory:
		return "Victory"
	case StateDefeat:
		return "Defeat"
	default:
		return "Unknown"
	}
}
