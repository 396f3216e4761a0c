package event

import (
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/enemy"
	"github.com/decker502/boarddefence/pkg/types"
)

// Type 事件类型
type Type int

const (
	TypeGameStateChanged Type = iota + 1
	TypeGameStarted
	TypeGamePaused
	TypeGameResumed
	TypeLevelStarted
	TypeLevelCompleted
	TypeAllEnemiesDefeated
	TypeVictory
	TypeGameOver
	TypeWaveStarted
	TypeWaveCompleted
	TypeDefenderTypeSelected
	TypeDefenderPlaced
	TypeDefenderRemoved
	TypeBoardCleared
	TypeAttackPerformed
	TypeEnemySpawned
	TypeEnemyDamaged
	TypeEnemyDied
	TypeEnemyReachedBase
	TypeLivesChanged
)

var typeNames = map[Type]string{
	TypeGameStateChanged:     "GameStateChanged",
	TypeGameStarted:          "GameStarted",
	TypeGamePaused:           "GamePaused",
	TypeGameResumed:          "GameResumed",
	TypeLevelStarted:         "LevelStarted",
	TypeLevelCompleted:       "LevelCompleted",
	TypeAllEnemiesDefeated:   "AllEnemiesDefeated",
	TypeVictory:              "Victory",
	TypeGameOver:             "GameOver",
	TypeWaveStarted:          "WaveStarted",
	TypeWaveCompleted:        "WaveCompleted",
	TypeDefenderTypeSelected: "DefenderTypeSelected",
	TypeDefenderPlaced:       "DefenderPlaced",
	TypeDefenderRemoved:      "DefenderRemoved",
	TypeBoardCleared:         "BoardCleared",
	TypeAttackPerformed:      "AttackPerformed",
	TypeEnemySpawned:         "EnemySpawned",
	TypeEnemyDamaged:         "EnemyDamaged",
	TypeEnemyDied:            "EnemyDied",
	TypeEnemyReachedBase:     "EnemyReachedBase",
	TypeLivesChanged:         "LivesChanged",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event 所有事件的公共接口
type Event interface {
	Type() Type
}

// GameStateChanged 每次真实的状态迁移发出一次
type GameStateChanged struct {
	From types.GameState
	To   types.GameState
}

// GameStarted 从主菜单进入游戏
type GameStarted struct{}

// GamePaused 进入暂停
type GamePaused struct{}

// GameResumed 从暂停恢复
type GameResumed struct{}

// LevelStarted 关卡加载完成，进入准备阶段
type LevelStarted struct {
	Level int
}

// LevelCompleted 关卡内所有敌人都已结算（每关只发一次）
type LevelCompleted struct {
	Level int
}

// AllEnemiesDefeated 与 LevelCompleted 同时发出，供 HUD 使用
type AllEnemiesDefeated struct {
	Level int
}

// Victory 最后一关完成
type Victory struct {
	Level int
}

// GameOver 生命耗尽
type GameOver struct {
	Level int
}

// WaveStarted 开始生成敌人
type WaveStarted struct {
	Level int
	Total int // 计划生成数量
}

// WaveCompleted 生成清单执行完毕
type WaveCompleted struct {
	Level   int
	Spawned int // 实际生成数量（对象池耗尽时可能少于计划）
}

// DefenderTypeSelected 玩家选中了一种防御单位
type DefenderTypeSelected struct {
	DefenderType types.DefenderType
}

// DefenderPlaced 防御单位放置成功
type DefenderPlaced struct {
	ID           ecs.EntityID
	Cell         types.Cell
	DefenderType types.DefenderType
}

// DefenderRemoved 防御单位被移除
type DefenderRemoved struct {
	ID           ecs.EntityID
	Cell         types.Cell
	DefenderType types.DefenderType
}

// BoardCleared 棋盘上所有防御单位被清除
type BoardCleared struct{}

// AttackPerformed 防御单位完成一次攻击
type AttackPerformed struct {
	Defender   ecs.EntityID
	Cell       types.Cell // 攻击者所在格
	Damage     int
	Target     enemy.ID
	TargetCell types.Cell
}

// EnemySpawned 敌人进入棋盘
type EnemySpawned struct {
	ID        enemy.ID
	Cell      types.Cell
	EnemyType types.EnemyType
}

// EnemyDamaged 敌人受到伤害
type EnemyDamaged struct {
	ID        enemy.ID
	Cell      types.Cell
	Amount    int
	Remaining int
}

// EnemyDied 敌人生命值耗尽
type EnemyDied struct {
	ID        enemy.ID
	Cell      types.Cell
	EnemyType types.EnemyType
}

// EnemyReachedBase 敌人越过最后一行
type EnemyReachedBase struct {
	ID        enemy.ID
	Cell      types.Cell
	EnemyType types.EnemyType
}

// LivesChanged 剩余生命变化
type LivesChanged struct {
	Lives int
}

func (GameStateChanged) Type() Type     { return TypeGameStateChanged }
func (GameStarted) Type() Type          { return TypeGameStarted }
func (GamePaused) Type() Type           { return TypeGamePaused }
func (GameResumed) Type() Type          { return TypeGameResumed }
func (LevelStarted) Type() Type         { return TypeLevelStarted }
func (LevelCompleted) Type() Type       { return TypeLevelCompleted }
func (AllEnemiesDefeated) Type() Type   { return TypeAllEnemiesDefeated }
func (Victory) Type() Type              { return TypeVictory }
func (GameOver) Type() Type             { return TypeGameOver }
func (WaveStarted) Type() Type          { return TypeWaveStarted }
func (WaveCompleted) Type() Type        { return TypeWaveCompleted }
func (DefenderTypeSelected) Type() Type { return TypeDefenderTypeSelected }
func (DefenderPlaced) Type() Type       { return TypeDefenderPlaced }
func (DefenderRemoved) Type() Type      { return TypeDefenderRemoved }
func (BoardCleared) Type() Type         { return TypeBoardCleared }
func (AttackPerformed) Type() Type      { return TypeAttackPerformed }
func (EnemySpawned) Type() Type         { return TypeEnemySpawned }
func (EnemyDamaged) Type() Type         { return TypeEnemyDamaged }
func (EnemyDied) Type() Type            { return TypeEnemyDied }
func (EnemyReachedBase) Type() Type     { return TypeEnemyReachedBase }
func (LivesChanged) Type() Type         { return TypeLivesChanged }
