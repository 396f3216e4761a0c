package game

import (
	"log"

	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/types"
)

// allowedTransitions 合法的状态迁移
var allowedTransitions = map[types.GameState][]types.GameState{
	types.StateNone:        {types.StateMainMenu},
	types.StateMainMenu:    {types.StatePreparation},
	types.StatePreparation: {types.StateBattle, types.StatePaused},
	types.StateBattle:      {types.StatePaused, types.StatePreparation, types.StateVictory, types.StateDefeat},
	types.StatePaused:      {types.StateBattle},
	types.StateVictory:     {types.StatePreparation},
	types.StateDefeat:      {types.StatePreparation},
}

// StateMachine 游戏全局状态机
// 每次真实迁移恰好发出一个 GameStateChanged；迁移到当前状态是无操作
type StateMachine struct {
	state types.GameState
	bus   *event.Bus
}

// NewStateMachine 创建状态机，初始状态为 None
func NewStateMachine(bus *event.Bus) *StateMachine {
	return &StateMachine{state: types.StateNone, bus: bus}
}

// State 当前状态
func (m *StateMachine) State() types.GameState {
	return m.state
}

// CanTransition 判断能否从当前状态迁移到 to
func (m *StateMachine) CanTransition(to types.GameState) bool {
	for _, s := range allowedTransitions[m.state] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition 执行迁移
// 返回:
//   - bool: 状态是否发生变化（自迁移或非法迁移返回 false）
func (m *StateMachine) Transition(to types.GameState) bool {
	if to == m.state {
		return false
	}
	if !m.CanTransition(to) {
		log.Printf("[StateMachine] Ignored transition %s -> %s", m.state, to)
		return false
	}
	from := m.state
	m.state = to
	log.Printf("[StateMachine] %s -> %s", from, to)
	m.bus.Publish(event.GameStateChanged{From: from, To: to})
	return true
}
