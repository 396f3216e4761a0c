// Package components 定义挂在防御单位实体上的纯数据组件
package components

import "github.com/decker502/boarddefence/pkg/types"

// DefenderState 防御单位的攻击状态
type DefenderState int

const (
	// DefenderIdle 未攻击（计时器冻结）
	DefenderIdle DefenderState = iota
	// DefenderAttacking 计时器运行中
	DefenderAttacking
)

func (s DefenderState) String() string {
	if s == DefenderAttacking {
		return "Attacking"
	}
	return "Idle"
}

// DefenderComponent 标识实体为防御单位
// 属性在放置时从单位属性表复制，之后不再改变
type DefenderComponent struct {
	DefenderType   types.DefenderType
	Cell           types.Cell
	Damage         int
	Range          int
	AttackInterval float64
	Direction      types.AttackDirection
	State          DefenderState
}

// AttackTimerName 防御单位攻击计时器的名称
const AttackTimerName = "attack"
