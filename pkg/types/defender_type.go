// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// DefenderType 定义防御单位的类型
type DefenderType int

const (
	// DefenderUnknown 未知防御单位类型
	DefenderUnknown DefenderType = iota
	// DefenderType1 远程单列防御单位
	DefenderType1
	// DefenderType2 中程单列防御单位
	DefenderType2
	// DefenderType3 近战四向防御单位
	DefenderType3
)

// AllDefenderTypes 按固定顺序返回所有可放置的防御单位类型
func AllDefenderTypes() []DefenderType {
	return []DefenderType{DefenderType1, DefenderType2, DefenderType3}
}

// String 返回防御单位类型的字符串表示
func (d DefenderType) String() string {
	switch d {
	case DefenderType1:
		return "Type1"
	case DefenderType2:
		return "Type2"
	case DefenderType3:
		return "Type3"
	default:
		return "Unknown"
	}
}

// ParseDefenderType 将配置文件中的名称解析为 DefenderType
// 接受 "Type1" / "type1" / "1" 三种写法
func ParseDefenderType(name string) (DefenderType, error) {
	switch name {
	case "Type1", "type1", "1":
		return DefenderType1, nil
	case "Type2", "type2", "2":
		return DefenderType2, nil
	case "Type3", "type3", "3":
		return DefenderType3, nil
	}
	return DefenderUnknown, fmt.Errorf("unknown defender type %q", name)
}

// AttackDirection 攻击方向模式
type AttackDirection int

const (
	// DirectionForward 只攻击正前方（朝敌人入口方向）的格子
	DirectionForward AttackDirection = iota
	// DirectionAll 攻击上下左右四个方向
	DirectionAll
)

func (a AttackDirection) String() string {
	switch a {
	case DirectionForward:
		return "Forward"
	case DirectionAll:
		return "All"
	default:
		return fmt.Sprintf("AttackDirection(%d)", int(a))
	}
}

// ParseAttackDirection 解析配置中的攻击方向
func ParseAttackDirection(name string) (AttackDirection, error) {
	switch name {
	case "Forward", "forward":
		return DirectionForward, nil
	case "All", "all":
		return DirectionAll, nil
	}
	return DirectionForward, fmt.Errorf("unknown attack direction %q", name)
}
