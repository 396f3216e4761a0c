package types

import "fmt"

// EnemyType 定义敌人的类型
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota
	// EnemyType1 快速低血量
	EnemyType1
	// EnemyType2 慢速高血量
	EnemyType2
	// EnemyType3 中速中血量
	EnemyType3
)

// AllEnemyTypes 按固定顺序返回所有敌人类型
func AllEnemyTypes() []EnemyType {
	return []EnemyType{EnemyType1, EnemyType2, EnemyType3}
}

// String 返回敌人类型的字符串表示
func (e EnemyType) String() string {
	switch e {
	case EnemyType1:
		return "Type1"
	case EnemyType2:
		return "Type2"
	case EnemyType3:
		return "Type3"
	default:
		return "Unknown"
	}
}

// ParseEnemyType 将配置文件中的名称解析为 EnemyType
func ParseEnemyType(name string) (EnemyType, error) {
	switch name {
	case "Type1", "type1", "1":
		return EnemyType1, nil
	case "Type2", "type2", "2":
		return EnemyType2, nil
	case "Type3", "type3", "3":
		return EnemyType3, nil
	}
	return EnemyUnknown, fmt.Errorf("unknown enemy type %q", name)
}
