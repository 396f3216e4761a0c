// Package entities 提供实体工厂函数
package entities

import (
	"fmt"

	"github.com/decker502/boarddefence/pkg/components"
	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/types"
)

// NewDefenderEntity 创建防御单位实体
// 实体带有 DefenderComponent 和攻击计时器，初始状态为 Idle
//
// 参数:
//   - em: 实体管理器
//   - stats: 单位属性表
//   - defenderType: 防御单位类型
//   - cell: 所在格子
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，如果失败返回 0
//   - error: 类型没有属性配置时返回错误
func NewDefenderEntity(em *ecs.EntityManager, stats *config.UnitStats, defenderType types.DefenderType, cell types.Cell) (ecs.EntityID, error) {
	s, ok := stats.Defender(defenderType)
	if !ok {
		return 0, fmt.Errorf("no stats for defender type %s", defenderType)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.DefenderComponent{
		DefenderType:   defenderType,
		Cell:           cell,
		Damage:         s.Damage,
		Range:          s.Range,
		AttackInterval: s.AttackInterval,
		Direction:      s.Direction,
		State:          components.DefenderIdle,
	})
	ecs.AddComponent(em, id, &components.TimerComponent{
		Name:       components.AttackTimerName,
		TargetTime: s.AttackInterval,
	})
	return id, nil
}
