package systems

import (
	"log"

	"github.com/decker502/boarddefence/pkg/components"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/enemy"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/targeting"
	"github.com/decker502/boarddefence/pkg/types"
)

// DefenderSystem 驱动防御单位的攻击计时器并结算攻击
//
// 每个处于 Attacking 状态的防御单位累积 dt，达到攻击间隔时调用 PerformAttack。
// 攻击立即生效（不模拟弹道），一次攻击最多命中一个敌人。
type DefenderSystem struct {
	entityManager *ecs.EntityManager
	pool          *enemy.Pool
	layout        grid.Layout
	tolerance     float64
	bus           *event.Bus
}

// NewDefenderSystem 创建防御单位系统
// 参数:
//   - em: 实体管理器（防御单位实体）
//   - pool: 敌人对象池（目标查询）
//   - layout: 格子与连续坐标换算
//   - tolerance: 候选格子中心到敌人位置的最大距离
//   - bus: 事件总线
func NewDefenderSystem(em *ecs.EntityManager, pool *enemy.Pool, layout grid.Layout, tolerance float64, bus *event.Bus) *DefenderSystem {
	return &DefenderSystem{
		entityManager: em,
		pool:          pool,
		layout:        layout,
		tolerance:     tolerance,
		bus:           bus,
	}
}

func (s *DefenderSystem) lookup(id ecs.EntityID) (*components.DefenderComponent, *components.TimerComponent, bool) {
	def, ok := ecs.GetComponent[*components.DefenderComponent](s.entityManager, id)
	if !ok {
		return nil, nil, false
	}
	timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
	if !ok {
		return nil, nil, false
	}
	return def, timer, true
}

// StartAttacking 让防御单位进入 Attacking 状态
// 已在攻击中时不做任何事并返回 false。
// 计时器被置满，第一次攻击发生在下一次 Update 中，之后每隔 AttackInterval 攻击一次。
func (s *DefenderSystem) StartAttacking(id ecs.EntityID) bool {
	def, timer, ok := s.lookup(id)
	if !ok || def.State == components.DefenderAttacking {
		return false
	}
	def.State = components.DefenderAttacking
	timer.CurrentTime = timer.TargetTime
	timer.IsReady = false
	return true
}

// StopAttacking 回到 Idle，计时器冻结
func (s *DefenderSystem) StopAttacking(id ecs.EntityID) bool {
	def, timer, ok := s.lookup(id)
	if !ok || def.State == components.DefenderIdle {
		return false
	}
	def.State = components.DefenderIdle
	timer.IsReady = false
	return true
}

// StartAll 让所有防御单位开始攻击，返回状态发生变化的数量
func (s *DefenderSystem) StartAll() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith2[*components.DefenderComponent, *components.TimerComponent](s.entityManager) {
		if s.StartAttacking(id) {
			n++
		}
	}
	log.Printf("[DefenderSystem] Started %d defenders", n)
	return n
}

// StopAll 让所有防御单位停止攻击
func (s *DefenderSystem) StopAll() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith2[*components.DefenderComponent, *components.TimerComponent](s.entityManager) {
		if s.StopAttacking(id) {
			n++
		}
	}
	log.Printf("[DefenderSystem] Stopped %d defenders", n)
	return n
}

// Update 推进所有攻击中防御单位的计时器（按实体 ID 升序）
func (s *DefenderSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.DefenderComponent, *components.TimerComponent](s.entityManager) {
		def, timer, _ := s.lookup(id)
		timer.IsReady = false
		if def.State != components.DefenderAttacking || timer.TargetTime <= 0 {
			continue
		}
		timer.CurrentTime += dt
		for timer.CurrentTime >= timer.TargetTime {
			timer.CurrentTime -= timer.TargetTime
			timer.IsReady = true
			s.PerformAttack(id)
		}
	}
}

// FindTarget 按候选格子顺序查找第一个可攻击的敌人
// 返回:
//   - *enemy.Enemy: 目标
//   - types.Cell: 命中的候选格子
//   - bool: 是否找到
func (s *DefenderSystem) FindTarget(def *components.DefenderComponent) (*enemy.Enemy, types.Cell, bool) {
	var filter enemy.Filter
	if def.Direction == types.DirectionForward {
		col := def.Cell.Col
		filter = func(e *enemy.Enemy) bool { return e.Cell.Col == col }
	}
	for _, cell := range targeting.TargetCells(def.Direction, def.Cell, def.Range) {
		if target, ok := s.pool.Nearest(s.layout.ToSpace(cell), s.tolerance, s.layout, filter); ok {
			return target, cell, true
		}
	}
	return nil, types.Cell{}, false
}

// PerformAttack 执行一次攻击
// 没有可攻击的敌人时什么也不做
// 返回:
//   - enemy.ID: 被攻击的敌人
//   - bool: 是否发生攻击
func (s *DefenderSystem) PerformAttack(id ecs.EntityID) (enemy.ID, bool) {
	def, ok := ecs.GetComponent[*components.DefenderComponent](s.entityManager, id)
	if !ok {
		return 0, false
	}
	target, _, found := s.FindTarget(def)
	if !found {
		return 0, false
	}

	_, died := target.TakeDamage(def.Damage)
	s.bus.Publish(event.AttackPerformed{
		Defender:   id,
		Cell:       def.Cell,
		Damage:     def.Damage,
		Target:     target.ID,
		TargetCell: target.Cell,
	})
	s.bus.Publish(event.EnemyDamaged{
		ID:        target.ID,
		Cell:      target.Cell,
		Amount:    def.Damage,
		Remaining: target.Health,
	})
	if died {
		log.Printf("[DefenderSystem] %s at %s killed enemy %d at %s", def.DefenderType, def.Cell, target.ID, target.Cell)
		s.bus.Publish(event.EnemyDied{ID: target.ID, Cell: target.Cell, EnemyType: target.Type})
	}
	return target.ID, true
}
