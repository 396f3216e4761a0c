package game

import (
	"errors"
	"log"

	"github.com/decker502/boarddefence/pkg/components"
	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/ecs"
	"github.com/decker502/boarddefence/pkg/entities"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/grid"
	"github.com/decker502/boarddefence/pkg/systems"
	"github.com/decker502/boarddefence/pkg/types"
)

// 放置命令的非 PlacementError 拒绝原因
var (
	ErrPlacementLocked = errors.New("placement is locked")
	ErrNoSelection     = errors.New("no defender type selected")
)

// PlacementController 管理防御单位的放置、移除和库存
// 它是防御单位集合的唯一所有者：实体创建和销毁都经过这里
type PlacementController struct {
	grid      *grid.Grid
	em        *ecs.EntityManager
	stats     *config.UnitStats
	inventory *Inventory
	defenders *systems.DefenderSystem
	bus       *event.Bus

	locked   bool
	selected types.DefenderType
}

// NewPlacementController 创建放置控制器
func NewPlacementController(g *grid.Grid, em *ecs.EntityManager, stats *config.UnitStats, inv *Inventory, defenders *systems.DefenderSystem, bus *event.Bus) *PlacementController {
	return &PlacementController{
		grid:      g,
		em:        em,
		stats:     stats,
		inventory: inv,
		defenders: defenders,
		bus:       bus,
	}
}

// Lock 禁止放置和移除（战斗开始时）
func (p *PlacementController) Lock() { p.locked = true }

// Unlock 允许放置和移除
func (p *PlacementController) Unlock() { p.locked = false }

// IsLocked 是否已锁定
func (p *PlacementController) IsLocked() bool { return p.locked }

// SelectDefenderType 选中一种防御单位，只有剩余数量 > 0 时成功
func (p *PlacementController) SelectDefenderType(t types.DefenderType) bool {
	if p.inventory.Remaining(t) <= 0 {
		return false
	}
	if p.selected == t {
		return true
	}
	p.selected = t
	p.bus.Publish(event.DefenderTypeSelected{DefenderType: t})
	return true
}

// Deselect 取消选中
func (p *PlacementController) Deselect() {
	p.selected = types.DefenderUnknown
}

// Selected 当前选中的类型，未选中时为 DefenderUnknown
func (p *PlacementController) Selected() types.DefenderType {
	return p.selected
}

// Place 在 cell 放置一个 t 类型防御单位
// 检查顺序：锁定 → 库存 → 放置区 → 占用；任何失败都不改变状态
// 返回:
//   - ecs.EntityID: 新实体
//   - error: ErrPlacementLocked 或 *grid.PlacementError
func (p *PlacementController) Place(t types.DefenderType, cell types.Cell) (ecs.EntityID, error) {
	if p.locked {
		return 0, ErrPlacementLocked
	}
	if p.inventory.Remaining(t) <= 0 {
		return 0, grid.NewPlacementError(grid.ReasonInsufficientInventory, cell)
	}
	if !p.grid.IsPlaceable(cell) {
		return 0, grid.NewPlacementError(grid.ReasonNotPlaceable, cell)
	}
	if p.grid.IsOccupied(cell) {
		return 0, grid.NewPlacementError(grid.ReasonOccupied, cell)
	}

	id, err := entities.NewDefenderEntity(p.em, p.stats, t, cell)
	if err != nil {
		return 0, err
	}
	if err := p.grid.TryPlace(cell, id); err != nil {
		p.em.DestroyEntity(id)
		p.em.RemoveMarkedEntities()
		return 0, err
	}
	p.inventory.Consume(t)
	if p.selected == t && p.inventory.Remaining(t) == 0 {
		p.Deselect()
	}

	log.Printf("[PlacementController] Placed %s at %s (entity %d, %d left)", t, cell, id, p.inventory.Remaining(t))
	p.bus.Publish(event.DefenderPlaced{ID: id, Cell: cell, DefenderType: t})
	return id, nil
}

// PlaceSelected 在 cell 放置当前选中的类型
func (p *PlacementController) PlaceSelected(cell types.Cell) (ecs.EntityID, error) {
	if p.selected == types.DefenderUnknown {
		return 0, ErrNoSelection
	}
	return p.Place(p.selected, cell)
}

// Remove 移除 cell 上的防御单位并归还库存
// 锁定或格子为空时返回 false
func (p *PlacementController) Remove(cell types.Cell) bool {
	if p.locked {
		return false
	}
	id, t, ok := p.removeAt(cell)
	if !ok {
		return false
	}
	p.inventory.Restore(t)
	log.Printf("[PlacementController] Removed %s at %s", t, cell)
	p.bus.Publish(event.DefenderRemoved{ID: id, Cell: cell, DefenderType: t})
	return true
}

func (p *PlacementController) removeAt(cell types.Cell) (ecs.EntityID, types.DefenderType, bool) {
	id, ok := p.grid.Remove(cell)
	if !ok {
		return 0, types.DefenderUnknown, false
	}
	t := types.DefenderUnknown
	if def, ok := ecs.GetComponent[*components.DefenderComponent](p.em, id); ok {
		t = def.DefenderType
	}
	p.em.DestroyEntity(id)
	p.em.RemoveMarkedEntities()
	return id, t, true
}

// ClearAll 清除所有防御单位（忽略锁定，不归还库存），返回清除数量
func (p *PlacementController) ClearAll() int {
	n := 0
	for _, cell := range p.grid.OccupiedCells() {
		if _, _, ok := p.removeAt(cell); ok {
			n++
		}
	}
	p.grid.Clear()
	p.Deselect()
	log.Printf("[PlacementController] Cleared %d defenders", n)
	p.bus.Publish(event.BoardCleared{})
	return n
}

// StartAll 让所有防御单位开始攻击
func (p *PlacementController) StartAll() int {
	return p.defenders.StartAll()
}

// StopAll 让所有防御单位停止攻击
func (p *PlacementController) StopAll() int {
	return p.defenders.StopAll()
}

// DefenderAt 返回格子上防御单位的组件
func (p *PlacementController) DefenderAt(cell types.Cell) (*components.DefenderComponent, bool) {
	id := p.grid.Occupant(cell)
	if id == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.DefenderComponent](p.em, id)
}

// Count 当前防御单位数量
func (p *PlacementController) Count() int {
	return len(p.grid.OccupiedCells())
}
