package systems

import (
	"errors"
	"log"
	"math/rand"

	"github.com/decker502/boarddefence/pkg/config"
	"github.com/decker502/boarddefence/pkg/enemy"
	"github.com/decker502/boarddefence/pkg/event"
	"github.com/decker502/boarddefence/pkg/types"
)

// WaveScheduler 按关卡清单生成敌人并判断关卡是否完成
//
// 调度基于截止时间：内部时钟随 Update 累加，到达 nextSpawnAt 时生成一个敌人，
// 然后按当前条目的间隔设置下一个截止时间。清单执行完后再等待一个间隔，
// 之后 IsSpawning 变为 false 并发出 WaveCompleted。
type WaveScheduler struct {
	pool  *enemy.Pool
	bus   *event.Bus
	rng   *rand.Rand
	width int

	level *config.LevelConfig

	clock       float64
	nextSpawnAt float64
	entry       int // 当前清单条目
	entryCount  int // 当前条目已处理数量
	started     bool
	spawning    bool
	draining    bool // 清单已执行完，等待最后一个间隔
	exhausted   bool

	totalSpawned int
	dropped      int
	defeated     int
	escaped      int
	completed    bool
}

// NewWaveScheduler 创建波次调度器
// 参数:
//   - pool: 敌人对象池
//   - bus: 事件总线
//   - rng: 生成列的随机源（测试中可传入固定种子）
//   - width: 棋盘列数
func NewWaveScheduler(pool *enemy.Pool, bus *event.Bus, rng *rand.Rand, width int) *WaveScheduler {
	return &WaveScheduler{pool: pool, bus: bus, rng: rng, width: width}
}

// Load 载入关卡清单并重置所有计数
func (w *WaveScheduler) Load(level *config.LevelConfig) {
	*w = WaveScheduler{pool: w.pool, bus: w.bus, rng: w.rng, width: w.width, level: level}
	log.Printf("[WaveScheduler] Loaded level %d: %d enemies planned", level.Number, level.TotalEnemies())
}

// StartSpawning 开始（或继续）执行清单
// 已在生成中、未加载关卡或清单已执行完时什么也不做
func (w *WaveScheduler) StartSpawning() bool {
	if w.spawning || w.level == nil || w.exhausted {
		return false
	}
	w.spawning = true
	if !w.started {
		w.started = true
		w.nextSpawnAt = w.clock + w.level.InitialSpawnDelay
		w.bus.Publish(event.WaveStarted{Level: w.level.Number, Total: w.level.TotalEnemies()})
		log.Printf("[WaveScheduler] Wave started, first spawn in %.1fs", w.level.InitialSpawnDelay)
	} else {
		w.nextSpawnAt = w.clock + w.currentInterval()
	}
	return true
}

// StopSpawning 取消正在进行的生成，已生成的敌人不受影响
func (w *WaveScheduler) StopSpawning() {
	if w.spawning {
		log.Printf("[WaveScheduler] Spawning stopped (%d spawned)", w.totalSpawned)
	}
	w.spawning = false
}

func (w *WaveScheduler) currentInterval() float64 {
	if w.entry >= len(w.level.Spawns) {
		return w.level.TimeBetweenSpawns
	}
	return w.level.Spawns[w.entry].Interval(w.level)
}

// Update 推进调度时钟，到期时生成敌人
func (w *WaveScheduler) Update(dt float64) {
	if !w.spawning {
		return
	}
	w.clock += dt
	for w.spawning && w.clock >= w.nextSpawnAt {
		w.skipEmptyEntries()
		if w.draining || w.entry >= len(w.level.Spawns) {
			w.finish()
			return
		}
		interval := w.currentInterval()
		w.spawnOne(w.level.Spawns[w.entry].EnemyType)
		w.entryCount++
		if w.entryCount >= w.level.Spawns[w.entry].Count {
			w.entry++
			w.entryCount = 0
		}
		w.skipEmptyEntries()
		if w.entry >= len(w.level.Spawns) {
			w.draining = true
		}
		w.nextSpawnAt += interval
	}
}

func (w *WaveScheduler) skipEmptyEntries() {
	for w.entry < len(w.level.Spawns) && w.level.Spawns[w.entry].Count <= 0 {
		w.entry++
	}
}

func (w *WaveScheduler) finish() {
	w.spawning = false
	w.draining = false
	w.exhausted = true
	log.Printf("[WaveScheduler] Wave completed: %d spawned, %d dropped", w.totalSpawned, w.dropped)
	w.bus.Publish(event.WaveCompleted{Level: w.level.Number, Spawned: w.totalSpawned})
}

func (w *WaveScheduler) spawnOne(t types.EnemyType) {
	cell := types.Cell{Col: w.rng.Intn(w.width), Row: 0}
	e, err := w.pool.Acquire(t, cell)
	if err != nil {
		w.dropped++
		if errors.Is(err, enemy.ErrPoolExhausted) {
			log.Printf("[WaveScheduler] Warning: spawn of %s dropped: %v", t, err)
		} else {
			log.Printf("[WaveScheduler] Error: spawn of %s failed: %v", t, err)
		}
		return
	}
	w.totalSpawned++
	log.Printf("[WaveScheduler] Spawned enemy %d type=%s cell=%s", e.ID, t, cell)
	w.bus.Publish(event.EnemySpawned{ID: e.ID, Cell: cell, EnemyType: t})
}

// RecordDefeated 记录一个被击杀的敌人
func (w *WaveScheduler) RecordDefeated() { w.defeated++ }

// RecordEscaped 记录一个到达基地的敌人
func (w *WaveScheduler) RecordEscaped() { w.escaped++ }

// CheckLevelComplete 判断关卡是否完成
// 条件：清单已执行完且不在生成中、击杀+逃脱 >= 实际生成数、场上没有活跃敌人。
// 满足时发出 AllEnemiesDefeated 和 LevelCompleted，每关只返回一次 true。
func (w *WaveScheduler) CheckLevelComplete(active int) bool {
	if w.completed || w.level == nil || !w.exhausted || w.spawning {
		return false
	}
	if w.defeated+w.escaped < w.totalSpawned || active != 0 {
		return false
	}
	w.completed = true
	log.Printf("[WaveScheduler] Level %d complete (defeated=%d escaped=%d)", w.level.Number, w.defeated, w.escaped)
	w.bus.Publish(event.AllEnemiesDefeated{Level: w.level.Number})
	w.bus.Publish(event.LevelCompleted{Level: w.level.Number})
	return true
}

// IsSpawning 是否正在执行清单
func (w *WaveScheduler) IsSpawning() bool { return w.spawning }

// Level 当前关卡
func (w *WaveScheduler) Level() *config.LevelConfig { return w.level }

// TotalSpawned 实际生成数量
func (w *WaveScheduler) TotalSpawned() int { return w.totalSpawned }

// Dropped 因对象池耗尽被丢弃的生成次数
func (w *WaveScheduler) Dropped() int { return w.dropped }

// Defeated 击杀数量
func (w *WaveScheduler) Defeated() int { return w.defeated }

// Escaped 逃脱数量
func (w *WaveScheduler) Escaped() int { return w.escaped }

// Completed 本关是否已判定完成
func (w *WaveScheduler) Completed() bool { return w.completed }

// RemainingEnemies 清单中尚未处理的敌人数量
func (w *WaveScheduler) RemainingEnemies() int {
	if w.level == nil {
		return 0
	}
	return w.level.TotalEnemies() - w.totalSpawned - w.dropped
}
