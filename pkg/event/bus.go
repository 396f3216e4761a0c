// Package event 提供会话内的类型化事件总线
//
// 事件按类型订阅，在发布的同一个 tick 内同步分发。处理函数中再次发布的事件
// 进入队列，等当前事件分发完后按 FIFO 顺序处理，保证所有订阅者看到相同的顺序。
package event

// Handler 事件处理函数
type Handler func(Event)

// SubscriptionID 订阅句柄，用于取消订阅
type SubscriptionID int

type subscription struct {
	id      SubscriptionID
	all     bool // SubscribeAll 订阅，匹配任意类型
	typ     Type
	handler Handler
}

func (s subscription) matches(t Type) bool {
	return s.all || s.typ == t
}

// Bus 事件总线，由会话持有，不是全局单例
//
// 订阅列表按订阅 ID 升序保存（ID 单调递增，追加即有序）。
// 订阅和取消订阅总是替换整个切片，分发时直接遍历当时的切片，无需复制或排序。
type Bus struct {
	subs        []subscription
	queue       []Event
	dispatching bool
	nextID      SubscriptionID
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) add(sub subscription) SubscriptionID {
	b.nextID++
	sub.id = b.nextID
	next := make([]subscription, len(b.subs), len(b.subs)+1)
	copy(next, b.subs)
	b.subs = append(next, sub)
	return sub.id
}

// Subscribe 订阅某一类事件
func (b *Bus) Subscribe(t Type, h Handler) SubscriptionID {
	return b.add(subscription{typ: t, handler: h})
}

// SubscribeAll 订阅所有事件（日志、录制等）
func (b *Bus) SubscribeAll(h Handler) SubscriptionID {
	return b.add(subscription{all: true, handler: h})
}

// Unsubscribe 取消订阅，未知 ID 忽略
func (b *Bus) Unsubscribe(id SubscriptionID) {
	next := make([]subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.id != id {
			next = append(next, s)
		}
	}
	b.subs = next
}

// Publish 发布事件
// 如果正在分发其他事件，则排队等待
func (b *Bus) Publish(e Event) {
	b.queue = append(b.queue, e)
	if b.dispatching {
		return
	}
	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.dispatch(next)
	}
}

func (b *Bus) dispatch(e Event) {
	// 处理函数内订阅/取消订阅会替换 b.subs，不影响本次遍历
	subs := b.subs
	t := e.Type()
	for _, s := range subs {
		if s.matches(t) {
			s.handler(e)
		}
	}
}

// HandlerCount 返回某类事件的订阅数量（不含 SubscribeAll）
func (b *Bus) HandlerCount(t Type) int {
	n := 0
	for _, s := range b.subs {
		if !s.all && s.typ == t {
			n++
		}
	}
	return n
}
