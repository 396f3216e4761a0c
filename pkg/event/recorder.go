package event

// Recorder 记录总线上的全部事件，便于测试和调试回放
type Recorder struct {
	events []Event
}

// NewRecorder 创建记录器并挂到总线上
func NewRecorder(b *Bus) *Recorder {
	r := &Recorder{}
	b.SubscribeAll(func(e Event) { r.events = append(r.events, e) })
	return r
}

// Events 返回已记录事件的副本
func (r *Recorder) Events() []Event {
	return append([]Event(nil), r.events...)
}

// OfType 返回某类事件
func (r *Recorder) OfType(t Type) []Event {
	out := make([]Event, 0)
	for _, e := range r.events {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}

// Count 返回某类事件的数量
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type() == t {
			n++
		}
	}
	return n
}

// Types 按顺序返回所有事件类型
func (r *Recorder) Types() []Type {
	out := make([]Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type()
	}
	return out
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
