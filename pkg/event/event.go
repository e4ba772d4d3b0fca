// Package event 提供同步的事件分发
//
// 模拟核心通过 Dispatcher 向宿主发布阶段切换和玩法事件（击破、擦弹、升级等）。
// 分发在调用方的 goroutine 上同步执行，不加锁。
package event

// EventType 事件类型
type EventType string

// Event 事件
type Event struct {
	Type EventType
	Data interface{} // 事件数据，具体类型见各事件常量说明
}

// Listener 事件订阅者
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher 事件分发器
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅事件，同一订阅者按订阅顺序接收
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// Unsubscribe 取消订阅（只移除第一次匹配）
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch 将事件同步发送给所有订阅者
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// ListenerCount 返回指定事件的订阅者数量
func (d *Dispatcher) ListenerCount(eventType EventType) int {
	return len(d.listeners[eventType])
}
