package server

import "sync"

// Event names a lifecycle phase.
type Event string

const (
	// EventStarting fires with the *Server before the listener is bound.
	EventStarting Event = "starting"
	// EventStarted fires with the *Handle after the listener is bound.
	EventStarted Event = "started"
)

// Listener receives the event payload synchronously on the Start goroutine.
type Listener func(payload any)

type emitter struct {
	mu        sync.RWMutex
	listeners map[Event][]Listener
}

func newEmitter() *emitter {
	return &emitter{listeners: make(map[Event][]Listener)}
}

func (e *emitter) on(event Event, fn Listener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], fn)
}

// emit 按注册顺序同步调用监听器；调用期间新增的监听器不会收到本次事件。
func (e *emitter) emit(event Event, payload any) {
	e.mu.RLock()
	listeners := append([]Listener(nil), e.listeners[event]...)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(payload)
	}
}
