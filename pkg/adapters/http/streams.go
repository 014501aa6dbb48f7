package http

import (
	"log/slog"
	"sync"
)

// AllSnapshots is the subscription key that receives every event.
const AllSnapshots = ""

// StreamManager fans snapshot change events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // snapshot name -> channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for events about name.
// The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(name string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[name]; !ok {
		sm.subscribers[name] = make(map[chan<- string]struct{})
	}
	sm.subscribers[name][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[name]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, name)
				}
			}
		})
	}
}

// Broadcast delivers msg to subscribers of name and to global subscribers.
// Slow clients lose messages instead of blocking the caller.
func (sm *StreamManager) Broadcast(name, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	keys := []string{AllSnapshots}
	if name != AllSnapshots {
		keys = append(keys, name)
	}
	for _, key := range keys {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				sm.logger.Warn("SSE: client buffer full, dropping message", "snapshot", name)
			}
		}
	}
}

// Subscribers reports how many channels listen on name.
func (sm *StreamManager) Subscribers(name string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[name])
}
