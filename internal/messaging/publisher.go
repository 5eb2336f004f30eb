package messaging

import (
	"sync"
)

// LocalBus is an in-process Bus used when no nats server is configured.
// Handlers run on the publishing goroutine.
type LocalBus struct {
	mu     sync.RWMutex
	nextId int
	subs   map[string]map[int]func([]byte)
}

func NewLocalBus() *LocalBus {
	return &LocalBus{
		subs: make(map[string]map[int]func([]byte)),
	}
}

// Subscribe registers handler for subject. The returned function removes it.
func (b *LocalBus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextId++
	id := b.nextId
	if b.subs[subject] == nil {
		b.subs[subject] = make(map[int]func([]byte))
	}
	b.subs[subject][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[subject], id)
		if len(b.subs[subject]) == 0 {
			delete(b.subs, subject)
		}
	}, nil
}

// Publish calls every handler subscribed to subject.
func (b *LocalBus) Publish(subject string, data []byte) error {
	b.mu.RLock()
	handlers := make([]func([]byte), 0, len(b.subs[subject]))
	for _, h := range b.subs[subject] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}
