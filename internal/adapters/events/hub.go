package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

const subscriberBuffer = 8

// Hub fans reload signals out to in-process subscribers such as SSE
// streams. A subscriber that falls behind loses signals rather than
// blocking the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan domain.ReloadSignal
	nextID int
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[int]chan domain.ReloadSignal),
		logger: logger,
	}
}

// Subscribe returns a channel of signals and a function that closes it.
func (h *Hub) Subscribe() (<-chan domain.ReloadSignal, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan domain.ReloadSignal, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) PublishReload(ctx context.Context, signal domain.ReloadSignal) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- signal:
		default:
			h.logger.Warn("reload subscriber lagging, signal dropped",
				zap.Int("subscriber", id), zap.String("reason", string(signal.Reason)))
		}
	}
	return nil
}

// Forward adapts the hub to callback-style listeners.
func (h *Hub) Forward(signal domain.ReloadSignal) {
	_ = h.PublishReload(context.Background(), signal)
}
