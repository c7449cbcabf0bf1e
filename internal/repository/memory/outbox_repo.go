package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
)

type OutboxRepo struct {
	mu      sync.Mutex
	nextID  int64
	events  []*usecase.OutboxEvent
	started map[int64]time.Time
}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{started: make(map[int64]time.Time)}
}

func (r *OutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *event
	stored.ID = r.nextID
	r.events = append(r.events, &stored)

	res := stored
	return &res, nil
}

func (r *OutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*usecase.OutboxEvent, 0, limit)
	for _, event := range r.events {
		if len(result) == limit {
			break
		}
		if event.Status == usecase.Pending {
			event.Status = usecase.Processing
			r.started[event.ID] = time.Now()
			res := *event
			result = append(result, &res)
		}
	}
	return result, nil
}

func (r *OutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range r.events {
		if event.ID == id && event.Status == usecase.Processing {
			now := time.Now().UTC()
			event.Status = usecase.Processed
			event.ProcessedAt = &now
			delete(r.started, id)
		}
	}
	return nil
}

// ReleaseStale возвращает в очередь события, которые обрабатываются дольше olderThan.
func (r *OutboxRepo) ReleaseStale(_ context.Context, olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var released int64
	for _, event := range r.events {
		started, ok := r.started[event.ID]
		if ok && event.Status == usecase.Processing && time.Since(started) > olderThan {
			event.Status = usecase.Pending
			delete(r.started, event.ID)
			released++
		}
	}
	return released, nil
}

// Events возвращает копию всех записанных событий.
func (r *OutboxRepo) Events() []usecase.OutboxEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]usecase.OutboxEvent, len(r.events))
	for i, event := range r.events {
		result[i] = *event
	}
	return result
}
