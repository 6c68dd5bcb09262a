package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the most recent runs in process memory. Nothing survives
// a restart. When full, the oldest run is evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     map[uuid.UUID]*Run
	order    []uuid.UUID
	capacity int
	now      func() time.Time
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{
		runs:     make(map[uuid.UUID]*Run),
		capacity: capacity,
		now:      time.Now,
	}
}

func (s *MemoryStore) CreateRun(_ context.Context, run *Run) error {
	if run == nil {
		return fmt.Errorf("create run: nil run")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if _, exists := s.runs[run.ID]; exists {
		return fmt.Errorf("create run: duplicate id %s", run.ID)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}

	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	return nil
}

// GetRun returns nil, nil when the run does not exist.
func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id], nil
}

// ListRuns returns runs newest first.
func (s *MemoryStore) ListRuns(_ context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*Run{}
	for i := len(s.order) - 1; i >= 0; i-- {
		r := s.runs[s.order[i]]
		if filter.DamageTypeID != "" && r.DamageType.ID != filter.DamageTypeID {
			continue
		}
		out = append(out, r)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// DeleteRun reports whether a run was removed.
func (s *MemoryStore) DeleteRun(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return false, nil
	}
	delete(s.runs, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[uuid.UUID]*Run)
	s.order = nil
	return nil
}
