package display

import (
	"context"
	"encoding/json"
	"sync"
)

// InMemoryRepository backs tests and local runs without Postgres. It
// round-trips through JSON so tests observe the same serialization the
// Postgres repository does.
type InMemoryRepository struct {
	mu      sync.Mutex
	records map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string][]byte)}
}

func (r *InMemoryRepository) LoadState(ctx context.Context) (*State, error) {
	s := NewState()
	if err := r.load(StateKey, s); err != nil {
		return nil, err
	}
	if s.RoastsToday == nil {
		s.RoastsToday = []string{}
	}
	if s.BakeItems == nil {
		s.BakeItems = []string{}
	}
	return s, nil
}

func (r *InMemoryRepository) SaveState(ctx context.Context, s *State) error {
	return r.save(StateKey, s)
}

func (r *InMemoryRepository) LoadMailState(ctx context.Context) (*MailState, error) {
	m := &MailState{}
	if err := r.load(MailStateKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *InMemoryRepository) SaveMailState(ctx context.Context, m *MailState) error {
	return r.save(MailStateKey, m)
}

func (r *InMemoryRepository) load(key string, out any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.records[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (r *InMemoryRepository) save(key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = data
	return nil
}
