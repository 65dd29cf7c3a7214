// Package pitystore persists pity counters between process restarts.
package pitystore

import (
	"context"
	"sync"

	"github.com/xtding233/gacha-server/internal/gacha"
)

// Store loads and saves per-banner pity states. Save ignores a state whose Revision is not
// newer than the stored one, so saves may arrive out of order.
type Store interface {
	Load(ctx context.Context, playerID int64) (map[int]gacha.PityState, error)
	Save(ctx context.Context, playerID int64, bannerType int, state gacha.PityState) error
}

type memoryStore struct {
	mu     sync.RWMutex
	states map[int64]map[int]gacha.PityState
}

// NewMemory creates a process-local store.
func NewMemory() Store {
	return &memoryStore{states: make(map[int64]map[int]gacha.PityState)}
}

func (m *memoryStore) Load(_ context.Context, playerID int64) (map[int]gacha.PityState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[int]gacha.PityState, len(m.states[playerID]))
	for k, v := range m.states[playerID] {
		out[k] = v
	}
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, playerID int64, bannerType int, state gacha.PityState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byBanner, ok := m.states[playerID]
	if !ok {
		byBanner = make(map[int]gacha.PityState)
		m.states[playerID] = byBanner
	}
	if cur, ok := byBanner[bannerType]; ok && cur.Revision >= state.Revision {
		return nil
	}
	byBanner[bannerType] = state
	return nil
}
