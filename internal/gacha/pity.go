package gacha

import "sync"

// PityState is one player's progress on one banner.
type PityState struct {
	PityMid           int    `json:"pity_mid"`           // draws since the last mid-or-better result
	PityTop           int    `json:"pity_top"`           // draws since the last top result
	GuaranteeFailures int    `json:"guarantee_failures"` // 1 after a lost 50/50, forcing the next top to be featured
	Revision          uint64 `json:"revision"`           // bumped on every transition
}

// Tracker holds every player's pity states, keyed by banner type. States are created on
// first access and never removed.
//
// Tracker only guards its own maps. Callers must serialize the Get, Draw, Commit sequence per
// player (see concurrency.LockManager) or concurrent pulls would lose transitions.
type Tracker struct {
	players sync.Map // int64 -> *playerPity
}

type playerPity struct {
	mu     sync.Mutex
	states map[int]*PityState
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) player(playerID int64) *playerPity {
	if p, ok := t.players.Load(playerID); ok {
		return p.(*playerPity)
	}
	p, _ := t.players.LoadOrStore(playerID, &playerPity{states: make(map[int]*PityState)})
	return p.(*playerPity)
}

// Get returns the player's state for bannerType, creating a zero state if absent.
func (t *Tracker) Get(playerID int64, bannerType int) PityState {
	p := t.player(playerID)
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.states[bannerType]
	if !ok {
		s = &PityState{}
		p.states[bannerType] = s
	}
	return *s
}

// Commit stores the state returned by Engine.Draw. It is the only write path.
func (t *Tracker) Commit(playerID int64, bannerType int, next PityState) {
	p := t.player(playerID)
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.states[bannerType]; ok {
		*s = next
		return
	}
	p.states[bannerType] = &next
}

// Known reports whether the tracker has seen the player.
func (t *Tracker) Known(playerID int64) bool {
	_, ok := t.players.Load(playerID)
	return ok
}

// Seed installs persisted states for a player the tracker has not seen yet. It returns false
// and changes nothing when the player is already known.
func (t *Tracker) Seed(playerID int64, states map[int]PityState) bool {
	p := &playerPity{states: make(map[int]*PityState, len(states))}
	for bannerType, s := range states {
		s := s
		p.states[bannerType] = &s
	}
	_, loaded := t.players.LoadOrStore(playerID, p)
	return !loaded
}

// Snapshot copies all of a player's states.
func (t *Tracker) Snapshot(playerID int64) map[int]PityState {
	v, ok := t.players.Load(playerID)
	if !ok {
		return map[int]PityState{}
	}
	p := v.(*playerPity)
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[int]PityState, len(p.states))
	for bannerType, s := range p.states {
		out[bannerType] = *s
	}
	return out
}
