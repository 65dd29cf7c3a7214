package player

import (
	"sync"

	"github.com/xtding233/gacha-server/internal/domain"
)

// Avatars is an in-memory character roster.
type Avatars struct {
	mu     sync.RWMutex
	levels map[int]int // character id -> upgrade level
}

// NewAvatars creates an empty roster.
func NewAvatars() *Avatars {
	return &Avatars{levels: make(map[int]int)}
}

func (a *Avatars) GetOwnedCharacter(characterID int) (domain.CharacterHandle, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.levels[characterID]
	return domain.CharacterHandle{CharacterID: characterID}, ok
}

func (a *Avatars) UpgradeLevel(h domain.CharacterHandle) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.levels[h.CharacterID]
}

// Grant adds a character at upgrade level 0. Granting an owned character is a no-op.
func (a *Avatars) Grant(characterID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.levels[characterID]; !ok {
		a.levels[characterID] = 0
	}
}
