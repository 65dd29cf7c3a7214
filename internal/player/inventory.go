package player

import (
	"fmt"
	"sync"

	"github.com/xtding233/gacha-server/internal/domain"
)

type stack struct {
	guid  uint64
	class domain.ItemClass
	count int
}

// Inventory is an in-memory item store with an optional slot limit per class. Weapons take
// one slot per copy; materials take one slot per distinct item.
type Inventory struct {
	mu       sync.Mutex
	limits   map[domain.ItemClass]int
	stacks   map[int]*stack
	used     map[domain.ItemClass]int
	nextGUID uint64

	onCharacter func(def domain.ItemDefinition)
}

// NewInventory creates an inventory. Classes missing from limits are unbounded.
func NewInventory(limits map[domain.ItemClass]int) *Inventory {
	l := make(map[domain.ItemClass]int, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &Inventory{
		limits: l,
		stacks: make(map[int]*stack),
		used:   make(map[domain.ItemClass]int),
	}
}

// HasCapacity reports whether additional slots of class are free.
func (inv *Inventory) HasCapacity(class domain.ItemClass, additional int) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.fits(class, additional)
}

func (inv *Inventory) fits(class domain.ItemClass, additional int) bool {
	limit, ok := inv.limits[class]
	if !ok {
		return true
	}
	return inv.used[class]+additional <= limit
}

// GetItem returns the stack for itemID if the player holds any.
func (inv *Inventory) GetItem(itemID int) (domain.ItemHandle, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	s, ok := inv.stacks[itemID]
	if !ok || s.count == 0 {
		return domain.ItemHandle{}, false
	}
	return domain.ItemHandle{GUID: s.guid, ItemID: itemID, Count: s.count}, true
}

// Count returns how many of itemID the player holds.
func (inv *Inventory) Count(itemID int) int {
	h, _ := inv.GetItem(itemID)
	return h.Count
}

// RemoveItem takes count units from the stack behind h.
func (inv *Inventory) RemoveItem(h domain.ItemHandle, count int) error {
	if count < 0 {
		return fmt.Errorf("remove item %d: negative count %d", h.ItemID, count)
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	s, ok := inv.stacks[h.ItemID]
	if !ok || s.count < count {
		return fmt.Errorf("%w: item %d", domain.ErrInsufficientQuantity, h.ItemID)
	}
	s.count -= count
	if s.class == domain.ClassWeapon {
		inv.used[s.class] -= count
	}
	if s.count == 0 {
		delete(inv.stacks, h.ItemID)
		if s.class != domain.ClassWeapon {
			inv.used[s.class]--
		}
	}
	return nil
}

// AddItem adds count units of a stackable material.
func (inv *Inventory) AddItem(itemID, count int) error {
	if count <= 0 {
		return nil
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	_, err := inv.add(itemID, domain.ClassMaterial, count)
	return err
}

// AddNewItem adds one copy of def. Character items unlock the character instead of taking
// a slot.
func (inv *Inventory) AddNewItem(def domain.ItemDefinition) (domain.ItemHandle, error) {
	if def.IsCharacter() {
		if inv.onCharacter == nil {
			return domain.ItemHandle{}, fmt.Errorf("character item %d: no avatar roster", def.ID)
		}
		inv.onCharacter(def)
		return domain.ItemHandle{ItemID: def.ID, Count: 1}, nil
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.add(def.ID, def.StorageClass(), 1)
}

func (inv *Inventory) add(itemID int, class domain.ItemClass, count int) (domain.ItemHandle, error) {
	s, ok := inv.stacks[itemID]
	slots := count
	if class != domain.ClassWeapon {
		slots = 0
		if !ok {
			slots = 1
		}
	}
	if !inv.fits(class, slots) {
		return domain.ItemHandle{}, fmt.Errorf("%w: %s", domain.ErrInsufficientCapacity, class)
	}
	if !ok {
		inv.nextGUID++
		s = &stack{guid: inv.nextGUID, class: class}
		inv.stacks[itemID] = s
	}
	s.count += count
	inv.used[class] += slots
	return domain.ItemHandle{GUID: s.guid, ItemID: itemID, Count: s.count}, nil
}
