package reward

import (
	"errors"

	"github.com/xtding233/gacha-server/internal/domain"
)

type fakeInventory struct {
	counts  map[int]int
	added   []domain.ItemDefinition
	failAdd map[int]bool
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{counts: map[int]int{}, failAdd: map[int]bool{}}
}

func (f *fakeInventory) HasCapacity(domain.ItemClass, int) bool { return true }

func (f *fakeInventory) GetItem(itemID int) (domain.ItemHandle, bool) {
	n, ok := f.counts[itemID]
	if !ok || n == 0 {
		return domain.ItemHandle{}, false
	}
	return domain.ItemHandle{ItemID: itemID, Count: n}, true
}

func (f *fakeInventory) RemoveItem(h domain.ItemHandle, count int) error {
	f.counts[h.ItemID] -= count
	return nil
}

func (f *fakeInventory) AddItem(itemID, count int) error {
	if f.failAdd[itemID] {
		return errors.New("storage offline")
	}
	f.counts[itemID] += count
	return nil
}

func (f *fakeInventory) AddNewItem(def domain.ItemDefinition) (domain.ItemHandle, error) {
	if f.failAdd[def.ID] {
		return domain.ItemHandle{}, errors.New("storage offline")
	}
	f.added = append(f.added, def)
	f.counts[def.ID]++
	return domain.ItemHandle{ItemID: def.ID, Count: f.counts[def.ID]}, nil
}

type fakeAvatars map[int]int // character id -> upgrade level

func (f fakeAvatars) GetOwnedCharacter(id int) (domain.CharacterHandle, bool) {
	_, ok := f[id]
	return domain.CharacterHandle{CharacterID: id}, ok
}

func (f fakeAvatars) UpgradeLevel(h domain.CharacterHandle) int { return f[h.CharacterID] }

type fakeCatalog map[int]domain.ItemDefinition

func (f fakeCatalog) Lookup(id int) (domain.ItemDefinition, bool) {
	d, ok := f[id]
	return d, ok
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		1022:  {ID: 1022, Kind: domain.KindAvatar, Rank: domain.RankTop},
		1023:  {ID: 1023, Kind: domain.KindAvatar, Rank: domain.RankMid},
		15502: {ID: 15502, Kind: domain.KindWeapon, Rank: domain.RankTop},
		11401: {ID: 11401, Kind: domain.KindWeapon, Rank: domain.RankMid},
		13303: {ID: 13303, Kind: domain.KindWeapon, Rank: domain.RankLow},
	}
}
