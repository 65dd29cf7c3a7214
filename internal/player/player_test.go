package player

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-server/internal/domain"
)

var (
	sword = domain.ItemDefinition{ID: 11401, Kind: domain.KindWeapon, Rank: domain.RankMid}
	diluc = domain.ItemDefinition{ID: 1016, Kind: domain.KindAvatar, Rank: domain.RankTop}
)

func TestInventoryStacksMaterials(t *testing.T) {
	inv := NewInventory(map[domain.ItemClass]int{domain.ClassMaterial: 1})

	require.NoError(t, inv.AddItem(223, 100))
	require.NoError(t, inv.AddItem(223, 60))
	assert.Equal(t, 160, inv.Count(223))
	assert.ErrorIs(t, inv.AddItem(224, 1), domain.ErrInsufficientCapacity)

	h, ok := inv.GetItem(223)
	require.True(t, ok)
	require.NoError(t, inv.RemoveItem(h, 160))
	_, ok = inv.GetItem(223)
	assert.False(t, ok)
	assert.NoError(t, inv.AddItem(224, 1), "emptied stack frees its slot")
}

func TestInventoryRemoveMoreThanHeld(t *testing.T) {
	inv := NewInventory(nil)
	require.NoError(t, inv.AddItem(223, 5))
	h, _ := inv.GetItem(223)

	err := inv.RemoveItem(h, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	assert.Equal(t, 5, inv.Count(223))
}

func TestInventoryWeaponSlots(t *testing.T) {
	inv := NewInventory(map[domain.ItemClass]int{domain.ClassWeapon: 2})

	assert.True(t, inv.HasCapacity(domain.ClassWeapon, 2))
	assert.False(t, inv.HasCapacity(domain.ClassWeapon, 3))
	assert.True(t, inv.HasCapacity(domain.ClassMaterial, 1000), "unlimited class")

	_, err := inv.AddNewItem(sword)
	require.NoError(t, err)
	h, err := inv.AddNewItem(sword)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Count)

	_, err = inv.AddNewItem(sword)
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.False(t, inv.HasCapacity(domain.ClassWeapon, 1))
}

func TestInventoryZeroCapacity(t *testing.T) {
	inv := NewInventory(map[domain.ItemClass]int{domain.ClassWeapon: 0})
	assert.False(t, inv.HasCapacity(domain.ClassWeapon, 1))
	assert.True(t, inv.HasCapacity(domain.ClassWeapon, 0))
}

func TestPlayerCharacterUnlock(t *testing.T) {
	p := New(7, WithItem(223, 10))

	assert.Equal(t, 10, p.Inventory.Count(223))
	_, owned := p.Avatars.GetOwnedCharacter(10000016)
	assert.False(t, owned)

	_, err := p.Inventory.AddNewItem(diluc)
	require.NoError(t, err)

	h, owned := p.Avatars.GetOwnedCharacter(10000016)
	require.True(t, owned)
	assert.Zero(t, p.Avatars.UpgradeLevel(h))
	assert.Zero(t, p.Inventory.Count(diluc.ID), "characters do not occupy inventory")

	p.Avatars.levels[10000016] = 6
	p.Avatars.Grant(10000016)
	assert.Equal(t, 6, p.Avatars.UpgradeLevel(h))
}

func TestBareInventoryRejectsCharacters(t *testing.T) {
	_, err := NewInventory(nil).AddNewItem(diluc)
	assert.Error(t, err)
}

func TestDirectory(t *testing.T) {
	d := NewDirectory(nil)
	_, ok := d.Get(1)
	assert.False(t, ok)

	d.Register(New(1))
	rp, ok := d.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), rp.ID)
}

func TestDirectoryFactoryCreatesOnce(t *testing.T) {
	created := 0
	var mu sync.Mutex
	d := NewDirectory(func(id int64) *Player {
		mu.Lock()
		created++
		mu.Unlock()
		return New(id, WithItem(223, 1600))
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, ok := d.Get(42)
			assert.True(t, ok)
			assert.Equal(t, 1600, p.Inventory.Count(223))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}
