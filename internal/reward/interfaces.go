package reward

import "github.com/xtding233/gacha-server/internal/domain"

// Inventory is the player's item storage as the resolver and pull service see it.
type Inventory interface {
	HasCapacity(class domain.ItemClass, additional int) bool
	GetItem(itemID int) (domain.ItemHandle, bool)
	RemoveItem(h domain.ItemHandle, count int) error
	AddItem(itemID, count int) error
	AddNewItem(def domain.ItemDefinition) (domain.ItemHandle, error)
}

// Avatars exposes the characters a player owns.
type Avatars interface {
	GetOwnedCharacter(characterID int) (domain.CharacterHandle, bool)
	UpgradeLevel(h domain.CharacterHandle) int
}

// Catalog looks up static item data.
type Catalog interface {
	Lookup(itemID int) (domain.ItemDefinition, bool)
}

// Player bundles the collaborators a pull acts on.
type Player struct {
	ID        int64
	Inventory Inventory
	Avatars   Avatars
}
