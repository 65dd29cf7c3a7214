package domain

// ItemKind distinguishes playable characters from everything else that can be drawn.
type ItemKind string

const (
	KindAvatar   ItemKind = "avatar"
	KindWeapon   ItemKind = "weapon"
	KindMaterial ItemKind = "material"
)

// ItemClass is the inventory tab an item is stored in. Capacity is tracked per class.
type ItemClass string

const (
	ClassWeapon   ItemClass = "weapon"
	ClassMaterial ItemClass = "material"
)

// Rank levels used by the draw tiers.
const (
	RankLow = 3
	RankMid = 4
	RankTop = 5
)

// ItemDefinition is static item data keyed by item id.
type ItemDefinition struct {
	ID    int       `yaml:"id" json:"id" validate:"required,gt=0"`
	Name  string    `yaml:"name" json:"name"`
	Kind  ItemKind  `yaml:"kind" json:"kind" validate:"required,oneof=avatar weapon material"`
	Rank  int       `yaml:"rank" json:"rank" validate:"min=1,max=5"`
	Class ItemClass `yaml:"class" json:"class" validate:"omitempty,oneof=weapon material"`
}

// IsCharacter reports whether drawing the item grants a playable character.
func (d ItemDefinition) IsCharacter() bool {
	return d.Kind == KindAvatar
}

// StorageClass returns the inventory tab the item lives in.
func (d ItemDefinition) StorageClass() ItemClass {
	if d.Class != "" {
		return d.Class
	}
	if d.Kind == KindWeapon {
		return ClassWeapon
	}
	return ClassMaterial
}

// ItemHandle identifies a stack held by a player.
type ItemHandle struct {
	GUID   uint64
	ItemID int
	Count  int
}

// CharacterHandle identifies a character owned by a player.
type CharacterHandle struct {
	CharacterID int
}

// ItemParam is an (item, amount) pair as it travels on the wire.
type ItemParam struct {
	ItemID int `json:"item_id"`
	Count  int `json:"count"`
}
