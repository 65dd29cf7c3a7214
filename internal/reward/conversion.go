package reward

// ConversionTable holds the item ids and amounts used to convert draws into grants.
type ConversionTable struct {
	LowCurrencyID  int // stardust
	HighCurrencyID int // starglitter

	DuplicateBase          int // owned character below max upgrade
	MaxedBase              int // owned character at max upgrade
	TopCharacterMultiplier int

	EquipmentTop int // high currency
	EquipmentMid int // high currency
	EquipmentLow int // low currency

	MaxUpgradeLevel     int
	CharacterIDBase     int
	ConstellationOffset int
}

// DefaultConversionTable returns the live-game values.
func DefaultConversionTable() ConversionTable {
	return ConversionTable{
		LowCurrencyID:          222,
		HighCurrencyID:         221,
		DuplicateBase:          2,
		MaxedBase:              5,
		TopCharacterMultiplier: 2,
		EquipmentTop:           10,
		EquipmentMid:           2,
		EquipmentLow:           15,
		MaxUpgradeLevel:        6,
		CharacterIDBase:        10000000,
		ConstellationOffset:    100,
	}
}

// CharacterID maps a character item id to the id of the character it unlocks.
func (t ConversionTable) CharacterID(itemID int) int {
	return itemID%1000 + t.CharacterIDBase
}

// ConstellationItem maps a character item id to its upgrade material.
func (t ConversionTable) ConstellationItem(itemID int) int {
	return itemID + t.ConstellationOffset
}
