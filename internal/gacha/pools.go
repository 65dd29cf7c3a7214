package gacha

import (
	"errors"
	"fmt"
	"slices"
)

// Pools holds the general (non-featured) item pools a draw falls back to.
type Pools struct {
	TopCharacters []int
	TopEquipment  []int
	MidCharacters []int
	MidEquipment  []int
	LowEquipment  []int
}

// DefaultPools returns the standard wish pools.
func DefaultPools() Pools {
	return Pools{
		TopCharacters: []int{1003, 1016, 1042, 1035, 1041},
		TopEquipment:  []int{11501, 11502, 12501, 12502, 13502, 13505, 14501, 14502, 15501, 15502},
		MidCharacters: []int{1006, 1014, 1015, 1020, 1021, 1023, 1024, 1025, 1027, 1031, 1032, 1034, 1036, 1039, 1043, 1044, 1045, 1048, 1053, 1055, 1056, 1064},
		MidEquipment:  []int{11401, 11402, 11403, 11405, 12401, 12402, 12403, 12405, 13401, 13407, 14401, 14402, 14403, 14409, 15401, 15402, 15403, 15405},
		LowEquipment:  []int{11301, 11302, 11306, 12301, 12302, 12305, 13303, 14301, 14302, 14304, 15301, 15302, 15304},
	}
}

// Validate rejects empty pools: a draw must always resolve to a concrete item.
func (p Pools) Validate() error {
	var errs []error
	for name, pool := range map[string][]int{
		"top characters": p.TopCharacters,
		"top equipment":  p.TopEquipment,
		"mid characters": p.MidCharacters,
		"mid equipment":  p.MidEquipment,
		"low equipment":  p.LowEquipment,
	} {
		if len(pool) == 0 {
			errs = append(errs, fmt.Errorf("%s pool is empty", name))
		}
		if slices.Contains(pool, 0) {
			errs = append(errs, fmt.Errorf("%s pool contains item id 0", name))
		}
	}
	return errors.Join(errs...)
}

func (p Pools) clone() Pools {
	return Pools{
		TopCharacters: slices.Clone(p.TopCharacters),
		TopEquipment:  slices.Clone(p.TopEquipment),
		MidCharacters: slices.Clone(p.MidCharacters),
		MidEquipment:  slices.Clone(p.MidEquipment),
		LowEquipment:  slices.Clone(p.LowEquipment),
	}
}
