package gacha

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateBanner checks the invariants the draw engine relies on.
func ValidateBanner(b Banner) error {
	var errs []string

	if b.SoftPity < 2 {
		errs = append(errs, "soft pity must be >= 2")
	}
	if b.SoftPity >= b.HardPity {
		errs = append(errs, "soft pity must be < hard pity")
	}
	if b.CostPerPull < 0 {
		errs = append(errs, "cost per pull must be >= 0")
	}
	if b.CostItemID < 0 {
		errs = append(errs, "cost item must be >= 0")
	}
	if b.GuaranteeChance < 0 || b.GuaranteeChance > GuaranteeRollMax {
		errs = append(errs, fmt.Sprintf("guarantee chance must be in [0,%d]", GuaranteeRollMax))
	}
	if b.ItemTypeMin > b.ItemTypeMax {
		errs = append(errs, "item type min must be <= item type max")
	}
	if slices.Contains(b.RateUpTop, 0) || slices.Contains(b.RateUpMid, 0) {
		errs = append(errs, "rate-up pools must not contain item id 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("banner %d: %s", b.Type, strings.Join(errs, "; "))
	}
	return nil
}
