package gacha

import "math"

// Draw-rate curve constants. Chances are expressed in parts per ChanceScale and must stay
// exactly as they are: the rates players observe are derived from them.
const (
	ChanceScale = 10000

	BaseTopChance = 60  // top-tier chance at zero pity
	TopRampScale  = 100 // linear ramp towards soft pity
	SoftPityStep  = 100 // extra chance per draw past soft pity

	BaseMidChance  = 510
	MidRampScale   = 790
	MidRampDivisor = 8
	MidHardPity    = 9 // PityMid at which a mid-or-better result is forced

	GuaranteeRollMax     = 100
	MidFeaturedThreshold = 50 // mid-tier featured pool wins on a roll >= 50

	// A fallback roll equal to CharacterRoll selects the character sub-pool.
	CharacterRoll = 1
)

// TopChance returns the top-tier threshold for the given top pity: a roll r in
// [1, ChanceScale] with r <= TopChance is a top result.
func TopChance(pityTop, softPity int) int {
	bonus := 0
	if pityTop >= softPity {
		bonus = SoftPityStep * (pityTop - softPity - 1)
	}
	ramp := int(math.Floor(TopRampScale * (float64(pityTop) / (float64(softPity) - 1))))
	return BaseTopChance + ramp + bonus
}

// MidThreshold returns the mid-tier threshold for the given mid pity: a roll r with
// r >= MidThreshold is a mid result (when it is not a top result).
func MidThreshold(pityMid int) int {
	// float32 on purpose, the curve was defined in single precision
	ramp := int(math.Floor(float64(float32(MidRampScale) * (float32(pityMid) / float32(MidRampDivisor)))))
	return ChanceScale - (BaseMidChance + ramp)
}

// HardPityReached reports whether the next draw is the hardPity-th draw since the last top
// result. PityTop counts the draws before it, so pity 89 on a 90 hard pity banner is forced,
// the same way PityMid 9 forces the tenth draw.
func HardPityReached(pityTop, hardPity int) bool {
	return pityTop+1 >= hardPity
}
