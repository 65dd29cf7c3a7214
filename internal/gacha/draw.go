package gacha

import "fmt"

// Tier is the rarity of a draw. Values match item rank levels.
type Tier int

const (
	TierLow Tier = 3
	TierMid Tier = 4
	TierTop Tier = 5
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierTop:
		return "top"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// DrawResult reports one draw's outcome.
type DrawResult struct {
	ItemID        int
	Tier          Tier
	Featured      bool // drawn from the banner's rate-up pool
	LostGuarantee bool // top draw that lost the 50/50
}

// Engine resolves single draws. It holds no per-player state: everything it needs comes in
// through Draw's arguments, and the next pity state goes out through its return value.
type Engine struct {
	rng   RandomSource
	pools Pools
}

// NewEngine creates an engine over the given fallback pools. A nil rng uses DefaultRNG.
func NewEngine(pools Pools, rng RandomSource) (*Engine, error) {
	if err := pools.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pools: %w", err)
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Engine{rng: rng, pools: pools.clone()}, nil
}

// Draw performs one draw on banner b from pity state s and returns the result together with
// the state the player moves to.
//
//   - r in [1,10000]; top if r <= TopChance or the draw is the HardPity-th since the last top
//   - else mid if r >= MidThreshold or PityMid >= 9 (the tenth draw since the last mid)
//   - else low
//
// Hard pity always wins over the roll.
func (e *Engine) Draw(b Banner, s PityState) (DrawResult, PityState) {
	roll := randomRange(e.rng, 1, ChanceScale)
	next := s
	next.Revision++

	var res DrawResult
	switch {
	case roll <= TopChance(s.PityTop, b.SoftPity) || HardPityReached(s.PityTop, b.HardPity):
		res = e.drawTop(b, &next)
		next.PityMid++
		next.PityTop = 0
	case roll >= MidThreshold(s.PityMid) || s.PityMid >= MidHardPity:
		res = e.drawMid(b)
		next.PityTop++
		next.PityMid = 0
	default:
		res = DrawResult{ItemID: pick(e.rng, e.pools.LowEquipment), Tier: TierLow}
		next.PityMid++
		next.PityTop++
	}

	// Both ceilings already force a result, so clamping keeps the counters in range without
	// changing any outcome.
	next.PityMid = min(next.PityMid, MidHardPity)
	next.PityTop = min(next.PityTop, max(b.HardPity, 0))
	return res, next
}

func (e *Engine) drawTop(b Banner, next *PityState) DrawResult {
	res := DrawResult{Tier: TierTop}
	if b.HasFeaturedTop() {
		guarantee := randomRange(e.rng, 1, GuaranteeRollMax)
		if guarantee >= b.GuaranteeChance || next.GuaranteeFailures >= 1 {
			res.ItemID = pick(e.rng, b.RateUpTop)
			res.Featured = true
			next.GuaranteeFailures = 0
		} else {
			// lost the 50/50; the next top draw is featured
			next.GuaranteeFailures = 1
			res.LostGuarantee = true
		}
	}
	if res.ItemID == 0 {
		res.ItemID = e.fallback(b, e.pools.TopCharacters, e.pools.TopEquipment)
	}
	return res
}

func (e *Engine) drawMid(b Banner) DrawResult {
	res := DrawResult{Tier: TierMid}
	if b.HasFeaturedMid() {
		if randomRange(e.rng, 1, GuaranteeRollMax) >= MidFeaturedThreshold {
			res.ItemID = pick(e.rng, b.RateUpMid)
			res.Featured = true
		}
	}
	if res.ItemID == 0 {
		res.ItemID = e.fallback(b, e.pools.MidCharacters, e.pools.MidEquipment)
	}
	return res
}

// fallback splits the general pool between characters and equipment.
func (e *Engine) fallback(b Banner, characters, equipment []int) int {
	if randomRange(e.rng, b.ItemTypeMin, b.ItemTypeMax) == CharacterRoll {
		return pick(e.rng, characters)
	}
	return pick(e.rng, equipment)
}
