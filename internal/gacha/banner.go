package gacha

import "slices"

// Banner is the immutable configuration of one drawable pool. Banners are owned by the
// registry and never modified after load; copies handed out share the rate-up slices.
type Banner struct {
	Type        int
	CostItemID  int
	CostPerPull int

	SoftPity int // top chance starts climbing steeply from here
	HardPity int // top result forced once PityTop reaches this

	RateUpTop []int // featured top-rarity items; empty means none
	RateUpMid []int // featured mid-rarity items; empty means none

	GuaranteeChance int // a top draw goes featured when the [1,100] roll is >= this

	ItemTypeMin int // fallback sub-pool roll range; 1 picks characters
	ItemTypeMax int

	// listing metadata
	ScheduleID        int
	SortID            int
	PrefabPath        string
	PreviewPrefabPath string
	TitlePath         string
	BeginTime         int64
	EndTime           int64
}

// HasFeaturedTop reports whether top draws go through the 50/50.
func (b Banner) HasFeaturedTop() bool { return len(b.RateUpTop) > 0 }

// HasFeaturedMid reports whether mid draws can hit the featured pool.
func (b Banner) HasFeaturedMid() bool { return len(b.RateUpMid) > 0 }

// Clone returns a deep copy so the registry can hand out values without aliasing its own.
func (b Banner) Clone() Banner {
	b.RateUpTop = slices.Clone(b.RateUpTop)
	b.RateUpMid = slices.Clone(b.RateUpMid)
	return b
}

// Equal compares two banners by value. Nil and empty rate-up pools are equal.
func (b Banner) Equal(o Banner) bool {
	return b.Type == o.Type &&
		b.CostItemID == o.CostItemID &&
		b.CostPerPull == o.CostPerPull &&
		b.SoftPity == o.SoftPity &&
		b.HardPity == o.HardPity &&
		b.GuaranteeChance == o.GuaranteeChance &&
		b.ItemTypeMin == o.ItemTypeMin &&
		b.ItemTypeMax == o.ItemTypeMax &&
		b.ScheduleID == o.ScheduleID &&
		b.SortID == o.SortID &&
		b.PrefabPath == o.PrefabPath &&
		b.PreviewPrefabPath == o.PreviewPrefabPath &&
		b.TitlePath == o.TitlePath &&
		b.BeginTime == o.BeginTime &&
		b.EndTime == o.EndTime &&
		slices.Equal(b.RateUpTop, o.RateUpTop) &&
		slices.Equal(b.RateUpMid, o.RateUpMid)
}
