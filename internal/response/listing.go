package response

import (
	"slices"
	"sync"

	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/token"
)

// GachaRandom is the listing's fixed random seed field.
const GachaRandom = 12345

// TenPull is the draw count of a multi-pull.
const TenPull = 10

// Lister supplies the banners to list.
type Lister interface {
	List() []gacha.Banner
}

// BannerInfo is the public view of one banner. It never carries player state.
type BannerInfo struct {
	GachaType         int    `json:"gacha_type"`
	ScheduleID        int    `json:"schedule_id"`
	SortID            int    `json:"sort_id"`
	CostItemID        int    `json:"cost_item_id"`
	CostItemNum       int    `json:"cost_item_num"`
	TenCostItemID     int    `json:"ten_cost_item_id"`
	TenCostItemNum    int    `json:"ten_cost_item_num"`
	SoftPity          int    `json:"soft_pity"`
	HardPity          int    `json:"hard_pity"`
	RateUpTop         []int  `json:"rate_up_top"`
	RateUpMid         []int  `json:"rate_up_mid"`
	BeginTime         int64  `json:"begin_time"`
	EndTime           int64  `json:"end_time"`
	PrefabPath        string `json:"prefab_path"`
	PreviewPrefabPath string `json:"preview_prefab_path"`
	TitlePath         string `json:"title_path"`
}

// ListingSnapshot is the banner listing sent to clients. A snapshot is shared between
// callers and must not be modified.
type ListingSnapshot struct {
	GachaRandom int          `json:"gacha_random"`
	Banners     []BannerInfo `json:"banners"`
}

func bannerInfo(b gacha.Banner) BannerInfo {
	cost := token.Token{ItemID: b.CostItemID, PerDraw: b.CostPerPull}
	return BannerInfo{
		GachaType:         b.Type,
		ScheduleID:        b.ScheduleID,
		SortID:            b.SortID,
		CostItemID:        b.CostItemID,
		CostItemNum:       cost.ForDraws(1),
		TenCostItemID:     b.CostItemID,
		TenCostItemNum:    cost.ForDraws(TenPull),
		SoftPity:          b.SoftPity,
		HardPity:          b.HardPity,
		RateUpTop:         slices.Clone(b.RateUpTop),
		RateUpMid:         slices.Clone(b.RateUpMid),
		BeginTime:         b.BeginTime,
		EndTime:           b.EndTime,
		PrefabPath:        b.PrefabPath,
		PreviewPrefabPath: b.PreviewPrefabPath,
		TitlePath:         b.TitlePath,
	}
}

// Composer builds outbound payloads. The banner listing is built once and reused until
// Invalidate is called.
type Composer struct {
	mu      sync.Mutex
	listing *ListingSnapshot
}

// NewComposer creates a composer with an empty memo.
func NewComposer() *Composer {
	return &Composer{}
}

// Listing returns the memoized listing, building it from reg if needed.
func (c *Composer) Listing(reg Lister) *ListingSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listing != nil {
		return c.listing
	}
	banners := reg.List()
	snap := &ListingSnapshot{GachaRandom: GachaRandom, Banners: make([]BannerInfo, 0, len(banners))}
	for _, b := range banners {
		snap.Banners = append(snap.Banners, bannerInfo(b))
	}
	c.listing = snap
	return snap
}

// Invalidate drops the memoized listing.
func (c *Composer) Invalidate() {
	c.mu.Lock()
	c.listing = nil
	c.mu.Unlock()
}
