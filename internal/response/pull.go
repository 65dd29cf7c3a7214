package response

import (
	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/reward"
	"github.com/xtding233/gacha-server/internal/token"
)

// Rejection reasons carried by NoOp responses.
const (
	ReasonInvalidCount     = "invalid_pull_count"
	ReasonUnknownBanner    = "unknown_banner"
	ReasonInsufficientFund = "insufficient_currency"
	ReasonInventoryFull    = "inventory_full"
	ReasonDuplicate        = "duplicate_request"
	ReasonUnknownPlayer    = "unknown_player"
)

// PullResponse is the reply to a pull. A rejected pull has Rejected set and no entries; an
// accepted pull may still have zero entries if every reward was skipped.
type PullResponse struct {
	Rejected     bool           `json:"rejected"`
	Reason       string         `json:"reason,omitempty"`
	GachaType    int            `json:"gacha_type,omitempty"`
	Times        int            `json:"times,omitempty"`
	CostItemID   int            `json:"cost_item_id,omitempty"`
	CostItemNum  int            `json:"cost_item_num,omitempty"`
	Items        []reward.Entry `json:"items"`
	LowCurrency  int            `json:"stardust"`
	HighCurrency int            `json:"starglitter"`
	Skipped      []int          `json:"skipped,omitempty"`
}

// BuildPull composes the reply for an accepted pull of times draws on b.
func BuildPull(b gacha.Banner, times int, bundle reward.Bundle) *PullResponse {
	items := bundle.Entries
	if items == nil {
		items = []reward.Entry{}
	}
	return &PullResponse{
		GachaType:    b.Type,
		Times:        times,
		CostItemID:   b.CostItemID,
		CostItemNum:  token.Token{ItemID: b.CostItemID, PerDraw: b.CostPerPull}.ForDraws(times),
		Items:        items,
		LowCurrency:  bundle.LowCurrency,
		HighCurrency: bundle.HighCurrency,
		Skipped:      bundle.Skipped,
	}
}

// NoOp is the reply for a rejected pull.
func NoOp(reason string) *PullResponse {
	return &PullResponse{Rejected: true, Reason: reason, Items: []reward.Entry{}}
}
