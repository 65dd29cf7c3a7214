package reward

import (
	"context"
	"fmt"

	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/logger"
	"github.com/xtding233/gacha-server/internal/metrics"
)

// Reasons reported on the reward inconsistency metric.
const (
	ReasonUnknownItem   = "unknown_item"
	ReasonGrantFailed   = "grant_failed"
	ReasonCurrencyGrant = "currency_grant_failed"
)

// Transfer is a conversion applied to a duplicate character.
type Transfer struct {
	Item  domain.ItemParam `json:"item"`
	IsNew bool             `json:"is_new"`
}

// Entry is one granted draw.
type Entry struct {
	Item      domain.ItemParam   `json:"item"`
	Tier      gacha.Tier         `json:"tier"`
	Featured  bool               `json:"featured"`
	IsNew     bool               `json:"is_new"`
	Transfers []Transfer         `json:"transfers,omitempty"`
	Tokens    []domain.ItemParam `json:"tokens,omitempty"`
}

// Bundle is everything a pull granted, in draw order.
type Bundle struct {
	Entries      []Entry
	LowCurrency  int
	HighCurrency int
	Skipped      []int // item ids that could not be granted
}

// Resolver turns draw results into inventory grants. It is the only component that grants
// items to a player.
type Resolver struct {
	catalog Catalog
	table   ConversionTable
}

// NewResolver creates a resolver.
func NewResolver(catalog Catalog, table ConversionTable) *Resolver {
	return &Resolver{catalog: catalog, table: table}
}

// Resolve grants every draw to p. Currency has already been deducted when this runs, so
// failures are logged and counted rather than returned.
func (r *Resolver) Resolve(ctx context.Context, p Player, draws []gacha.DrawResult) Bundle {
	log := logger.FromContext(ctx)
	bundle := Bundle{Entries: make([]Entry, 0, len(draws))}

	for _, d := range draws {
		def, ok := r.catalog.Lookup(d.ItemID)
		if !ok {
			log.Error("Reward skipped after currency deduction",
				"error", fmt.Errorf("%w: %d", domain.ErrUnknownItem, d.ItemID), "item_id", d.ItemID)
			metrics.RewardInconsistencies.WithLabelValues(ReasonUnknownItem).Inc()
			bundle.Skipped = append(bundle.Skipped, d.ItemID)
			continue
		}

		var (
			entry Entry
			err   error
		)
		if def.IsCharacter() {
			entry, err = r.character(p, def)
		} else {
			entry, err = r.equipment(p, def)
		}
		if err != nil {
			log.Error("Reward grant failed after currency deduction", "error", err, "item_id", d.ItemID)
			metrics.RewardInconsistencies.WithLabelValues(ReasonGrantFailed).Inc()
			bundle.Skipped = append(bundle.Skipped, d.ItemID)
			continue
		}
		entry.Item = domain.ItemParam{ItemID: def.ID, Count: 1}
		entry.Tier = d.Tier
		entry.Featured = d.Featured

		for _, tok := range entry.Tokens {
			switch tok.ItemID {
			case r.table.LowCurrencyID:
				bundle.LowCurrency += tok.Count
			case r.table.HighCurrencyID:
				bundle.HighCurrency += tok.Count
			}
		}
		bundle.Entries = append(bundle.Entries, entry)
	}

	r.grantCurrency(ctx, p, r.table.LowCurrencyID, bundle.LowCurrency)
	r.grantCurrency(ctx, p, r.table.HighCurrencyID, bundle.HighCurrency)
	return bundle
}

func (r *Resolver) character(p Player, def domain.ItemDefinition) (Entry, error) {
	t := r.table
	h, owned := p.Avatars.GetOwnedCharacter(t.CharacterID(def.ID))
	if !owned {
		if _, err := p.Inventory.AddNewItem(def); err != nil {
			return Entry{}, fmt.Errorf("grant character %d: %w", def.ID, err)
		}
		return Entry{IsNew: true}, nil
	}

	var entry Entry
	constItem := t.ConstellationItem(def.ID)
	level := p.Avatars.UpgradeLevel(h)
	held, hasConst := p.Inventory.GetItem(constItem)
	if hasConst {
		level += held.Count
	}

	amount := t.MaxedBase
	if level < t.MaxUpgradeLevel {
		if err := p.Inventory.AddItem(constItem, 1); err != nil {
			return Entry{}, fmt.Errorf("grant constellation %d: %w", constItem, err)
		}
		item := domain.ItemParam{ItemID: constItem, Count: 1}
		entry.Transfers = append(entry.Transfers, Transfer{Item: item, IsNew: !hasConst})
		entry.Tokens = append(entry.Tokens, item)
		amount = t.DuplicateBase
	}
	if def.Rank == domain.RankTop {
		amount *= t.TopCharacterMultiplier
	}

	currency := domain.ItemParam{ItemID: t.HighCurrencyID, Count: amount}
	entry.Transfers = append(entry.Transfers, Transfer{Item: currency})
	entry.Tokens = append(entry.Tokens, currency)
	return entry, nil
}

func (r *Resolver) equipment(p Player, def domain.ItemDefinition) (Entry, error) {
	_, held := p.Inventory.GetItem(def.ID)
	if _, err := p.Inventory.AddNewItem(def); err != nil {
		return Entry{}, fmt.Errorf("grant item %d: %w", def.ID, err)
	}
	entry := Entry{IsNew: !held}

	t := r.table
	switch def.Rank {
	case domain.RankTop:
		entry.Tokens = append(entry.Tokens, domain.ItemParam{ItemID: t.HighCurrencyID, Count: t.EquipmentTop})
	case domain.RankMid:
		entry.Tokens = append(entry.Tokens, domain.ItemParam{ItemID: t.HighCurrencyID, Count: t.EquipmentMid})
	case domain.RankLow:
		entry.Tokens = append(entry.Tokens, domain.ItemParam{ItemID: t.LowCurrencyID, Count: t.EquipmentLow})
	}
	return entry, nil
}

func (r *Resolver) grantCurrency(ctx context.Context, p Player, itemID, amount int) {
	if amount <= 0 {
		return
	}
	if err := p.Inventory.AddItem(itemID, amount); err != nil {
		logger.FromContext(ctx).Error("Currency grant failed after currency deduction",
			"error", err, "item_id", itemID, "amount", amount)
		metrics.RewardInconsistencies.WithLabelValues(ReasonCurrencyGrant).Inc()
	}
}
