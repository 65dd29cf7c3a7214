package itemdata

import (
	"sync/atomic"

	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/gacha"
)

// characterIDLimit separates character item ids (four digits) from equipment ids.
const characterIDLimit = 10000

// Extend returns a catalog that also defines every rate-up item of banners that c does not
// already know. Kind follows the id range and rank follows the rate-up tier.
func (c *Catalog) Extend(banners []gacha.Banner) *Catalog {
	out := c.Overlay(&Catalog{})
	add := func(ids []int, rank int) {
		for _, id := range ids {
			if _, ok := out.items[id]; ok {
				continue
			}
			kind := domain.KindWeapon
			if id < characterIDLimit {
				kind = domain.KindAvatar
			}
			out.items[id] = domain.ItemDefinition{ID: id, Kind: kind, Rank: rank}
		}
	}
	for _, b := range banners {
		add(b.RateUpTop, domain.RankTop)
		add(b.RateUpMid, domain.RankMid)
	}
	return out
}

// Live is a catalog that can be replaced while lookups are in flight.
type Live struct {
	cur atomic.Pointer[Catalog]
}

// NewLive creates a live catalog serving c.
func NewLive(c *Catalog) *Live {
	l := &Live{}
	l.cur.Store(c)
	return l
}

// Grow adds definitions for the rate-up items of banners. Known ids are never dropped: a pull
// that looked up a banner before a reload may still resolve its items afterwards.
func (l *Live) Grow(banners []gacha.Banner) {
	for {
		cur := l.cur.Load()
		if l.cur.CompareAndSwap(cur, cur.Extend(banners)) {
			return
		}
	}
}

// Lookup implements reward.Catalog.
func (l *Live) Lookup(itemID int) (domain.ItemDefinition, bool) {
	return l.cur.Load().Lookup(itemID)
}
