package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gacha-server/internal/banner"
	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/itemdata"
	"github.com/xtding233/gacha-server/internal/player"
	"github.com/xtding233/gacha-server/internal/pull"
	"github.com/xtding233/gacha-server/internal/response"
	"github.com/xtding233/gacha-server/internal/reward"
)

func eventBannerYAML(rateUpTop int) banner.BytesSource {
	return banner.BytesSource{Label: "test", Data: []byte(fmt.Sprintf(`
banners:
  - gachaType: 301
    costItem: %d
    costPerPull: 1
    softPity: 74
    hardPity: 90
    rateUpItems1: [%d]
`, intertwinedFate, rateUpTop))}
}

func TestPullDuringReloadGrantsNewRateUpItem(t *testing.T) {
	ctx := context.Background()
	reg := banner.NewRegistry()
	require.NoError(t, reg.Load(ctx, eventBannerYAML(1022)))

	pools := gacha.DefaultPools()
	catalog := newLiveCatalog(reg, itemdata.DefaultCatalog(pools))

	engine, err := gacha.NewEngine(pools, gacha.NewSeededRNG(5))
	require.NoError(t, err)
	tracker := gacha.NewTracker()
	// next draw is forced top and owed the featured item
	tracker.Seed(1, map[int]gacha.PityState{301: {PityTop: 89, GuaranteeFailures: 1}})

	p := player.New(1, player.WithItem(intertwinedFate, 10))
	players := player.NewDirectory(nil)
	players.Register(p)

	svc, err := pull.NewService(pull.Config{
		Banners:  reg,
		Players:  players,
		Engine:   engine,
		Tracker:  tracker,
		Resolver: reward.NewResolver(catalog, reward.DefaultConversionTable()),
	})
	require.NoError(t, err)

	// the first moment the new banner set is visible to pulls
	var (
		resp    *response.PullResponse
		pullErr error
	)
	reg.OnReload(func() {
		resp, pullErr = svc.Pull(ctx, pull.Request{PlayerID: 1, BannerType: 301, Times: 1})
	})
	require.NoError(t, reg.Load(ctx, eventBannerYAML(1099)))

	require.NoError(t, pullErr)
	require.NotNil(t, resp)
	assert.Empty(t, resp.Skipped)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1099, resp.Items[0].Item.ItemID)
	assert.True(t, resp.Items[0].Featured)
	assert.True(t, resp.Items[0].IsNew)
	assert.Equal(t, 9, p.Inventory.Count(intertwinedFate))

	_, ok := catalog.Lookup(1022)
	assert.True(t, ok, "items of the previous banner set stay resolvable")
}

func TestRateUpItems(t *testing.T) {
	ids := rateUpItems([]gacha.Banner{
		{RateUpTop: []int{1022}, RateUpMid: []int{1023, 1031}},
		{RateUpTop: []int{15502}},
	})
	assert.Equal(t, []int{1022, 1023, 1031, 15502}, ids)
}
