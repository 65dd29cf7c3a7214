package banner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const withDefaults = `
version: "2"
defaults:
  costItem: 223
  costPerPull: 160
  softPity: 63
  hardPity: 80
  beginTime: 1700000000
banners:
  - gachaType: 301
    rateUpItems1: [1022]
  - gachaType: 302
    softPity: 70
    costItem: 224
`

func TestDefaultsBlockFillsSilentFields(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Load(context.Background(), src(withDefaults)))

	b, ok := reg.Lookup(301)
	require.True(t, ok)
	assert.Equal(t, 223, b.CostItemID)
	assert.Equal(t, 160, b.CostPerPull)
	assert.Equal(t, 63, b.SoftPity)
	assert.Equal(t, 80, b.HardPity)
	assert.Equal(t, int64(1700000000), b.BeginTime)
	assert.Equal(t, DefaultEventChance, b.GuaranteeChance)

	w, ok := reg.Lookup(302)
	require.True(t, ok)
	assert.Equal(t, 224, w.CostItemID, "record overrides defaults")
	assert.Equal(t, 70, w.SoftPity)
	assert.Equal(t, 80, w.HardPity)
	assert.Empty(t, w.RateUpTop, "rate-up lists are never inherited")
}

func TestDefaultsAreNotShared(t *testing.T) {
	soft := 60
	f := File{
		Defaults: &Config{SoftPity: &soft},
		Banners:  []Config{{GachaType: 1}, {GachaType: 2}},
	}
	r := f.resolved()
	*r.Banners[0].SoftPity = 10
	assert.Equal(t, 60, *r.Banners[1].SoftPity)
	assert.Equal(t, 60, soft)
}

func TestDefaultsBlockIsValidatedThroughRecords(t *testing.T) {
	const bad = `
defaults:
  softPity: 95
  hardPity: 90
banners:
  - gachaType: 301
  - gachaType: 200
    softPity: 10
    hardPity: 20
`
	reg := NewRegistry()
	err := reg.Load(context.Background(), src(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "banners[0]")
	assert.NotContains(t, err.Error(), "banners[1]")
}
