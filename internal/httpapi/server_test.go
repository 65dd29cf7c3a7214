package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

const testBanners = `
banners:
  - gachaType: 301
    costItem: 223
    costPerPull: 160
    softPity: 74
    hardPity: 90
    rateUpItems1: [1022]
    rateUpItems2: [1023, 1031, 1014]
`

type testEnv struct {
	srv      *Server
	registry *banner.Registry
	players  *player.Directory
	source   *banner.BytesSource
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	src := &banner.BytesSource{Label: "test", Data: []byte(testBanners)}
	reg := banner.NewRegistry()
	require.NoError(t, reg.Load(ctx, *src))

	pools := gacha.DefaultPools()
	engine, err := gacha.NewEngine(pools, gacha.NewSeededRNG(1))
	require.NoError(t, err)
	catalog := itemdata.DefaultCatalog(pools).Extend(reg.List())

	players := player.NewDirectory(nil)
	svc, err := pull.NewService(pull.Config{
		Banners:  reg,
		Players:  players,
		Engine:   engine,
		Resolver: reward.NewResolver(catalog, reward.DefaultConversionTable()),
	})
	require.NoError(t, err)

	composer := response.NewComposer()
	reg.OnReload(composer.Invalidate)

	srv, err := NewServer(":0", Deps{
		Registry: reg,
		Composer: composer,
		Pulls:    svc,
		Reload:   func(ctx context.Context) error { return reg.Load(ctx, *src) },
	})
	require.NoError(t, err)
	return &testEnv{srv: srv, registry: reg, players: players, source: src}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, r)
	return w
}

func TestNewServerRequiresDeps(t *testing.T) {
	_, err := NewServer(":0", Deps{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/readyz", "").Code)

	env.srv.ready = func(context.Context) error { return assert.AnError }
	assert.Equal(t, http.StatusServiceUnavailable, env.do(http.MethodGet, "/readyz", "").Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)
	r := httptest.NewRequest(http.MethodGet, "/banners", nil)
	r.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, r)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestListBanners(t *testing.T) {
	w := newTestEnv(t).do(http.MethodGet, "/banners", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap response.ListingSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, response.GachaRandom, snap.GachaRandom)
	require.Len(t, snap.Banners, 1)
	assert.Equal(t, 1600, snap.Banners[0].TenCostItemNum)
}

func TestPullEndpoint(t *testing.T) {
	env := newTestEnv(t)
	p := player.New(1, player.WithItem(223, 1600))
	env.players.Register(p)

	w := env.do(http.MethodPost, "/players/1/pulls", `{"banner_type":301,"times":10,"request_id":"a"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp response.PullResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Rejected)
	assert.Len(t, resp.Items, 10)
	assert.Zero(t, p.Inventory.Count(223))

	w = env.do(http.MethodPost, "/players/1/pulls", `{"banner_type":301,"times":10,"request_id":"a"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(http.MethodGet, "/players/1/pity", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pity map[string]gacha.PityState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pity))
	assert.Equal(t, uint64(10), pity["301"].Revision)
}

func TestPullEndpointStatuses(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		reason string
	}{
		{"invalid count is a no-op", "/players/1/pulls", `{"banner_type":301,"times":3}`, http.StatusOK, response.ReasonInvalidCount},
		{"unknown banner", "/players/1/pulls", `{"banner_type":999,"times":1}`, http.StatusNotFound, response.ReasonUnknownBanner},
		{"unknown player", "/players/2/pulls", `{"banner_type":301,"times":1}`, http.StatusNotFound, response.ReasonUnknownPlayer},
		{"insufficient currency", "/players/1/pulls", `{"banner_type":301,"times":10}`, http.StatusUnprocessableEntity, response.ReasonInsufficientFund},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.players.Register(player.New(1, player.WithItem(223, 160)))

			w := env.do(http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)

			var resp response.PullResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Rejected)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}
}

func TestPullEndpointBadInput(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/players/abc/pulls", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPost, "/players/1/pulls", `{`).Code)

	w := env.do(http.MethodPost, "/players/1/pulls", `{"times":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BannerType failed required")
}

func TestPityUnknownPlayer(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, newTestEnv(t).do(http.MethodGet, "/players/9/pity", "").Code)
}

func TestAdminReload(t *testing.T) {
	env := newTestEnv(t)
	before := env.do(http.MethodGet, "/banners", "").Body.String()

	env.source.Data = []byte("banners:\n  - gachaType: 200\n    costItem: 224\n")
	w := env.do(http.MethodPost, "/admin/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":2,"banners":1}`, w.Body.String())
	assert.NotEqual(t, before, env.do(http.MethodGet, "/banners", "").Body.String(), "listing rebuilt after reload")

	env.source.Data = []byte("banners: [")
	w = env.do(http.MethodPost, "/admin/reload", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	_, ok := env.registry.Lookup(200)
	assert.True(t, ok, "failed reload keeps the previous banners")
}
