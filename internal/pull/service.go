package pull

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xtding233/gacha-server/internal/concurrency"
	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/logger"
	"github.com/xtding233/gacha-server/internal/metrics"
	"github.com/xtding233/gacha-server/internal/pitystore"
	"github.com/xtding233/gacha-server/internal/response"
	"github.com/xtding233/gacha-server/internal/reward"
	"github.com/xtding233/gacha-server/internal/token"
)

// Allowed draw counts.
const (
	SinglePull = 1
	MultiPull  = 10
)

// Defaults for the duplicate request cache.
const (
	DefaultDedupeTTL  = 10 * time.Minute
	DefaultDedupeSize = 10000
)

// ReasonPityUnavailable rejects a pull whose persisted pity could not be read.
const ReasonPityUnavailable = "pity_unavailable"

// Banners looks up active banners.
type Banners interface {
	Lookup(bannerType int) (gacha.Banner, bool)
}

// Players resolves a player id to its collaborators.
type Players interface {
	Lookup(playerID int64) (reward.Player, bool)
}

// Request asks for Times draws on a banner. RequestID is optional; when set, a second
// request with the same id from the same player is rejected.
type Request struct {
	PlayerID   int64
	BannerType int
	Times      int
	RequestID  string
}

// Config wires a Service.
type Config struct {
	Banners  Banners
	Players  Players
	Engine   *gacha.Engine
	Tracker  *gacha.Tracker
	Resolver *reward.Resolver
	Store    pitystore.Store // optional

	DedupeTTL  time.Duration
	DedupeSize int
}

// Service runs pulls. Everything between the count check and the grants happens under the
// player's lock, so two pulls from one player never interleave.
type Service struct {
	banners  Banners
	players  Players
	engine   *gacha.Engine
	tracker  *gacha.Tracker
	resolver *reward.Resolver
	store    pitystore.Store

	locks *concurrency.LockManager[int64]
	seen  *requestCache
}

// NewService validates cfg and creates a service.
func NewService(cfg Config) (*Service, error) {
	switch {
	case cfg.Banners == nil:
		return nil, errors.New("banners cannot be nil")
	case cfg.Players == nil:
		return nil, errors.New("players cannot be nil")
	case cfg.Engine == nil:
		return nil, errors.New("engine cannot be nil")
	case cfg.Resolver == nil:
		return nil, errors.New("resolver cannot be nil")
	}
	if cfg.Tracker == nil {
		cfg.Tracker = gacha.NewTracker()
	}
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = DefaultDedupeTTL
	}
	if cfg.DedupeSize <= 0 {
		cfg.DedupeSize = DefaultDedupeSize
	}
	return &Service{
		banners:  cfg.Banners,
		players:  cfg.Players,
		engine:   cfg.Engine,
		tracker:  cfg.Tracker,
		resolver: cfg.Resolver,
		store:    cfg.Store,
		locks:    concurrency.NewLockManager[int64](),
		seen:     newRequestCache(cfg.DedupeSize, cfg.DedupeTTL),
	}, nil
}

// outcome is what the critical section hands back.
type outcome struct {
	resp   *response.PullResponse
	err    error
	banner int
	state  gacha.PityState
	drew   bool
}

// Pull performs req. Rejections return a NoOp response; the error is nil only for an invalid
// draw count, which the client treats as a silent no-op.
func (s *Service) Pull(ctx context.Context, req Request) (*response.PullResponse, error) {
	ctx = logger.WithPlayerID(ctx, req.PlayerID)
	log := logger.FromContext(ctx)

	if req.Times != SinglePull && req.Times != MultiPull {
		metrics.PullRejections.WithLabelValues(response.ReasonInvalidCount).Inc()
		log.Debug("Ignoring pull with invalid count", "times", req.Times)
		return response.NoOp(response.ReasonInvalidCount), nil
	}

	p, ok := s.players.Lookup(req.PlayerID)
	if !ok {
		return s.reject(ctx, response.ReasonUnknownPlayer, fmt.Errorf("%w: %d", domain.ErrUnknownPlayer, req.PlayerID))
	}
	if err := s.hydrate(ctx, req.PlayerID); err != nil {
		return s.reject(ctx, ReasonPityUnavailable, err)
	}

	var out outcome
	s.locks.WithLock(req.PlayerID, func() {
		start := time.Now()
		out = s.pullLocked(ctx, p, req)
		metrics.PullDuration.Observe(time.Since(start).Seconds())
	})
	if out.err != nil {
		return s.reject(ctx, out.resp.Reason, out.err)
	}

	if out.drew {
		s.persist(ctx, req.PlayerID, out.banner, out.state)
	}
	metrics.PullsTotal.WithLabelValues(strconv.Itoa(req.BannerType), strconv.Itoa(req.Times)).Inc()
	log.Info("Pull completed", "banner", req.BannerType, "times", req.Times,
		"items", len(out.resp.Items), "skipped", len(out.resp.Skipped))
	return out.resp, nil
}

func (s *Service) pullLocked(ctx context.Context, p reward.Player, req Request) outcome {
	fail := func(reason string, err error) outcome {
		return outcome{resp: response.NoOp(reason), err: err}
	}

	if req.RequestID != "" && s.seen.Seen(req.PlayerID, req.RequestID) {
		return fail(response.ReasonDuplicate, fmt.Errorf("%w: %s", domain.ErrDuplicateRequest, req.RequestID))
	}
	if !p.Inventory.HasCapacity(domain.ClassWeapon, req.Times) {
		return fail(response.ReasonInventoryFull, fmt.Errorf("%w: need %d weapon slots", domain.ErrInsufficientCapacity, req.Times))
	}
	b, ok := s.banners.Lookup(req.BannerType)
	if !ok {
		return fail(response.ReasonUnknownBanner, fmt.Errorf("%w: %d", domain.ErrUnknownBanner, req.BannerType))
	}

	cost := token.Token{ItemID: b.CostItemID, PerDraw: b.CostPerPull}
	if need := cost.ForDraws(req.Times); need > 0 {
		h, ok := p.Inventory.GetItem(cost.ItemID)
		if !ok || h.Count < need {
			return fail(response.ReasonInsufficientFund,
				fmt.Errorf("%w: need %d of item %d, have %d", domain.ErrInsufficientCurrency, need, cost.ItemID, h.Count))
		}
		if err := p.Inventory.RemoveItem(h, need); err != nil {
			return fail(response.ReasonInsufficientFund, fmt.Errorf("deduct currency: %w", err))
		}
		metrics.CurrencySpent.WithLabelValues(strconv.Itoa(cost.ItemID)).Add(float64(need))
	}

	state := s.tracker.Get(req.PlayerID, b.Type)
	draws := make([]gacha.DrawResult, 0, req.Times)
	bannerLabel := strconv.Itoa(b.Type)
	for range req.Times {
		var d gacha.DrawResult
		d, state = s.engine.Draw(b, state)
		draws = append(draws, d)
		metrics.DrawsTotal.WithLabelValues(bannerLabel, d.Tier.String()).Inc()
	}
	s.tracker.Commit(req.PlayerID, b.Type, state)
	if req.RequestID != "" {
		s.seen.Remember(req.PlayerID, req.RequestID)
	}

	bundle := s.resolver.Resolve(ctx, p, draws)
	return outcome{
		resp:   response.BuildPull(b, req.Times, bundle),
		banner: b.Type,
		state:  state,
		drew:   true,
	}
}

func (s *Service) reject(ctx context.Context, reason string, err error) (*response.PullResponse, error) {
	metrics.PullRejections.WithLabelValues(reason).Inc()
	logger.FromContext(ctx).Info("Pull rejected", "reason", reason, "error", err)
	return response.NoOp(reason), err
}

// hydrate seeds the tracker from the store the first time a player is seen.
func (s *Service) hydrate(ctx context.Context, playerID int64) error {
	if s.store == nil || s.tracker.Known(playerID) {
		return nil
	}
	states, err := s.store.Load(ctx, playerID)
	if err != nil {
		metrics.PityPersistenceFailures.WithLabelValues(metrics.OpLoad).Inc()
		return fmt.Errorf("load pity: %w", err)
	}
	s.tracker.Seed(playerID, states)
	return nil
}

func (s *Service) persist(ctx context.Context, playerID int64, bannerType int, state gacha.PityState) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, playerID, bannerType, state); err != nil {
		metrics.PityPersistenceFailures.WithLabelValues(metrics.OpSave).Inc()
		logger.FromContext(ctx).Error("Failed to persist pity", "error", err, "banner", bannerType)
	}
}

// Pity returns the player's current pity per banner.
func (s *Service) Pity(ctx context.Context, playerID int64) (map[int]gacha.PityState, error) {
	if _, ok := s.players.Lookup(playerID); !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownPlayer, playerID)
	}
	if err := s.hydrate(ctx, playerID); err != nil {
		return nil, err
	}
	return s.tracker.Snapshot(playerID), nil
}
