package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtding233/gacha-server/internal/banner"
	"github.com/xtding233/gacha-server/internal/config"
	"github.com/xtding233/gacha-server/internal/domain"
	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/httpapi"
	"github.com/xtding233/gacha-server/internal/itemdata"
	"github.com/xtding233/gacha-server/internal/logger"
	"github.com/xtding233/gacha-server/internal/pitystore"
	"github.com/xtding233/gacha-server/internal/player"
	"github.com/xtding233/gacha-server/internal/pull"
	redisclient "github.com/xtding233/gacha-server/internal/redis"
	"github.com/xtding233/gacha-server/internal/response"
	"github.com/xtding233/gacha-server/internal/reward"
)

// Currency items handed to demo players.
const (
	intertwinedFate = 223
	acquaintFate    = 224
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Load banners and item data, then serve pulls over HTTP. Configuration comes from the environment and an optional .env file.`,
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, version, cfg.Environment, false))
	log := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := banner.NewRegistry()
	src := banner.FileSource{Path: cfg.BannerFile}
	if err := reg.Load(ctx, src); err != nil {
		return err
	}

	pools := gacha.DefaultPools()
	base := itemdata.DefaultCatalog(pools)
	if cfg.ItemDataFile != "" {
		fromFile, err := itemdata.Load(cfg.ItemDataFile)
		if err != nil {
			return err
		}
		base = base.Overlay(fromFile)
	}
	if missing := base.Missing(rateUpItems(reg.List())); len(missing) > 0 {
		log.Warn("Rate-up items have no item definition, deriving kind and rank", "items", missing)
	}
	catalog := newLiveCatalog(reg, base)
	log.Info("Item catalog ready", "definitions", base.Len())

	composer := response.NewComposer()
	reg.OnReload(composer.Invalidate)

	engine, err := gacha.NewEngine(pools, gacha.DefaultRNG())
	if err != nil {
		return err
	}
	table := reward.DefaultConversionTable()

	store, ready, closeStore, err := openPityStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	players := player.NewDirectory(func(id int64) *player.Player {
		return player.New(id,
			player.WithConversion(table),
			player.WithCapacity(domain.ClassWeapon, cfg.WeaponCapacity),
			player.WithItem(intertwinedFate, cfg.StartingFates),
			player.WithItem(acquaintFate, cfg.StartingFates),
		)
	})

	svc, err := pull.NewService(pull.Config{
		Banners:    reg,
		Players:    players,
		Engine:     engine,
		Tracker:    gacha.NewTracker(),
		Resolver:   reward.NewResolver(catalog, table),
		Store:      store,
		DedupeTTL:  cfg.DedupeTTL,
		DedupeSize: cfg.DedupeSize,
	})
	if err != nil {
		return err
	}

	srv, err := httpapi.NewServer(cfg.Addr(), httpapi.Deps{
		Registry: reg,
		Composer: composer,
		Pulls:    svc,
		Reload:   func(ctx context.Context) error { return reg.Load(ctx, src) },
		Ready:    ready,
	})
	if err != nil {
		return err
	}

	if cfg.ReloadInterval > 0 {
		w := banner.NewReloadWatcher(ctx, reg, cfg.BannerFile, cfg.ReloadInterval)
		w.Start(ctx)
		defer w.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal, stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// newLiveCatalog serves base plus the rate-up items of every banner set the registry has
// published. New items are added before the registry swaps, so no pull can draw an item the
// catalog does not know.
func newLiveCatalog(reg *banner.Registry, base *itemdata.Catalog) *itemdata.Live {
	live := itemdata.NewLive(base.Extend(reg.List()))
	reg.BeforeSwap(live.Grow)
	return live
}

func rateUpItems(banners []gacha.Banner) []int {
	var ids []int
	for _, b := range banners {
		ids = append(ids, b.RateUpTop...)
		ids = append(ids, b.RateUpMid...)
	}
	return ids
}

// openPityStore returns the redis store when REDIS_ADDR is set and the in-memory store
// otherwise, plus a readiness check and a close func.
func openPityStore(cfg *config.Config) (pitystore.Store, func(context.Context) error, func(), error) {
	if cfg.RedisAddr == "" {
		return pitystore.NewMemory(), nil, func() {}, nil
	}
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := pitystore.NewRedis(&pitystore.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("pity store: %w", err)
	}
	ready := func(ctx context.Context) error { return redisclient.Ping(ctx, client, time.Second) }
	return store, ready, func() { _ = client.Close() }, nil
}
