package banner

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/xtding233/gacha-server/internal/gacha"
	"github.com/xtding233/gacha-server/internal/logger"
	"github.com/xtding233/gacha-server/internal/metrics"
)

// Registry holds the active banners. Reads take a shared lock; Load swaps the whole map
// under the exclusive lock, so readers see either the old set or the new one.
type Registry struct {
	mu      sync.RWMutex
	banners map[int]gacha.Banner
	version uint64

	hooksMu  sync.Mutex
	hooks    []func()
	prepares []func([]gacha.Banner)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{banners: make(map[int]gacha.Banner)}
}

// Load replaces the registry contents with the banners read from src. Either every banner
// loads or nothing changes; failures are returned as *LoadError. BeforeSwap callbacks see the
// validated banners while Lookup still serves the previous set.
func (r *Registry) Load(ctx context.Context, src Source) error {
	log := logger.FromContext(ctx)

	banners, err := r.read(src)
	if err != nil {
		metrics.RegistryReloads.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error("Banner load failed, keeping previous banners", "source", src.Name(), "error", err)
		return err
	}

	r.hooksMu.Lock()
	prepares := slices.Clone(r.prepares)
	r.hooksMu.Unlock()
	if len(prepares) > 0 {
		incoming := sortedCopies(banners)
		for _, fn := range prepares {
			fn(incoming)
		}
	}

	r.mu.Lock()
	r.banners = banners
	r.version++
	version := r.version
	r.mu.Unlock()

	metrics.RegistryReloads.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info("Banners loaded", "source", src.Name(), "count", len(banners), "version", version)

	r.hooksMu.Lock()
	hooks := slices.Clone(r.hooks)
	r.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}

func (r *Registry) read(src Source) (map[int]gacha.Banner, error) {
	data, err := src.Read()
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	f, err := decode(data)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	banners, err := ValidateFile(f)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	return banners, nil
}

// Lookup returns a copy of the banner with the given type.
func (r *Registry) Lookup(bannerType int) (gacha.Banner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.banners[bannerType]
	if !ok {
		return gacha.Banner{}, false
	}
	return b.Clone(), true
}

// List returns copies of all banners ordered by sort id, then type.
func (r *Registry) List() []gacha.Banner {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopies(r.banners)
}

func sortedCopies(banners map[int]gacha.Banner) []gacha.Banner {
	out := make([]gacha.Banner, 0, len(banners))
	for _, b := range banners {
		out = append(out, b.Clone())
	}
	slices.SortFunc(out, func(a, b gacha.Banner) int {
		return cmp.Or(cmp.Compare(a.SortID, b.SortID), cmp.Compare(a.Type, b.Type))
	})
	return out
}

// Version increases with every successful Load.
func (r *Registry) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// BeforeSwap registers fn to receive every validated banner set just before it becomes
// visible. Anything a pull on the new banners depends on must be published here.
func (r *Registry) BeforeSwap(fn func([]gacha.Banner)) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.prepares = append(r.prepares, fn)
}

// OnReload registers fn to run after every successful Load.
func (r *Registry) OnReload(fn func()) {
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.hooks = append(r.hooks, fn)
}
