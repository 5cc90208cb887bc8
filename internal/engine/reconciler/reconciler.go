package reconciler

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"go.trai.ch/expressx/internal/core/domain"
	"go.trai.ch/expressx/internal/core/ports"
)

// ValidationResult summarizes a startup validation.
type ValidationResult struct {
	Valid   int
	Updated int
	Removed int
}

// Changed reports whether validation modified the cache.
func (r ValidationResult) Changed() bool {
	return r.Updated > 0 || r.Removed > 0
}

// Reconciler owns the live cache of one dev session. It gathers observations
// for watch events, applies them and executes the resulting effects.
type Reconciler struct {
	store    ports.CacheStore
	probe    ports.FileProbe
	detector ports.DecoratorDetector
	hasher   ports.Hasher
	restarts ports.RestartScheduler
	logger   ports.Logger
	tracking domain.TrackingConfig

	cfg         *domain.ProjectConfig
	env         domain.Environment
	cacheSettle time.Duration

	mu          sync.Mutex
	cache       *domain.DecoratorCache
	reloadTimer *time.Timer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithCacheSettle sets the delay between an external change of the cache
// file and its reload.
func WithCacheSettle(d time.Duration) Option {
	return func(r *Reconciler) {
		r.cacheSettle = d
	}
}

// NewReconciler creates a Reconciler maintaining cache for the project cfg.
// The cache's environment selects the file location used for persistence.
func NewReconciler(
	store ports.CacheStore,
	probe ports.FileProbe,
	detector ports.DecoratorDetector,
	hasher ports.Hasher,
	restarts ports.RestartScheduler,
	logger ports.Logger,
	tracking domain.TrackingConfig,
	cfg *domain.ProjectConfig,
	cache *domain.DecoratorCache,
	opts ...Option,
) *Reconciler {
	r := &Reconciler{
		store:       store,
		probe:       probe,
		detector:    detector,
		hasher:      hasher,
		restarts:    restarts,
		logger:      logger,
		tracking:    tracking,
		cfg:         cfg,
		env:         cache.Environment,
		cache:       cache,
		cacheSettle: domain.DefaultCacheSettle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the live cache. The pointer stays the same for the whole
// session; callers must not read it concurrently with event handling.
func (r *Reconciler) Cache() *domain.DecoratorCache {
	return r.cache
}

// Snapshot returns a copy of the live cache.
func (r *Reconciler) Snapshot() *domain.DecoratorCache {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Clone()
}

// CacheFile returns the path of the cache file backing the live cache.
func (r *Reconciler) CacheFile() string {
	return r.store.ResolvePath(r.cfg, r.env)
}

// Validate checks every entry against the file system. Entries whose
// modification time and size both match are kept without reading the file.
// Others are re-inspected and either refreshed or dropped. A modified cache
// is persisted.
func (r *Reconciler) Validate() (ValidationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res ValidationResult
	entries := make([]domain.CacheEntry, 0, len(r.cache.Entries))

	for _, entry := range r.cache.Entries {
		next, ok := r.revalidate(entry)
		switch {
		case !ok:
			res.Removed++
		case next != entry:
			res.Updated++
			entries = append(entries, next)
		default:
			res.Valid++
			entries = append(entries, next)
		}
	}

	if !res.Changed() {
		return res, nil
	}

	r.cache.Entries = entries
	r.cache.Touch()
	return res, r.store.Save(r.cfg, r.cache)
}

// revalidate returns the current form of entry, or false when the file is
// gone or no longer declares decorators.
func (r *Reconciler) revalidate(entry domain.CacheEntry) (domain.CacheEntry, bool) {
	abs := r.cfg.AbsPath(entry.Path)

	meta, err := r.probe.Stat(abs)
	if err != nil {
		return entry, false
	}
	if meta.ModTime == entry.ModTime && meta.Size == entry.Size {
		return entry, true
	}

	content, err := r.probe.ReadFile(abs)
	if err != nil || !r.detector.HasDecorators(content) {
		return entry, false
	}

	entry.ModTime = meta.ModTime
	entry.Size = meta.Size
	if r.tracking.ContentHash() {
		entry.Hash = r.hasher.HashDecorators(content)
	}
	return entry, true
}

// HandleEvent applies a source file event to the live cache, persists the
// cache when it changed and then requests a debounced restart. Persistence
// failures are logged and do not stop the session.
func (r *Reconciler) HandleEvent(ev domain.FileEvent) Decision {
	rel, err := r.cfg.RelPath(ev.Path)
	if err != nil {
		rel = ev.Path
	}

	obs := r.observe(ev, rel)

	r.mu.Lock()
	decision := Apply(r.cache, ev, obs)
	if decision.Change != ChangeNone {
		r.cache.Replace(decision.Cache)
		decision.Cache = r.cache
	}
	if decision.Has(EffectPersist) {
		if err := r.store.Save(r.cfg, r.cache); err != nil {
			r.logger.Error(err)
		}
	}
	r.mu.Unlock()

	if decision.Change != ChangeNone {
		r.logger.Info(fmt.Sprintf("Decorator file %s: %s", decision.Change, rel))
	}

	if decision.Has(EffectRestart) {
		r.restarts.ScheduleRestart(fmt.Sprintf("%s %s", rel, ev.Kind))
	}

	return decision
}

// observe gathers the state of the event's file. Read and stat failures are
// reported as a missing file.
func (r *Reconciler) observe(ev domain.FileEvent, rel string) Observation {
	obs := Observation{Path: rel}
	if ev.Kind == domain.EventDeleted {
		return obs
	}

	content, err := r.probe.ReadFile(ev.Path)
	if err != nil {
		return obs
	}
	meta, err := r.probe.Stat(ev.Path)
	if err != nil {
		return obs
	}

	obs.Found = true
	obs.Meta = meta
	obs.Decorated = r.detector.HasDecorators(content)
	if obs.Decorated && r.tracking.ContentHash() {
		obs.Hash = r.hasher.HashDecorators(content)
	}
	return obs
}

// HandleCacheFileEvent reacts to external changes of the cache file. A
// deletion empties the live cache in place. A creation or change reloads the
// file once it has been quiet for the settle delay.
func (r *Reconciler) HandleCacheFileEvent(ev domain.FileEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reloadTimer != nil {
		r.reloadTimer.Stop()
		r.reloadTimer = nil
	}

	if ev.Kind == domain.EventDeleted {
		r.cache.Reset()
		r.logger.Warn("Decorator cache was deleted, tracking starts from an empty index")
		return
	}

	r.reloadTimer = time.AfterFunc(r.cacheSettle, r.reload)
}

func (r *Reconciler) reload() {
	loaded, err := r.store.Load(r.cfg, r.env)
	if err != nil {
		r.logger.Error(err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloadTimer = nil
	if loaded == nil {
		return
	}
	loaded.Environment = r.env
	// Our own saves come back through the watcher; only report foreign edits.
	external := !slices.Equal(loaded.Entries, r.cache.Entries)
	r.cache.Replace(loaded)
	if external {
		r.logger.Info(fmt.Sprintf("Decorator cache reloaded from disk (%d files)", len(r.cache.Entries)))
	}
}

// Close cancels a pending reload.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reloadTimer != nil {
		r.reloadTimer.Stop()
		r.reloadTimer = nil
	}
}
