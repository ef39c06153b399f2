// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/wbdash/internal/adapters/cache"
	"github.com/okian/wbdash/internal/adapters/worldbank"
	"github.com/okian/wbdash/internal/domain/assemble"
	"github.com/okian/wbdash/internal/domain/catalog"
	"github.com/okian/wbdash/internal/domain/composite"
	"github.com/okian/wbdash/internal/domain/derived"
	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/internal/domain/profile"
	"github.com/okian/wbdash/pkg/logger"
	"github.com/okian/wbdash/pkg/metrics"
)

// Service implements the API dependencies for the indicator dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   *catalog.Catalog
	upstream  model.Fetcher
	fetcher   model.Fetcher
	store     cache.Store
	janitor   *cache.Janitor
	engine    *composite.Engine
	assembler *assemble.Assembler
	profiler  *profile.Profiler
	models    *modelMemo

	// Configuration
	baseURL         string
	fetchTimeout    time.Duration
	perPage         int
	maxPages        int
	cacheTTL        time.Duration
	cacheMaxEntries int
	cachePath       string
	purgeSchedule   string
	minYear         int
	maxYear         int
	defaultLocale   model.Locale

	// State
	started   bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorldBank configures the upstream client.
func WithWorldBank(baseURL string, timeout time.Duration, perPage, maxPages int) Option {
	return func(s *Service) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
		if perPage > 0 {
			s.perPage = perPage
		}
		if maxPages > 0 {
			s.maxPages = maxPages
		}
	}
}

// WithFetcher replaces the upstream client, e.g. with a stub in tests.
// The fetch cache and derived indicators still wrap it.
func WithFetcher(f model.Fetcher) Option {
	return func(s *Service) {
		s.upstream = f
	}
}

// WithCache configures the fetch cache. An empty path keeps it in memory.
func WithCache(ttl time.Duration, maxEntries int, path, purgeSchedule string) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
		s.cacheMaxEntries = maxEntries
		s.cachePath = path
		if purgeSchedule != "" {
			s.purgeSchedule = purgeSchedule
		}
	}
}

// WithYearWindow bounds every requested span.
func WithYearWindow(minYear, maxYear int) Option {
	return func(s *Service) {
		if minYear > 0 && maxYear >= minYear {
			s.minYear = minYear
			s.maxYear = maxYear
		}
	}
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(l string) Option {
	return func(s *Service) {
		s.defaultLocale = model.ParseLocale(l, s.defaultLocale)
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:         catalog.New(),
		baseURL:         worldbank.DefaultBaseURL,
		fetchTimeout:    worldbank.DefaultTimeout,
		perPage:         worldbank.DefaultPerPage,
		maxPages:        worldbank.DefaultMaxPages,
		cacheTTL:        cache.DefaultTTL,
		cacheMaxEntries: 4096,
		purgeSchedule:   "@every 10m",
		minYear:         2000,
		maxYear:         2023,
		defaultLocale:   model.LocaleJA,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the cache, the upstream client and the domain engines.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting indicator service...")

	if s.cachePath != "" {
		st, err := cache.OpenSQLite(ctx, s.cachePath, s.cacheTTL)
		if err != nil {
			return fmt.Errorf("start service: %w", err)
		}
		s.store = st
		s.logger.Info(ctx, "using sqlite fetch cache", logger.String("path", s.cachePath))
	} else {
		s.store = cache.NewMemoryStore(cache.WithTTL(s.cacheTTL), cache.WithMaxEntries(s.cacheMaxEntries))
		s.logger.Info(ctx, "using in-memory fetch cache", logger.Int("maxEntries", s.cacheMaxEntries))
	}

	janitor, err := cache.NewJanitor(s.store, s.purgeSchedule, s.logger.Named("cache"))
	if err != nil {
		_ = s.store.Close()
		return fmt.Errorf("start service: cache purge schedule %q: %w", s.purgeSchedule, err)
	}
	s.janitor = janitor
	s.janitor.Start()

	upstream := s.upstream
	if upstream == nil {
		upstream = worldbank.New(
			worldbank.WithBaseURL(s.baseURL),
			worldbank.WithTimeout(s.fetchTimeout),
			worldbank.WithPerPage(s.perPage),
			worldbank.WithMaxPages(s.maxPages),
			worldbank.WithLogger(s.logger.Named("worldbank")),
		)
	}
	s.fetcher = derived.New(cache.NewReadThrough(upstream, s.store, s.logger.Named("cache")))

	s.engine = composite.New(s.fetcher,
		composite.WithNamer(s.catalog),
		composite.WithLogger(s.logger.Named("composite")),
	)
	s.assembler = assemble.New(s.fetcher)
	s.profiler = profile.New(s.fetcher, s.catalog)
	s.models = newModelMemo(s.cacheTTL, defaultMemoEntries)

	s.started = true
	s.startedAt = time.Now()
	metrics.UpdateCacheEntries(s.store.Len())
	s.logger.Info(ctx, "indicator service started",
		logger.String("baseURL", s.baseURL),
		logger.Duration("fetchTimeout", s.fetchTimeout),
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Int("minYear", s.minYear),
		logger.Int("maxYear", s.maxYear),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping indicator service...")

	if s.janitor != nil {
		s.janitor.Stop()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing fetch cache failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "indicator service stopped")
}

// Catalog exposes the static catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// RequestConfig validates the locale and span of one request. Zero years
// default to the configured window.
func (s *Service) RequestConfig(lang string, start, end int) (model.RequestConfig, error) {
	if start == 0 {
		start = s.minYear
	}
	if end == 0 {
		end = s.maxYear
	}
	cfg, err := model.NewRequestConfig(model.ParseLocale(lang, s.defaultLocale), model.Span{Start: start, End: end}, s.minYear, s.maxYear)
	if err != nil {
		return model.RequestConfig{}, fmt.Errorf("%w: %w", model.ErrBadRequest, err)
	}
	return cfg, nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"baseURL":       s.baseURL,
		"cacheBackend":  "memory",
		"cacheTTL":      s.cacheTTL.String(),
		"minYear":       s.minYear,
		"maxYear":       s.maxYear,
		"defaultLocale": string(s.defaultLocale),
	}
	if s.cachePath != "" {
		stats["cacheBackend"] = "sqlite"
	}

	if s.started {
		entries := s.store.Len()
		stats["cacheEntries"] = entries
		stats["trainedModels"] = s.models.Len()
		stats["uptime"] = time.Since(s.startedAt).Round(time.Second).String()

		// Update metrics
		metrics.UpdateCacheEntries(entries)
	}

	return stats
}
