package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_for_sale"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/obs"
	"github.com/light-bringer/pricing-service/internal/pkg/cache"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	httphandler "github.com/light-bringer/pricing-service/internal/transport/http"
)

const cachePrefix = "pricing:pfs:"

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redis.Client
	Registry      *prometheus.Registry
	PriceHandler  *httphandler.PriceHandler
	Router        http.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Optional result cache
	var redisClient *redis.Client
	if cfg.CacheEnabled() {
		redisClient, err = newRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("result cache disabled")
			redisClient = nil
		}
	}

	opts, err := Wire(cfg, logger, repo.NewPriceRepo(spannerClient), redisClient, clock.NewRealClock())
	if err != nil {
		spannerClient.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	opts.SpannerClient = spannerClient
	return opts, nil
}

// Wire builds the query, handler and router on top of an existing repository.
// redisClient may be nil to run without the result cache.
func Wire(
	cfg *config.Config,
	logger zerolog.Logger,
	priceRepo contracts.PriceRepository,
	redisClient *redis.Client,
	clk clock.Clock,
) (*ServiceOptions, error) {
	if priceRepo == nil {
		return nil, errors.New("price repository is required")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewResolutionMetrics(cfg.MetricsNamespace, registry)

	var resultCache *cache.Cache
	if redisClient != nil {
		resultCache = cache.New(redisClient, cachePrefix, cfg.ResultCacheTTL)
	}

	query := get_price_for_sale.NewQuery(
		priceRepo,
		resultCache,
		clk,
		metrics,
		logger,
		cfg.DefaultAccompanyingPriceLists,
	)
	handler := httphandler.NewPriceHandler(query, logger)

	return &ServiceOptions{
		RedisClient:  redisClient,
		Registry:     registry,
		PriceHandler: handler,
		Router:       httphandler.NewRouter(handler, registry, logger),
	}, nil
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
