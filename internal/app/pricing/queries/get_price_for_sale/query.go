package get_price_for_sale

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/services"
	"github.com/light-bringer/pricing-service/internal/obs"
	"github.com/light-bringer/pricing-service/internal/pkg/cache"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// MomentGranularity truncates the default resolution moment so that requests
// arriving close together share cached results.
const MomentGranularity = time.Minute

// Query handles the price for sale query use case.
type Query struct {
	repo                contracts.PriceRepository
	cache               *cache.Cache
	clock               clock.Clock
	metrics             *obs.ResolutionMetrics
	logger              zerolog.Logger
	validate            *validator.Validate
	defaultAccompanying []string
}

// NewQuery creates a new price for sale query. cache and metrics may be nil.
func NewQuery(
	repo contracts.PriceRepository,
	c *cache.Cache,
	clk clock.Clock,
	metrics *obs.ResolutionMetrics,
	logger zerolog.Logger,
	defaultAccompanying []string,
) *Query {
	return &Query{
		repo:                repo,
		cache:               c,
		clock:               clk,
		metrics:             metrics,
		logger:              logger,
		validate:            validator.New(),
		defaultAccompanying: slices.Clone(defaultAccompanying),
	}
}

// Execute resolves the price for sale of an entity.
// Results are cached per entity, price set version and resolution parameters,
// so a newer price set version is never answered from an older result.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.PriceForSaleDTO, error) {
	start := time.Now()

	if err := q.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	id, err := uuid.Parse(req.EntityID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	entityID := id.String()

	moment := req.Moment
	if moment == nil {
		now := q.clock.Now().UTC().Truncate(MomentGranularity)
		moment = &now
	}
	rc := domain.NewResolutionContext(req.Currency, moment, req.PriceLists, q.defaultAccompanying)
	specs := req.specs()

	version, err := q.repo.Version(ctx, entityID)
	if err != nil {
		return nil, err
	}

	if dto, ok := q.lookup(ctx, cacheKey(entityID, version, rc, specs)); ok {
		q.metrics.ObserveDuration(outcomeOf(dto), time.Since(start))
		return dto, nil
	}

	prices, err := q.repo.GetByEntityID(ctx, entityID, rc.Currency(), fetchLists(rc, specs)...)
	if err != nil {
		return nil, err
	}

	policy := prices.InnerRecordHandling().String()
	result, err := services.NewPriceForSale(rc).ResolveWithAccompanying(prices, specs...)
	if err != nil {
		q.metrics.ObserveResolution(policy, obs.OutcomeError)
		q.metrics.ObserveDuration(obs.OutcomeError, time.Since(start))
		q.logger.Warn().Err(err).
			Str("entity_id", entityID).
			Int("set_version", prices.Version()).
			Str("policy", policy).
			Str("context", rc.Key()).
			Msg("price resolution failed")
		return nil, fmt.Errorf("resolve price for sale of %s: %w", entityID, err)
	}

	dto := toDTO(entityID, prices, rc, result, specs, q.clock.Now())
	outcome := outcomeOf(dto)
	q.metrics.ObserveResolution(policy, outcome)
	q.store(ctx, cacheKey(entityID, prices.Version(), rc, specs), dto)
	q.metrics.ObserveDuration(outcome, time.Since(start))

	return dto, nil
}

func (q *Query) lookup(ctx context.Context, key string) (*contracts.PriceForSaleDTO, bool) {
	if !q.cache.Enabled() {
		return nil, false
	}
	var dto contracts.PriceForSaleDTO
	found, err := q.cache.GetJSON(ctx, key, &dto)
	if err != nil {
		q.logger.Warn().Err(err).Str("key", key).Msg("price cache lookup failed")
		found = false
	}
	q.metrics.ObserveCache(found)
	if !found {
		return nil, false
	}
	q.logger.Debug().Str("key", key).Msg("price for sale served from cache")
	return &dto, true
}

func (q *Query) store(ctx context.Context, key string, dto *contracts.PriceForSaleDTO) {
	if err := q.cache.SetJSON(ctx, key, dto); err != nil {
		q.logger.Warn().Err(err).Str("key", key).Msg("price cache store failed")
	}
}

func cacheKey(entityID string, version int, rc *domain.ResolutionContext, specs []domain.AccompanyingPriceSpec) string {
	var b strings.Builder
	b.WriteString(entityID)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(version))
	b.WriteByte(':')
	b.WriteString(rc.Key())

	sorted := slices.Clone(specs)
	slices.SortFunc(sorted, func(a, b domain.AccompanyingPriceSpec) int { return strings.Compare(a.Name, b.Name) })
	for _, s := range sorted {
		lists := s.PriceLists
		if len(lists) == 0 {
			lists = rc.DefaultAccompanyingPriceLists()
		}
		b.WriteByte('|')
		b.WriteString(strconv.Quote(s.Name))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(strings.Join(lists, ",")))
	}
	return b.String()
}

func toDTO(
	entityID string,
	prices *domain.Prices,
	rc *domain.ResolutionContext,
	result *domain.ResolutionResult,
	specs []domain.AccompanyingPriceSpec,
	now time.Time,
) *contracts.PriceForSaleDTO {
	dto := &contracts.PriceForSaleDTO{
		EntityID:            entityID,
		SetVersion:          prices.Version(),
		InnerRecordHandling: prices.InnerRecordHandling().String(),
		Currency:            rc.Currency(),
		PriceLists:          rc.PriceLists(),
		Moment:              rc.Moment(),
		ResolvedAt:          now,
	}
	if len(specs) > 0 {
		dto.Accompanying = make(map[string]*contracts.PriceDTO, len(specs))
		for _, s := range specs {
			dto.Accompanying[s.Name] = nil
		}
	}
	if result == nil {
		return dto
	}
	dto.PriceForSale = contracts.NewPriceDTO(result.PriceForSale())
	for name, p := range result.AccompanyingPrices() {
		dto.Accompanying[name] = contracts.NewPriceDTO(p)
	}
	return dto
}

func outcomeOf(dto *contracts.PriceForSaleDTO) string {
	if dto.PriceForSale == nil {
		return obs.OutcomeEmpty
	}
	return obs.OutcomeFound
}

// IsClientError reports whether err was caused by the request rather than the data.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) || errors.Is(err, domain.ErrDuplicateAccompanyingPrice)
}
