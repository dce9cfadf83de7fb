package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_for_sale"
	"github.com/light-bringer/pricing-service/internal/obs"
)

const entityID = "3f1c1f0e-8a2b-4c63-9d0e-6f1b2a7c9e55"

type fakeQuery struct {
	dto  *contracts.PriceForSaleDTO
	err  error
	last *get_price_for_sale.Request
}

func (q *fakeQuery) Execute(_ context.Context, req *get_price_for_sale.Request) (*contracts.PriceForSaleDTO, error) {
	q.last = req
	return q.dto, q.err
}

func serve(t *testing.T, q PriceForSaleQuery, target string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(NewPriceHandler(q, zerolog.Nop()), nil, zerolog.Nop())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body struct {
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestPriceHandler_GetPriceForSale(t *testing.T) {
	path := "/api/v1/entities/" + entityID + "/price-for-sale"

	t.Run("maps query parameters", func(t *testing.T) {
		q := &fakeQuery{dto: &contracts.PriceForSaleDTO{EntityID: entityID}}

		rec := serve(t, q, path+"?currency=eur&priceLists=vip,%20basic&moment=2024-07-01T10:00:00%2B02:00"+
			"&accompanying=strike:reference|msrp&accompanying=default")

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, q.last)
		assert.Equal(t, entityID, q.last.EntityID)
		assert.Equal(t, "EUR", q.last.Currency)
		assert.Equal(t, []string{"vip", "basic"}, q.last.PriceLists)
		require.NotNil(t, q.last.Moment)
		assert.True(t, q.last.Moment.Equal(time.Date(2024, time.July, 1, 8, 0, 0, 0, time.UTC)))
		assert.Equal(t, []get_price_for_sale.AccompanyingRequest{
			{Name: "strike", PriceLists: []string{"reference", "msrp"}},
			{Name: "default"},
		}, q.last.Accompanying)
	})

	t.Run("comma separated accompanying entries", func(t *testing.T) {
		q := &fakeQuery{dto: &contracts.PriceForSaleDTO{}}

		rec := serve(t, q, path+"?currency=EUR&priceLists=vip&accompanying=a:x,b:y|z")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []get_price_for_sale.AccompanyingRequest{
			{Name: "a", PriceLists: []string{"x"}},
			{Name: "b", PriceLists: []string{"y", "z"}},
		}, q.last.Accompanying)
	})

	t.Run("nothing for sale renders null", func(t *testing.T) {
		q := &fakeQuery{dto: &contracts.PriceForSaleDTO{
			EntityID:     entityID,
			Accompanying: map[string]*contracts.PriceDTO{"strike": nil},
		}}

		rec := serve(t, q, path+"?currency=EUR&priceLists=vip")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body, "price_for_sale")
		assert.Nil(t, body["price_for_sale"])
		assert.Equal(t, map[string]any{"strike": nil}, body["accompanying"])
	})

	t.Run("bad moment is rejected before the query", func(t *testing.T) {
		q := &fakeQuery{}

		rec := serve(t, q, path+"?currency=EUR&priceLists=vip&moment=yesterday")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, q.last)
		assert.Equal(t, "invalid_argument", decodeError(t, rec).Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(t, &fakeQuery{}, "/api/v1/entities")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "not_found", decodeError(t, rec).Code)
	})
}

func TestPriceHandler_ErrorMapping(t *testing.T) {
	path := "/api/v1/entities/" + entityID + "/price-for-sale?currency=EUR&priceLists=vip"

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid request", fmt.Errorf("%w: currency", get_price_for_sale.ErrInvalidRequest), http.StatusBadRequest, "invalid_argument"},
		{"duplicate accompanying", domain.ErrDuplicateAccompanyingPrice, http.StatusBadRequest, "invalid_argument"},
		{"unknown entity", fmt.Errorf("read set: %w", domain.ErrPricesNotFetched), http.StatusNotFound, "not_found"},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict, "version_conflict"},
		{"tax mismatch", fmt.Errorf("resolve: %w", domain.ErrTaxRateMismatch), http.StatusInternalServerError, "inconsistent_prices"},
		{"unexpected", errors.New("spanner unavailable"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &fakeQuery{err: tt.err}, path)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == "internal" {
				assert.NotContains(t, body.Message, "spanner")
			}
		})
	}
}

func TestPriceHandler_ValidationThroughQuery(t *testing.T) {
	query := get_price_for_sale.NewQuery(nil, nil, nil, nil, zerolog.Nop(), nil)

	rec := serve(t, query, "/api/v1/entities/not-a-uuid/price-for-sale?currency=EUR&priceLists=vip")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_argument", decodeError(t, rec).Code)
}

func TestNewRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := obs.NewResolutionMetrics("pricing", reg)
	metrics.ObserveCache(true)

	var logs bytes.Buffer
	router := NewRouter(NewPriceHandler(&fakeQuery{err: get_price_for_sale.ErrInvalidRequest}, zerolog.Nop()), reg, zerolog.New(&logs))

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "pricing_price_resolution_cache_total")
	})

	t.Run("requests are logged with their route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/entities/"+entityID+"/price-for-sale", nil))

		assert.Contains(t, logs.String(), `"route":"/api/v1/entities/{entityID}/price-for-sale"`)
		assert.Contains(t, logs.String(), `"status":400`)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
