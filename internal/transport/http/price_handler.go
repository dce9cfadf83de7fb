package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_for_sale"
)

// PriceForSaleQuery resolves the price for sale of an entity.
type PriceForSaleQuery interface {
	Execute(ctx context.Context, req *get_price_for_sale.Request) (*contracts.PriceForSaleDTO, error)
}

// PriceHandler serves price for sale lookups.
type PriceHandler struct {
	query  PriceForSaleQuery
	logger zerolog.Logger
}

// NewPriceHandler creates a new HTTP price handler.
func NewPriceHandler(query PriceForSaleQuery, logger zerolog.Logger) *PriceHandler {
	return &PriceHandler{query: query, logger: logger}
}

// Routes mounts the handler under r.
func (h *PriceHandler) Routes(r chi.Router) {
	r.Get("/api/v1/entities/{entityID}/price-for-sale", h.GetPriceForSale)
}

// GetPriceForSale handles
// GET /api/v1/entities/{entityID}/price-for-sale?currency=EUR&priceLists=vip,basic&moment=2024-07-01T00:00:00Z&accompanying=strike:reference|msrp
//
// accompanying may repeat; an entry without ":" uses the default accompanying price lists.
func (h *PriceHandler) GetPriceForSale(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(chi.URLParam(r, "entityID"), r)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_argument", err.Error(), nil)
		return
	}

	dto, err := h.query.Execute(r.Context(), req)
	if err != nil {
		if status, _ := statusOf(err); status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("entity_id", req.EntityID).Msg("price for sale query failed")
		}
		writeError(w, err)
		return
	}

	JSON(w, http.StatusOK, dto)
}

func parseRequest(entityID string, r *http.Request) (*get_price_for_sale.Request, error) {
	values := r.URL.Query()
	req := &get_price_for_sale.Request{
		EntityID:   strings.TrimSpace(entityID),
		Currency:   strings.ToUpper(strings.TrimSpace(values.Get("currency"))),
		PriceLists: splitList(values.Get("priceLists"), ","),
	}

	if raw := strings.TrimSpace(values.Get("moment")); raw != "" {
		moment, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("moment must be RFC 3339: %w", err)
		}
		req.Moment = &moment
	}

	for _, raw := range values["accompanying"] {
		for _, entry := range splitList(raw, ",") {
			name, lists, _ := strings.Cut(entry, ":")
			req.Accompanying = append(req.Accompanying, get_price_for_sale.AccompanyingRequest{
				Name:       strings.TrimSpace(name),
				PriceLists: splitList(lists, "|"),
			})
		}
	}

	return req, nil
}

func splitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
