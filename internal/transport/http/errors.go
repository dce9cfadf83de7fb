package http

import (
	"errors"
	"net/http"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_price_for_sale"
)

// statusOf maps application errors to an HTTP status and error code.
func statusOf(err error) (int, string) {
	switch {
	case get_price_for_sale.IsClientError(err),
		errors.Is(err, domain.ErrInvalidPriceKey),
		errors.Is(err, domain.ErrInvalidValidity):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrPricesNotFetched),
		errors.Is(err, domain.ErrPriceNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "version_conflict"
	case errors.Is(err, domain.ErrInnerRecordHandlingUnknown),
		errors.Is(err, domain.ErrTaxRateMismatch):
		return http.StatusInternalServerError, "inconsistent_prices"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError renders err; internal failures hide their message.
func writeError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	message := err.Error()
	if code == "internal" {
		message = "internal server error"
	}
	JSONError(w, status, code, message, nil)
}
