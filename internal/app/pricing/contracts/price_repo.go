package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceRepository defines the read access to stored price sets.
// The service never writes prices; another system owns them.
type PriceRepository interface {
	// GetByEntityID loads the prices of the entity in one currency, tombstones included.
	// With price lists given, only prices of those lists are loaded.
	// Returns domain.ErrPricesNotFetched when the entity has no price set.
	GetByEntityID(ctx context.Context, entityID string, currency string, priceLists ...string) (*domain.Prices, error)

	// Version returns the current price set version of the entity.
	Version(ctx context.Context, entityID string) (int, error)
}
