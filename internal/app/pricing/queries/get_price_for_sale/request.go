package get_price_for_sale

import (
	"errors"
	"slices"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// ErrInvalidRequest is returned when a request fails validation.
var ErrInvalidRequest = errors.New("invalid price for sale request")

// Request contains the parameters of a price for sale query.
type Request struct {
	EntityID   string   `validate:"required,uuid"`
	Currency   string   `validate:"required,len=3,alpha,uppercase"`
	PriceLists []string `validate:"required,min=1,dive,required"`
	// Moment defaults to the current time, truncated to MomentGranularity.
	Moment       *time.Time
	Accompanying []AccompanyingRequest `validate:"unique=Name,dive"`
}

// AccompanyingRequest names an accompanying price. Empty PriceLists select the
// configured default accompanying price lists.
type AccompanyingRequest struct {
	Name       string   `validate:"required"`
	PriceLists []string `validate:"dive,required"`
}

func (r *Request) specs() []domain.AccompanyingPriceSpec {
	specs := make([]domain.AccompanyingPriceSpec, 0, len(r.Accompanying))
	for _, a := range r.Accompanying {
		specs = append(specs, domain.NewAccompanyingPriceSpec(a.Name, a.PriceLists...))
	}
	return specs
}

// fetchLists is every price list the resolution may look at.
func fetchLists(rc *domain.ResolutionContext, specs []domain.AccompanyingPriceSpec) []string {
	lists := rc.PriceLists()
	for _, s := range specs {
		if len(s.PriceLists) == 0 {
			lists = append(lists, rc.DefaultAccompanyingPriceLists()...)
			continue
		}
		lists = append(lists, s.PriceLists...)
	}
	slices.Sort(lists)
	return slices.Compact(lists)
}
