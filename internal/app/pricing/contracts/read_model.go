package contracts

import (
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceDTO is a data transfer object for one resolved price.
// Amounts are decimal strings so no precision is lost in JSON.
type PriceDTO struct {
	PriceID         int               `json:"price_id"`
	PriceList       string            `json:"price_list"`
	Currency        string            `json:"currency"`
	InnerRecordID   *int              `json:"inner_record_id,omitempty"`
	PriceWithoutTax string            `json:"price_without_tax"`
	TaxRate         string            `json:"tax_rate"`
	PriceWithTax    string            `json:"price_with_tax"`
	ValidFrom       *time.Time        `json:"valid_from,omitempty"`
	ValidTo         *time.Time        `json:"valid_to,omitempty"`
	Indexed         bool              `json:"indexed"`
	Version         int               `json:"version"`
	Components      map[int]*PriceDTO `json:"components,omitempty"`
}

// PriceForSaleDTO is the read model returned for a price for sale query.
// A nil PriceForSale means nothing is for sale; accompanying names that
// matched nothing are present with a nil value.
type PriceForSaleDTO struct {
	EntityID            string               `json:"entity_id"`
	SetVersion          int                  `json:"set_version"`
	InnerRecordHandling string               `json:"inner_record_handling"`
	Currency            string               `json:"currency"`
	PriceLists          []string             `json:"price_lists"`
	Moment              *time.Time           `json:"moment,omitempty"`
	PriceForSale        *PriceDTO            `json:"price_for_sale"`
	Accompanying        map[string]*PriceDTO `json:"accompanying,omitempty"`
	ResolvedAt          time.Time            `json:"resolved_at"`
}

// NewPriceDTO maps a domain price, nil for nil.
func NewPriceDTO(p *domain.Price) *PriceDTO {
	if p == nil {
		return nil
	}
	dto := &PriceDTO{
		PriceID:         p.PriceID(),
		PriceList:       p.PriceList(),
		Currency:        p.Currency(),
		PriceWithoutTax: p.PriceWithoutTax().String(),
		TaxRate:         p.TaxRate().String(),
		PriceWithTax:    p.PriceWithTax().String(),
		Indexed:         p.Indexed(),
		Version:         p.Version(),
	}
	if p.HasInnerRecord() {
		id := p.InnerRecordID()
		dto.InnerRecordID = &id
	}
	if v := p.Validity(); v != nil {
		if from := v.From(); !from.IsZero() {
			dto.ValidFrom = &from
		}
		if to := v.To(); !to.IsZero() {
			dto.ValidTo = &to
		}
	}
	if components := p.Components(); components != nil {
		dto.Components = make(map[int]*PriceDTO, len(components))
		for id, c := range components {
			dto.Components[id] = NewPriceDTO(c)
		}
	}
	return dto
}
