package repo

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// PriceRepo implements PriceRepository for Spanner.
type PriceRepo struct {
	client *spanner.Client
}

// NewPriceRepo creates a new PriceRepo.
func NewPriceRepo(client *spanner.Client) contracts.PriceRepository {
	return &PriceRepo{client: client}
}

// GetByEntityID reads the price set and its prices from one snapshot, so the
// version always matches the rows. Passing price lists narrows the rows read to
// those lists; prices outside them can never be resolved.
func (r *PriceRepo) GetByEntityID(ctx context.Context, entityID string, currency string, priceLists ...string) (*domain.Prices, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	set, err := readSet(ctx, txn, entityID)
	if err != nil {
		return nil, err
	}

	iter := txn.Query(ctx, pricesStatement(entityID, currency, priceLists))
	defer iter.Stop()

	rows := make([]*m_price.Data, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate prices: %w", err)
		}

		var data m_price.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}
		rows = append(rows, &data)
	}

	return dataToDomain(set, rows)
}

// Version reads only the price set version.
func (r *PriceRepo) Version(ctx context.Context, entityID string) (int, error) {
	row, err := r.client.Single().ReadRow(ctx, m_price.SetsTableName, spanner.Key{entityID}, []string{m_price.Version})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return 0, fmt.Errorf("entity %s: %w", entityID, domain.ErrPricesNotFetched)
		}
		return 0, fmt.Errorf("failed to read price set version: %w", err)
	}

	var version int64
	if err := row.Column(0, &version); err != nil {
		return 0, fmt.Errorf("failed to parse price set version: %w", err)
	}
	return int(version), nil
}

func readSet(ctx context.Context, txn *spanner.ReadOnlyTransaction, entityID string) (*m_price.SetData, error) {
	row, err := txn.ReadRow(ctx, m_price.SetsTableName, spanner.Key{entityID}, m_price.SetColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, fmt.Errorf("entity %s: %w", entityID, domain.ErrPricesNotFetched)
		}
		return nil, fmt.Errorf("failed to read price set: %w", err)
	}

	var set m_price.SetData
	if err := row.ToStruct(&set); err != nil {
		return nil, fmt.Errorf("failed to parse price set: %w", err)
	}
	return &set, nil
}

func pricesStatement(entityID, currency string, priceLists []string) spanner.Statement {
	q := query.From(m_price.TableName).
		Select(m_price.Columns()...).
		Where(query.Eq(m_price.EntityID, entityID))
	if currency != "" {
		q = q.Where(query.Eq(m_price.Currency, currency))
	}
	if len(priceLists) > 0 {
		q = q.Where(query.In(m_price.PriceList, priceLists))
	}
	return q.OrderBy(m_price.PriceID, query.Asc).
		OrderBy(m_price.PriceList, query.Asc).
		Build()
}

// dataToDomain converts a price set row and its price rows to a domain snapshot.
func dataToDomain(set *m_price.SetData, rows []*m_price.Data) (*domain.Prices, error) {
	handling, err := domain.ParseInnerRecordHandling(set.InnerRecordHandling)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", set.EntityID, err)
	}

	prices := make([]*domain.Price, 0, len(rows))
	for _, data := range rows {
		p, err := priceToDomain(data)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", set.EntityID, err)
		}
		prices = append(prices, p)
	}

	return domain.ReconstructPrices(int(set.Version), handling, prices), nil
}

func priceToDomain(data *m_price.Data) (*domain.Price, error) {
	key, err := domain.NewPriceKey(int(data.PriceID), data.PriceList, data.Currency)
	if err != nil {
		return nil, err
	}

	value := domain.PriceValue{
		PriceWithoutTax: domain.NewMoneyFromDecimal(ratToDecimal(&data.PriceWithoutTax)),
		TaxRate:         ratToDecimal(&data.TaxRate),
		PriceWithTax:    domain.NewMoneyFromDecimal(ratToDecimal(&data.PriceWithTax)),
		Indexed:         data.Indexed,
	}
	if data.InnerRecordID.Valid {
		value.InnerRecordID = int(data.InnerRecordID.Int64)
	}
	if data.ValidFrom.Valid || data.ValidTo.Valid {
		var from, to time.Time
		if data.ValidFrom.Valid {
			from = data.ValidFrom.Time
		}
		if data.ValidTo.Valid {
			to = data.ValidTo.Time
		}
		validity, err := domain.NewValidity(from, to)
		if err != nil {
			return nil, fmt.Errorf("price %s: %w", key, err)
		}
		value.Validity = validity
	}

	return domain.ReconstructPrice(key, value, int(data.Version), data.Dropped), nil
}

// ratToDecimal converts a NUMERIC column; Spanner NUMERIC carries at most 9 fractional digits.
func ratToDecimal(r *big.Rat) decimal.Decimal {
	return decimal.RequireFromString(spanner.NumericString(r))
}
