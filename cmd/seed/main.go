package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/obs"
)

var (
	entityFlag   = flag.String("entity", "", "Entity ID to seed (random UUID when empty)")
	handlingFlag = flag.String("handling", "NONE", "Inner record handling: NONE, LOWEST_PRICE or SUM")
	currencyFlag = flag.String("currency", "EUR", "Currency of the seeded prices")
)

type seedPrice struct {
	id      int64
	list    string
	inner   int64
	net     string
	gross   string
	indexed bool
	validTo time.Time
}

// demoPrices mixes ranked lists with an expired promotion and a non-indexed reference price.
var demoPrices = []seedPrice{
	{id: 1, list: "basic", inner: 1, net: "82.64", gross: "100", indexed: true},
	{id: 2, list: "vip", inner: 1, net: "66.12", gross: "80", indexed: true},
	{id: 3, list: "promo", inner: 2, net: "41.32", gross: "50", indexed: true, validTo: time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)},
	{id: 4, list: "basic", inner: 2, net: "57.85", gross: "70", indexed: true},
	{id: 5, list: "reference", inner: 1, net: "99.17", gross: "120"},
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)

	entityID := *entityFlag
	if entityID == "" {
		entityID = uuid.NewString()
	}

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Spanner client")
	}
	defer client.Close()

	mutations, err := buildMutations(entityID, *handlingFlag, *currencyFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid seed data")
	}
	if _, err := client.Apply(ctx, mutations); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed prices")
	}

	logger.Info().
		Str("entity_id", entityID).
		Str("handling", *handlingFlag).
		Int("prices", len(demoPrices)).
		Msg("seeded price set")
}

// buildMutations replaces the entity's price set with demoPrices.
func buildMutations(entityID, handling, currency string) ([]*spanner.Mutation, error) {
	model := m_price.NewModel()
	mutations := []*spanner.Mutation{
		model.DeleteSetMut(entityID),
		model.InsertSetMut(&m_price.SetData{EntityID: entityID, Version: 1, InnerRecordHandling: handling}),
	}

	for _, p := range demoPrices {
		data := &m_price.Data{
			EntityID:      entityID,
			PriceID:       p.id,
			PriceList:     p.list,
			Currency:      currency,
			InnerRecordID: spanner.NullInt64{Int64: p.inner, Valid: p.inner != 0},
			Indexed:       p.indexed,
			Version:       1,
		}
		if !p.validTo.IsZero() {
			data.ValidTo = spanner.NullTime{Time: p.validTo, Valid: true}
		}
		if err := setRat(&data.PriceWithoutTax, p.net); err != nil {
			return nil, err
		}
		if err := setRat(&data.PriceWithTax, p.gross); err != nil {
			return nil, err
		}
		data.TaxRate.SetInt64(21)
		mutations = append(mutations, model.InsertMut(data))
	}
	return mutations, nil
}

func setRat(dst *big.Rat, value string) error {
	if _, ok := dst.SetString(value); !ok {
		return fmt.Errorf("invalid amount %q", value)
	}
	return nil
}
