package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rotation/types"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// GetAsset retrieves a types.Asset by its symbol.
func (db *Database) GetAsset(ctx context.Context, symbol string) (*types.Asset, error) {
	row, err := db.assets.SelectAsset(ctx, symbol)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("symbol %s %w", symbol, ErrAssetNotFound)
		}
		return nil, err
	}
	return &types.Asset{
		Id:         row.Id,
		Symbol:     row.Symbol,
		Name:       row.Name,
		Type:       types.AssetType(row.Type),
		CreatedAt:  row.CreatedAt,
		ModifiedAt: row.ModifiedAt,
	}, nil
}

// GetDailyCloses assembles the cached closes for the exact (symbol set, date
// range) into a price table. Days where only some symbols traded keep a zero
// close for the rest.
func (db *Database) GetDailyCloses(ctx context.Context, symbols []string, start, end time.Time) (*types.PriceTable, error) {
	rows, err := db.closes.SelectDailyCloses(ctx, symbols, start, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPrices
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoPrices
	}
	return assemblePriceTable(symbols, rows)
}

// SaveDailyCloses upserts a fetched price table into the cache.
func (db *Database) SaveDailyCloses(ctx context.Context, prices *types.PriceTable) error {
	var rows []DailyClose
	for i := 0; i < prices.Len(); i++ {
		for _, symbol := range prices.Symbols() {
			if !prices.HasClose(symbol, i) {
				continue
			}
			rows = append(rows, DailyClose{
				Day:    prices.Date(i),
				Symbol: symbol,
				Close:  prices.Close(symbol, i),
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return db.closes.InsertDailyCloses(ctx, rows)
}

// assemblePriceTable relies on the rows being ordered by day.
func assemblePriceTable(symbols []string, rows []DailyClose) (*types.PriceTable, error) {
	table := types.NewPriceTable(symbols)

	i := 0
	for i < len(rows) {
		day := rows[i].Day
		closes := make(map[string]decimal.Decimal)
		for i < len(rows) && rows[i].Day.Equal(day) {
			closes[rows[i].Symbol] = rows[i].Close
			i++
		}
		if err := table.AddRow(day, closes); err != nil {
			return nil, err
		}
	}
	return table, nil
}
