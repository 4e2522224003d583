package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxStore is the live Postgres implementation of the store interfaces.
// Queries are written directly against the pool; the schema is two tables,
// assets(id, symbol, name, type, created_at, modified_at) and
// daily_closes(day, symbol, close).
type pgxStore struct {
	pool *pgxpool.Pool
}

const selectAssetSQL = `
SELECT id, symbol, name, type, created_at, modified_at
FROM assets
WHERE symbol = $1`

func (s *pgxStore) SelectAsset(ctx context.Context, symbol string) (assetRow, error) {
	var row assetRow
	err := s.pool.QueryRow(ctx, selectAssetSQL, symbol).Scan(
		&row.Id, &row.Symbol, &row.Name, &row.Type, &row.CreatedAt, &row.ModifiedAt,
	)
	if err != nil {
		return assetRow{}, err
	}
	return row, nil
}

const selectDailyClosesSQL = `
SELECT day, symbol, close
FROM daily_closes
WHERE symbol = ANY($1) AND day BETWEEN $2 AND $3
ORDER BY day, symbol`

func (s *pgxStore) SelectDailyCloses(ctx context.Context, symbols []string, start, end time.Time) ([]DailyClose, error) {
	rows, err := s.pool.Query(ctx, selectDailyClosesSQL, symbols, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyClose
	for rows.Next() {
		var dc DailyClose
		if err := rows.Scan(&dc.Day, &dc.Symbol, &dc.Close); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

const insertDailyCloseSQL = `
INSERT INTO daily_closes (day, symbol, close)
VALUES ($1, $2, $3)
ON CONFLICT (day, symbol) DO UPDATE SET close = EXCLUDED.close`

func (s *pgxStore) InsertDailyCloses(ctx context.Context, rows []DailyClose) error {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertDailyCloseSQL, row.Day, row.Symbol, row.Close)
	}
	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
