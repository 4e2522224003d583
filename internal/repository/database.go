package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrAssetNotFound = errors.New("not found in datasource")
	ErrNoPrices      = errors.New("no daily closes found in datasource")
)

// DailyClose is one (day, symbol, close) row of the price store.
type DailyClose struct {
	Day    time.Time
	Symbol string
	Close  decimal.Decimal
}

type assetRow struct {
	Id         int
	Symbol     string
	Name       string
	Type       string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

type assetsStore interface {
	SelectAsset(ctx context.Context, symbol string) (assetRow, error)
}

type closesStore interface {
	SelectDailyCloses(ctx context.Context, symbols []string, start, end time.Time) ([]DailyClose, error)
	InsertDailyCloses(ctx context.Context, rows []DailyClose) error
}

// Database holds the price-store connection. It is a cache keyed on the
// exact (symbol set, date range) a caller asks for; concurrent readers are
// fine, but writers must follow an at-most-one-writer discipline.
type Database struct {
	assets assetsStore
	closes closesStore
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	queries := &pgxStore{pool: conn}
	return Database{
		assets: queries,
		closes: queries,
		conn:   conn,
	}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
