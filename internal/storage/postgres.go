package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorage remembers which orders already had a confirmation code
// sent, so a restart does not prompt the operator to send it again.
type PostgresStorage struct {
	db *pgxpool.Pool
}

func (store *PostgresStorage) initSchema(ctx context.Context) error {
	const initSchemaQuery = `
	CREATE TABLE IF NOT EXISTS code_sent (
		order_id TEXT PRIMARY KEY,
		sent_at TIMESTAMP DEFAULT NOW()
	);`

	_, err := store.db.Exec(ctx, initSchemaQuery)
	return err
}

func NewPostgreStorage(ctx context.Context, DatabaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, DatabaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		return nil, err
	}

	if err := storage.initSchema(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

func (store *PostgresStorage) MarkCodeSent(ctx context.Context, orderID string) error {
	const query = `
		INSERT INTO code_sent (order_id)
		VALUES ($1)
		ON CONFLICT (order_id) DO UPDATE SET sent_at = NOW()`

	_, err := store.db.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("mark code sent: %w", err)
	}
	return nil
}

func (store *PostgresStorage) IsCodeSent(ctx context.Context, orderID string) (bool, error) {
	const query = `SELECT 1 FROM code_sent WHERE order_id = $1`

	var one int
	err := store.db.QueryRow(ctx, query, orderID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check code sent: %w", err)
	}
	return true, nil
}

func (store *PostgresStorage) ClearCodeSent(ctx context.Context, orderID string) error {
	const query = `DELETE FROM code_sent WHERE order_id = $1`

	_, err := store.db.Exec(ctx, query, orderID)
	if err != nil {
		return fmt.Errorf("clear code sent: %w", err)
	}
	return nil
}
