package words

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FromPostgres loads the vocabulary from a `words` table once at startup.
// Game state itself is never persisted; the database is only a word source
// shared between deployments.
func FromPostgres(ctx context.Context, connString string) (*Bank, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to word store: %w", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, "SELECT word FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("scan word row: %w", err)
		}
		list = append(list, word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read word rows: %w", err)
	}

	return New(list)
}

// EnsureSchema creates the words table when it is missing, so a fresh
// database can be pointed at directly.
func EnsureSchema(ctx context.Context, connString string) error {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect to word store: %w", err)
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS words (word TEXT PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}

// Seed inserts words into the store, ignoring ones already present.
func Seed(ctx context.Context, connString string, list []string) error {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("connect to word store: %w", err)
	}
	defer pool.Close()

	for _, word := range list {
		if _, err := pool.Exec(ctx,
			"INSERT INTO words (word) VALUES ($1) ON CONFLICT DO NOTHING", word); err != nil {
			return fmt.Errorf("seed word %q: %w", word, err)
		}
	}
	return nil
}
