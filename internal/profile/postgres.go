package profile

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the Postgres source needs. pgxmock
// satisfies it in tests.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads the profile row for a user from the finsync user store.
type PostgresSource struct {
	pool Pool
}

// NewPostgresSource creates a Postgres-backed profile source.
func NewPostgresSource(pool Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// NewPostgresPool opens a pgx pool for the given database URL.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "profile: open postgres pool")
	}
	return pool, nil
}

const profileQuery = `SELECT monthly_income, rent, food, existing_emis, current_savings
FROM user_profiles WHERE user_id = $1`

func (s *PostgresSource) Fetch(ctx context.Context, userID string) (*Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx, profileQuery, userID).Scan(
		&rec.MonthlyIncome,
		&rec.MonthlyExpenses.Rent,
		&rec.MonthlyExpenses.Food,
		&rec.MonthlyExpenses.ExistingEMIs,
		&rec.CurrentSavings,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "profile: query user %s", userID)
	}
	return &rec, nil
}
