package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsync/reality-lens/internal/model"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_db.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FileSource(t *testing.T) {
	path := writeProfile(t, `{
		"monthly_income": 60000,
		"monthly_expenses": {"rent": 25000, "food": 10000, "existing_emis": 5000},
		"current_savings": 50000
	}`)

	loader := NewLoader(NewFileSource(path))
	snap := loader.Load(context.Background(), "default")

	assert.Equal(t, 60000.0, snap.MonthlyIncome)
	assert.Equal(t, 20000.0, snap.DisposableIncome)
	assert.Equal(t, 375.0, snap.HourlyWage)
	assert.Equal(t, 50000.0, snap.CurrentSavings)
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	loader := NewLoader(NewFileSource(filepath.Join(t.TempDir(), "missing.json")))
	snap := loader.Load(context.Background(), "default")

	assert.Equal(t, model.FallbackSnapshot(), snap)
}

func TestLoad_CorruptJSONFallsBack(t *testing.T) {
	path := writeProfile(t, `{"monthly_income": 60000,`)

	loader := NewLoader(NewFileSource(path))
	snap := loader.Load(context.Background(), "default")

	assert.Equal(t, model.FallbackSnapshot(), snap)
}

func TestLoad_MissingIncomeFallsBack(t *testing.T) {
	path := writeProfile(t, `{"monthly_expenses": {"rent": 25000}, "current_savings": 50000}`)

	loader := NewLoader(NewFileSource(path))
	snap := loader.Load(context.Background(), "default")

	assert.Equal(t, model.FallbackSnapshot(), snap)
}

func TestLoad_DerivedFieldsAlwaysRecomputed(t *testing.T) {
	// A source that tries to smuggle derived figures is ignored: only the raw
	// fields participate.
	path := writeProfile(t, `{
		"monthly_income": 80000,
		"monthly_expenses": {"rent": 20000, "food": 10000, "existing_emis": 0},
		"current_savings": 10000,
		"disposable_income": 1,
		"hourly_wage": 1
	}`)

	loader := NewLoader(NewFileSource(path))
	snap := loader.Load(context.Background(), "default")

	assert.Equal(t, 50000.0, snap.DisposableIncome)
	assert.Equal(t, 500.0, snap.HourlyWage)
}

func TestLoad_PostgresSource(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT monthly_income").
		WithArgs("u-42").
		WillReturnRows(
			pgxmock.NewRows([]string{"monthly_income", "rent", "food", "existing_emis", "current_savings"}).
				AddRow(90000.0, 30000.0, 12000.0, 8000.0, 150000.0),
		)

	loader := NewLoader(NewPostgresSource(mock))
	snap := loader.Load(context.Background(), "u-42")

	assert.Equal(t, 90000.0, snap.MonthlyIncome)
	assert.Equal(t, 40000.0, snap.DisposableIncome)
	assert.Equal(t, 562.5, snap.HourlyWage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_PostgresMissingRowFallsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT monthly_income").
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"monthly_income", "rent", "food", "existing_emis", "current_savings"}))

	loader := NewLoader(NewPostgresSource(mock))
	snap := loader.Load(context.Background(), "nobody")

	assert.Equal(t, model.FallbackSnapshot(), snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}
