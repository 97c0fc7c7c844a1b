// Package profile loads a user's financial snapshot from an external source.
// The source is read on every scan; nothing is cached across requests.
package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/finsync/reality-lens/internal/model"
)

// Source reads the raw financial record for a user.
type Source interface {
	Fetch(ctx context.Context, userID string) (*Record, error)
}

// Record is the raw shape of the profile data source: income, itemized
// expenses, and savings. Derived figures are never stored here.
type Record struct {
	MonthlyIncome   float64               `json:"monthly_income"`
	MonthlyExpenses model.MonthlyExpenses `json:"monthly_expenses"`
	CurrentSavings  float64               `json:"current_savings"`
}

// Loader turns a Source into a FinancialSnapshot, absorbing every source
// failure into the fixed fallback profile.
type Loader struct {
	source Source
}

// NewLoader creates a Loader over the given source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load fetches the user's record and derives the snapshot. On any read or
// shape error it logs a warning and returns the fallback snapshot; it never
// fails.
func (l *Loader) Load(ctx context.Context, userID string) model.FinancialSnapshot {
	rec, err := l.source.Fetch(ctx, userID)
	if err != nil {
		zap.L().Warn("profile: source unavailable, using fallback",
			zap.String("user_id", userID),
			zap.Error(err))
		return model.FallbackSnapshot()
	}
	if rec == nil || rec.MonthlyIncome <= 0 {
		zap.L().Warn("profile: record malformed, using fallback",
			zap.String("user_id", userID))
		return model.FallbackSnapshot()
	}
	return model.NewFinancialSnapshot(rec.MonthlyIncome, rec.MonthlyExpenses, rec.CurrentSavings)
}
