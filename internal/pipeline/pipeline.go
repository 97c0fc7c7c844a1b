// Package pipeline orchestrates a scan: load the user's financial snapshot,
// identify the product in the image, gather price evidence, run the risk
// analysis, and recompute the derived figures locally before returning.
package pipeline

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/finsync/reality-lens/internal/estimate"
	"github.com/finsync/reality-lens/internal/model"
	"github.com/finsync/reality-lens/internal/store"
)

// ProfileLoader resolves a user's financial snapshot.
type ProfileLoader interface {
	Load(ctx context.Context, userID string) model.FinancialSnapshot
}

// ProductIdentifier names the product on a photo.
type ProductIdentifier interface {
	Identify(ctx context.Context, imageBytes []byte) (string, error)
}

// PriceResolver gathers market price evidence for a product.
type PriceResolver interface {
	Resolve(ctx context.Context, productName string) string
}

// RiskAnalyst produces the affordability verdict.
type RiskAnalyst interface {
	Analyze(ctx context.Context, productName, priceEvidence string, snapshot model.FinancialSnapshot) (*model.AnalysisResult, error)
}

// LoanTerms configures the local EMI recomputation.
type LoanTerms struct {
	AnnualRatePercent float64
	TermMonths        int
}

// Pipeline wires the scan stages together.
type Pipeline struct {
	profiles ProfileLoader
	identify ProductIdentifier
	pricing  PriceResolver
	analyst  RiskAnalyst
	store    store.Store
	loan     LoanTerms
}

// New creates a Pipeline. store may be nil, in which case runs are not persisted.
func New(profiles ProfileLoader, identifier ProductIdentifier, pricing PriceResolver, analyst RiskAnalyst, st store.Store, loan LoanTerms) *Pipeline {
	return &Pipeline{
		profiles: profiles,
		identify: identifier,
		pricing:  pricing,
		analyst:  analyst,
		store:    st,
		loan:     loan,
	}
}

// Run executes one scan. It never returns an error: any stage failure
// degrades to the retry sentinel so callers always get a renderable result.
func (p *Pipeline) Run(ctx context.Context, userID string, imageBytes []byte) model.AnalysisResult {
	log := zap.L().With(zap.String("user", userID))

	snapshot := p.profiles.Load(ctx, userID)

	productName, err := p.identify.Identify(ctx, imageBytes)
	if err != nil {
		log.Error("pipeline: product identification failed", zap.Error(err))
		return p.finish(ctx, userID, model.ScanFailed(), true)
	}
	log.Info("pipeline: product identified", zap.String("product", productName))

	evidence := p.pricing.Resolve(ctx, productName)

	result, err := p.analyst.Analyze(ctx, productName, evidence, snapshot)
	if err != nil {
		log.Error("pipeline: risk analysis failed", zap.String("product", productName), zap.Error(err))
		return p.finish(ctx, userID, model.ScanFailed(), true)
	}

	// The model's categorical verdict stands; its arithmetic does not.
	// Recompute hours and EMI from the extracted price.
	if result.Price > 0 {
		result.Hours = math.Round(result.Price / snapshot.HourlyWage)
		result.EMI = estimate.MonthlyInstallment(result.Price, p.loan.AnnualRatePercent, p.loan.TermMonths)
	}

	log.Info("pipeline: scan complete",
		zap.String("item", result.Item),
		zap.Float64("price", result.Price),
		zap.String("impact", string(result.Impact)))

	return p.finish(ctx, userID, *result, false)
}

// finish persists the run best-effort and returns the result unchanged.
func (p *Pipeline) finish(ctx context.Context, userID string, result model.AnalysisResult, failed bool) model.AnalysisResult {
	if p.store == nil {
		return result
	}
	if _, err := p.store.SaveRun(ctx, userID, result, failed); err != nil {
		zap.L().Warn("pipeline: failed to persist scan run",
			zap.String("user", userID), zap.Error(err))
	}
	return result
}
