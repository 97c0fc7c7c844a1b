package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finsync/reality-lens/internal/analyst"
	"github.com/finsync/reality-lens/internal/config"
	"github.com/finsync/reality-lens/internal/identify"
	"github.com/finsync/reality-lens/internal/pipeline"
	"github.com/finsync/reality-lens/internal/pricing"
	"github.com/finsync/reality-lens/internal/profile"
	"github.com/finsync/reality-lens/internal/store"
	anthropicpkg "github.com/finsync/reality-lens/pkg/anthropic"
	"github.com/finsync/reality-lens/pkg/jina"
)

// scanEnv holds the initialized store and pipeline used by the scan and
// serve commands.
type scanEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the environment.
func (se *scanEnv) Close() {
	if se.Store != nil {
		_ = se.Store.Close()
	}
}

// initScanEnv sets up the store, API clients, profile source, and pipeline.
// Callers should defer env.Close().
func initScanEnv(ctx context.Context) (*scanEnv, error) {
	if cfg.Anthropic.Key == "" || cfg.Anthropic.Key == config.PlaceholderAPIKey {
		return nil, eris.New("anthropic api key not configured (set REALITYLENS_ANTHROPIC_KEY)")
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	jinaClient := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))

	source, err := initProfileSource(ctx)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	loader := profile.NewLoader(source)

	p := pipeline.New(
		loader,
		identify.NewIdentifier(aiClient, cfg.Anthropic.VisionModel, cfg.Anthropic.MaxTokens),
		pricing.NewResolver(jinaClient, cfg.Search.QuerySuffix, cfg.Search.MaxResults),
		analyst.NewAnalyst(aiClient, cfg.Anthropic.ReasonModel, cfg.Anthropic.MaxTokens),
		st,
		pipeline.LoanTerms{
			AnnualRatePercent: cfg.Loan.AnnualRatePercent,
			TermMonths:        cfg.Loan.TermMonths,
		},
	)

	return &scanEnv{Store: st, Pipeline: p}, nil
}

// initProfileSource picks the profile backend from config. The file source is
// the default; postgres is used when a database URL is configured.
func initProfileSource(ctx context.Context) (profile.Source, error) {
	switch cfg.Profile.Driver {
	case "postgres":
		if cfg.Profile.DatabaseURL == "" {
			return nil, eris.New("profile driver is postgres but profile.database_url is empty")
		}
		pool, err := profile.NewPostgresPool(ctx, cfg.Profile.DatabaseURL)
		if err != nil {
			return nil, err
		}
		zap.L().Info("profile source: postgres")
		return profile.NewPostgresSource(pool), nil
	case "", "file":
		zap.L().Info("profile source: file", zap.String("path", cfg.Profile.Path))
		return profile.NewFileSource(cfg.Profile.Path), nil
	default:
		return nil, eris.Errorf("unknown profile driver: %s", cfg.Profile.Driver)
	}
}
