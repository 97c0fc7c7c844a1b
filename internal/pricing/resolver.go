// Package pricing resolves real-world price evidence for an identified
// product. The evidence is free text; the reasoning stage extracts the number.
package pricing

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/finsync/reality-lens/pkg/jina"
)

// PriceUnavailable is returned whenever the search capability fails or comes
// back empty. It is evidence, not an error: the analyst prompt handles it.
const PriceUnavailable = "Price Unavailable"

// maxSnippetChars bounds each result's contribution to the evidence blob.
const maxSnippetChars = 1500

// Resolver wraps the search capability with the e-commerce-biased query.
type Resolver struct {
	search      jina.Client
	querySuffix string
	maxResults  int
}

// NewResolver creates a Resolver. querySuffix biases results toward regional
// e-commerce listings; maxResults caps how many snippets feed the analyst.
func NewResolver(search jina.Client, querySuffix string, maxResults int) *Resolver {
	if maxResults <= 0 {
		maxResults = 2
	}
	return &Resolver{
		search:      search,
		querySuffix: querySuffix,
		maxResults:  maxResults,
	}
}

// Resolve issues one search for the product and serializes the results into a
// bounded text blob. It never returns an error past its boundary: any failure
// or empty result set maps to the PriceUnavailable sentinel.
func (r *Resolver) Resolve(ctx context.Context, productName string) string {
	query := strings.TrimSpace(productName + " " + r.querySuffix)

	resp, err := r.search.Search(ctx, query, jina.WithMaxResults(r.maxResults))
	if err != nil {
		zap.L().Warn("pricing: search failed",
			zap.String("product", productName),
			zap.Error(err))
		return PriceUnavailable
	}
	if len(resp.Data) == 0 {
		zap.L().Info("pricing: no results", zap.String("product", productName))
		return PriceUnavailable
	}

	var b strings.Builder
	for i, res := range resp.Data {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(res.Title)
		if res.URL != "" {
			b.WriteString(" — " + res.URL)
		}
		content := res.Content
		if content == "" {
			content = res.Description
		}
		if len(content) > maxSnippetChars {
			content = content[:maxSnippetChars]
		}
		if content != "" {
			b.WriteString("\n" + content)
		}
	}
	return b.String()
}
