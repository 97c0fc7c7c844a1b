// Package analyst turns product, price evidence, and a financial snapshot
// into an affordability verdict via the reasoning capability. The model's
// categorical judgment is trusted; its arithmetic is not (the pipeline
// recomputes hours and EMI locally).
package analyst

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/finsync/reality-lens/internal/model"
	"github.com/finsync/reality-lens/pkg/anthropic"
)

// ErrMalformedResponse marks reasoning output that could not be decoded into
// the expected record even after fence stripping. It propagates to the
// pipeline; the analyst does not retry.
var ErrMalformedResponse = eris.New("analyst: reasoning response is not valid analysis JSON")

const analysisPromptTemplate = `You are a Financial Risk Agent.

1. Product: %s
2. Market Data: %s
3. User Financials:
   - Monthly Income: ₹%.0f
   - Disposable Income: ₹%.0f
   - Savings: ₹%.0f
   - Hourly Wage: ₹%.2f

TASK:
1. Extract the most realistic price (INR) from Market Data.
2. Calculate 'Labor Hours' = Price / User's Hourly Wage.
3. Determine 'Fund Impact':
   - If Price > Savings: "BANKRUPTCY_RISK"
   - If Price > Disposable Income: "EMI_TRAP"
   - Else: "SAFE_BUY"
4. Estimate EMI (approx 14%% interest, 12 months).

Return VALID JSON:
{
    "item": "%s",
    "price": 0,
    "hours": 0,
    "impact": "string",
    "emi": 0
}`

// Analyst wraps the reasoning capability with the risk-analysis prompt.
type Analyst struct {
	ai        anthropic.Client
	model     string
	maxTokens int64
}

// NewAnalyst creates an Analyst using the given reasoning model.
func NewAnalyst(ai anthropic.Client, model string, maxTokens int64) *Analyst {
	return &Analyst{ai: ai, model: model, maxTokens: maxTokens}
}

// Analyze makes exactly one reasoning call and parses the response. Decoding
// failures are not recovered here: they surface as ErrMalformedResponse.
func (a *Analyst) Analyze(ctx context.Context, productName, priceEvidence string, snapshot model.FinancialSnapshot) (*model.AnalysisResult, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate,
		productName,
		priceEvidence,
		snapshot.MonthlyIncome,
		snapshot.DisposableIncome,
		snapshot.CurrentSavings,
		snapshot.HourlyWage,
		productName,
	)

	resp, err := a.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages: []anthropic.Message{
			anthropic.UserMessage(anthropic.TextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "analyst: reasoning call")
	}

	result, err := parseAnalysis(resp.Text())
	if err != nil {
		zap.L().Warn("analyst: malformed reasoning response",
			zap.String("product", productName),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// parseAnalysis repairs known wrapping (markdown fences, surrounding prose)
// and strictly decodes the analysis record.
func parseAnalysis(text string) (*model.AnalysisResult, error) {
	cleaned := cleanJSON(text)

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, eris.Wrap(ErrMalformedResponse, err.Error())
	}
	if result.Price < 0 || result.Hours < 0 || result.EMI < 0 {
		return nil, eris.Wrap(ErrMalformedResponse, "negative numeric field")
	}
	return &result, nil
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find first { and last }.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
