package model

// Impact is the categorical affordability verdict for a scanned product.
type Impact string

const (
	ImpactBankruptcyRisk Impact = "BANKRUPTCY_RISK" // price exceeds savings
	ImpactEMITrap        Impact = "EMI_TRAP"        // price exceeds monthly disposable income
	ImpactSafeBuy        Impact = "SAFE_BUY"
	ImpactRetry          Impact = "RETRY" // scan failed, try again
)

// AnalysisResult is both the external response contract of the scan endpoint
// and the internal working record. Price comes from the reasoning stage; Hours
// and EMI are recomputed locally whenever Price > 0 because the reasoning
// stage's arithmetic is not trusted.
type AnalysisResult struct {
	Item   string  `json:"item"`
	Price  float64 `json:"price"`
	Hours  float64 `json:"hours"`
	Impact Impact  `json:"impact"`
	EMI    float64 `json:"emi"`
}

// ScanFailed is the fixed record returned for any pipeline failure. It is the
// only shape a caller can receive besides a successful analysis.
func ScanFailed() AnalysisResult {
	return AnalysisResult{
		Item:   "Scan Failed",
		Price:  0,
		Hours:  0,
		Impact: ImpactRetry,
		EMI:    0,
	}
}
