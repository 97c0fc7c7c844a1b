package model

import "time"

// ScanRun is one persisted scan: the user it was analyzed for, the verdict,
// and whether the pipeline fell back to the failure sentinel.
type ScanRun struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Result    AnalysisResult `json:"result"`
	Failed    bool           `json:"failed"`
	CreatedAt time.Time      `json:"created_at"`
}
