package models

import "time"

// ConfidenceBucket conditions accuracy on the stated confidence decile.
type ConfidenceBucket struct {
	Low       float64  `json:"low"`
	High      float64  `json:"high"`
	Evaluated int      `json:"evaluated"`
	Correct   int      `json:"correct"`
	Accuracy  *float64 `json:"accuracy"` // nil when the bucket is empty
}

// TrendPoint is one week of the rolling accuracy series.
type TrendPoint struct {
	WeekStart time.Time `json:"week_start"`
	Evaluated int       `json:"evaluated"`
	Correct   int       `json:"correct"`
	Accuracy  *float64  `json:"accuracy"`
}

// PerformanceReport is derived per query from final games joined with
// their predictions, never persisted. A nil Accuracy means no settled
// picks in range, which is distinct from 0% accuracy.
type PerformanceReport struct {
	Start     string             `json:"start"` // inclusive, YYYY-MM-DD in the reporting zone
	End       string             `json:"end"`
	Evaluated int                `json:"evaluated"`
	Correct   int                `json:"correct"`
	Accuracy  *float64           `json:"accuracy"`
	Buckets   []ConfidenceBucket `json:"buckets,omitempty"`
	Trend     []TrendPoint       `json:"trend,omitempty"`
}
