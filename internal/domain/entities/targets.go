package entities

// KPIStatus classifies a KPI value against its target.
type KPIStatus string

const (
	KPIStatusOnTrack        KPIStatus = "on_track"
	KPIStatusNeedsAttention KPIStatus = "needs_attention"
	KPIStatusBelowTarget    KPIStatus = "below_target"
)

// ClassifyKPI maps a value/target pair to its status band.
// on_track at 90% of target or better, needs_attention at 70%, below otherwise.
func ClassifyKPI(value, target float64) KPIStatus {
	switch {
	case value >= 0.9*target:
		return KPIStatusOnTrack
	case value >= 0.7*target:
		return KPIStatusNeedsAttention
	default:
		return KPIStatusBelowTarget
	}
}

// TargetTable holds the static KPI goal values. Built once at startup from
// configuration and never mutated.
type TargetTable struct {
	Revenue          float64 `json:"revenue"`
	ConversionRate   float64 `json:"conversion_rate"`
	DemoToPurchase   float64 `json:"demo_to_purchase"`
	JobsPlaced       float64 `json:"jobs_placed"`
	AIAssistRequests float64 `json:"ai_assist_requests"`
	PromoRequests    float64 `json:"promo_requests"`
}

// DefaultTargets returns the standard goal values used when configuration
// provides no overrides.
func DefaultTargets() TargetTable {
	return TargetTable{
		Revenue:          500000,
		ConversionRate:   20,
		DemoToPurchase:   30,
		JobsPlaced:       50,
		AIAssistRequests: 100,
		PromoRequests:    50,
	}
}
