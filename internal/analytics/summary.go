package analytics

import (
	"sort"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	"github.com/al-solutions/salesdash/pkg/stats"
)

// Summary metric display names, in fixed row order.
const (
	MetricDemoRequests     = "Demo Requests"
	MetricAIAssistRequests = "AI Assist Requests"
	MetricPromoEvents      = "Promo Events"
	MetricJobPlacements    = "Job Placements"
)

// SummaryRow is one metric's daily-count statistics, rounded to 2 decimals.
type SummaryRow struct {
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Summary is the 4-row statistics table.
type Summary struct {
	Rows []SummaryRow `json:"rows"`
}

// Summarize computes daily-count statistics over a filtered view. Rows group
// by (calendar date, request type); job placements count separately and join
// onto the same date axis with zero fill. A category that never occurs keeps
// an all-zero series over the date axis so its statistics stay computable.
// Both the live view and the export path run exactly this function.
func Summarize(view *dataset.Table) *Summary {
	type dailyCounts struct {
		demo     float64
		aiAssist float64
		promo    float64
		jobs     float64
	}

	byDate := make(map[string]*dailyCounts)
	for _, e := range view.Events() {
		key := e.Date().Format(entities.DateLayout)
		day := byDate[key]
		if day == nil {
			day = &dailyCounts{}
			byDate[key] = day
		}
		switch e.RequestType {
		case entities.RequestTypeDemo:
			day.demo++
		case entities.RequestTypeAIAssist:
			day.aiAssist++
		case entities.RequestTypePromo:
			day.promo++
		}
		if e.IsJobPlacement() {
			day.jobs++
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	n := len(dates)
	demo := make([]float64, n)
	aiAssist := make([]float64, n)
	promo := make([]float64, n)
	jobs := make([]float64, n)
	for i, d := range dates {
		day := byDate[d]
		demo[i] = day.demo
		aiAssist[i] = day.aiAssist
		promo[i] = day.promo
		jobs[i] = day.jobs
	}

	return &Summary{Rows: []SummaryRow{
		summaryRow(MetricDemoRequests, demo),
		summaryRow(MetricAIAssistRequests, aiAssist),
		summaryRow(MetricPromoEvents, promo),
		summaryRow(MetricJobPlacements, jobs),
	}}
}

func summaryRow(metric string, series []float64) SummaryRow {
	return SummaryRow{
		Metric: metric,
		Mean:   stats.Round2(stats.Mean(series)),
		Median: stats.Round2(stats.Median(series)),
		StdDev: stats.Round2(stats.SampleStdDev(series)),
	}
}
