package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/al-solutions/salesdash/internal/analytics"
	"github.com/al-solutions/salesdash/internal/domain/entities"
)

// Placeholder chart titles for the terminal cycle states.
const (
	TitleInvalidDateRange = "Invalid Date Range"
	TitleNoData           = "No Data Available"
	TitleError            = "Error Occurred"
)

// User-visible status messages.
const (
	MsgInvalidDateRange = "Invalid date range selected"
	MsgNoData           = "No data available for selected filters"
	MsgError            = "An unexpected error occurred while updating the dashboard"
)

// ChartConfig is a declarative chart description. Rendering belongs to the
// client; this carries only data and hints.
type ChartConfig struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	XLabel   string        `json:"x_label,omitempty"`
	YLabel   string        `json:"y_label,omitempty"`
	MapScope string        `json:"map_scope,omitempty"`
	Series   []ChartSeries `json:"series"`
}

// ChartSeries is one named series of labeled points.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSet holds the six dashboard charts of one cycle.
type ChartSet struct {
	RevenueBySalesperson ChartConfig `json:"revenue_by_salesperson"`
	RequestDistribution  ChartConfig `json:"request_distribution"`
	JobTypes             ChartConfig `json:"job_types"`
	AffiliateRevenue     ChartConfig `json:"affiliate_revenue"`
	RevenueByCountry     ChartConfig `json:"revenue_by_country"`
	HourlyTrend          ChartConfig `json:"hourly_trend"`
}

// KPICard is one KPI with display-ready value and target strings.
type KPICard struct {
	Key             string             `json:"key"`
	Label           string             `json:"label"`
	Value           float64            `json:"value"`
	Target          float64            `json:"target"`
	FormattedValue  string             `json:"formatted_value"`
	FormattedTarget string             `json:"formatted_target"`
	Status          entities.KPIStatus `json:"status"`
}

// SummaryTable is the rendered 4x3 statistics table.
type SummaryTable struct {
	Columns []string               `json:"columns"`
	Rows    []analytics.SummaryRow `json:"rows"`
}

// summaryColumns is the fixed header of the statistics table and the
// exported report.
var summaryColumns = []string{"Metric", "Mean", "Median", "Std Dev"}

// FormatAmount renders a currency amount: comma-grouped, no decimals,
// trailing dollar sign.
func FormatAmount(v float64) string {
	return groupDigits(int64(math.Round(v))) + "$"
}

// FormatPercent renders a rate with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatCount renders a comma-grouped integer count.
func FormatCount(v float64) string {
	return groupDigits(int64(math.Round(v)))
}

func groupDigits(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	raw := fmt.Sprintf("%d", n)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
		if len(raw) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(raw); i += 3 {
		b.WriteString(raw[i : i+3])
		if i+3 < len(raw) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// formatKPIValue picks the display format for a KPI unit.
func formatKPIValue(unit string, v float64) string {
	switch unit {
	case analytics.UnitCurrency:
		return FormatAmount(v)
	case analytics.UnitPercent:
		return FormatPercent(v)
	default:
		return FormatCount(v)
	}
}
