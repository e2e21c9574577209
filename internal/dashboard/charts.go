package dashboard

import (
	"fmt"
	"strconv"

	"github.com/al-solutions/salesdash/internal/analytics"
	"github.com/al-solutions/salesdash/internal/domain/entities"
)

// Chart type hints understood by the client renderer.
const (
	chartBar        = "bar"
	chartPie        = "pie"
	chartLine       = "line"
	chartChoropleth = "choropleth"
)

// BuildCharts maps one aggregation bundle into the six chart descriptions.
func BuildCharts(agg *analytics.Aggregates) ChartSet {
	return ChartSet{
		RevenueBySalesperson: salespersonChart(agg.RevenueBySalesperson),
		RequestDistribution:  distributionChart("Request Types Distribution", agg.RequestDistribution),
		JobTypes:             jobTypeChart(agg.JobTypeCounts),
		AffiliateRevenue:     affiliateChart(agg.AffiliateRevenue),
		RevenueByCountry:     countryChart(agg.RevenueByCountry, agg.MapScope),
		HourlyTrend:          trendChart(agg.Trend),
	}
}

// PlaceholderCharts yields the six chart slots carrying only the given title.
// Used for the invalid-range, empty-result and error cycle states.
func PlaceholderCharts(title string) ChartSet {
	return ChartSet{
		RevenueBySalesperson: ChartConfig{Type: chartBar, Title: title},
		RequestDistribution:  ChartConfig{Type: chartPie, Title: title},
		JobTypes:             ChartConfig{Type: chartBar, Title: title},
		AffiliateRevenue:     ChartConfig{Type: chartBar, Title: title},
		RevenueByCountry:     ChartConfig{Type: chartChoropleth, Title: title},
		HourlyTrend:          ChartConfig{Type: chartLine, Title: title},
	}
}

// BuildKPICards attaches display strings to the computed KPIs.
func BuildKPICards(kpis []analytics.KPI) []KPICard {
	cards := make([]KPICard, 0, len(kpis))
	for _, k := range kpis {
		cards = append(cards, KPICard{
			Key:             k.Key,
			Label:           k.Label,
			Value:           k.Value,
			Target:          k.Target,
			FormattedValue:  formatKPIValue(k.Unit, k.Value),
			FormattedTarget: formatKPIValue(k.Unit, k.Target),
			Status:          k.Status,
		})
	}
	return cards
}

// BuildSummaryTable renders the statistics rows with the fixed column header.
func BuildSummaryTable(s *analytics.Summary) SummaryTable {
	return SummaryTable{Columns: summaryColumns, Rows: s.Rows}
}

func salespersonChart(rows []analytics.SalespersonRevenue) ChartConfig {
	revenue := make([]ChartPoint, 0, len(rows))
	target := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		revenue = append(revenue, ChartPoint{Label: r.SalespersonID, Value: r.Revenue})
		target = append(target, ChartPoint{Label: r.SalespersonID, Value: r.Target})
	}
	return ChartConfig{
		Type:   chartBar,
		Title:  "Revenue by Salesperson",
		XLabel: "Salesperson",
		YLabel: "Revenue ($)",
		Series: []ChartSeries{
			{Name: "Revenue", Points: revenue},
			{Name: "Target", Points: target},
		},
	}
}

func distributionChart(title string, rows []analytics.CategoryCount) ChartConfig {
	return ChartConfig{
		Type:   chartPie,
		Title:  title,
		Series: []ChartSeries{{Name: "Requests", Points: countPoints(rows)}},
	}
}

func jobTypeChart(rows []analytics.CategoryCount) ChartConfig {
	return ChartConfig{
		Type:   chartBar,
		Title:  "Job Type Distribution",
		XLabel: "Job Type",
		YLabel: "Placements",
		Series: []ChartSeries{{Name: "Placements", Points: countPoints(rows)}},
	}
}

func affiliateChart(rows []analytics.CategoryRevenue) ChartConfig {
	return ChartConfig{
		Type:   chartBar,
		Title:  "Affiliate Revenue Distribution",
		XLabel: "Affiliate",
		YLabel: "Revenue ($)",
		Series: []ChartSeries{{Name: "Revenue", Points: revenuePoints(rows)}},
	}
}

func countryChart(rows []analytics.CategoryRevenue, scope string) ChartConfig {
	return ChartConfig{
		Type:     chartChoropleth,
		Title:    "Revenue by Country",
		MapScope: scope,
		Series:   []ChartSeries{{Name: "Revenue", Points: revenuePoints(rows)}},
	}
}

func trendChart(trend analytics.TrendSeries) ChartConfig {
	title := fmt.Sprintf("24-Hour Request Trends (%s)", trendTitleSuffix(trend.View))
	return ChartConfig{
		Type:   chartLine,
		Title:  title,
		XLabel: "Hour of Day",
		YLabel: "Requests",
		Series: []ChartSeries{
			{Name: "Promo Events", Points: hourlyPoints(trend.Promo)},
			{Name: "Demo Requests", Points: hourlyPoints(trend.Demo)},
			{Name: "AI Assist Requests", Points: hourlyPoints(trend.AIAssist)},
			{Name: "Job Placements", Points: hourlyPoints(trend.JobPlacements)},
		},
	}
}

func trendTitleSuffix(view string) string {
	if view == "" || view == entities.TrendViewAverage {
		return "Average"
	}
	return view
}

func countPoints(rows []analytics.CategoryCount) []ChartPoint {
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{Label: r.Label, Value: float64(r.Count)})
	}
	return points
}

func revenuePoints(rows []analytics.CategoryRevenue) []ChartPoint {
	points := make([]ChartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, ChartPoint{Label: r.Label, Value: r.Revenue})
	}
	return points
}

func hourlyPoints(counts [24]int) []ChartPoint {
	points := make([]ChartPoint, 0, 24)
	for hour, count := range counts {
		points = append(points, ChartPoint{Label: strconv.Itoa(hour), Value: float64(count)})
	}
	return points
}
