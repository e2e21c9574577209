package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// KPI unit hints for display formatting.
const (
	UnitCurrency = "currency"
	UnitPercent  = "percent"
	UnitCount    = "count"
)

// KPI is one computed metric paired with its static target and status band.
type KPI struct {
	Key    string
	Label  string
	Unit   string
	Value  float64
	Target float64
	Status entities.KPIStatus
}

// SalespersonRevenue is one revenue-by-salesperson row, annotated with the
// static revenue target for comparison rendering.
type SalespersonRevenue struct {
	SalespersonID string
	Revenue       float64
	Target        float64
}

// CategoryCount is a labeled row count.
type CategoryCount struct {
	Label string
	Count int
}

// CategoryRevenue is a labeled revenue sum.
type CategoryRevenue struct {
	Label   string
	Revenue float64
}

// TrendSeries holds the four parallel hourly series. All 24 hours are always
// present, zero-filled where no rows fall.
type TrendSeries struct {
	View          string
	Promo         [24]int
	Demo          [24]int
	AIAssist      [24]int
	JobPlacements [24]int
}

// Aggregates is the full output bundle of one aggregation pass.
type Aggregates struct {
	KPIs                 []KPI
	RevenueBySalesperson []SalespersonRevenue
	RequestDistribution  []CategoryCount
	JobTypeCounts        []CategoryCount
	AffiliateRevenue     []CategoryRevenue
	RevenueByCountry     []CategoryRevenue
	MapScope             string
	Trend                TrendSeries
}

// Aggregate computes the aggregate bundle from a filtered view. The caller
// guarantees a non-empty view. Ordering is deterministic: grouped sums are
// emitted key-ascending, distributions count-descending with label
// tie-breaks, so no output depends on row order.
func Aggregate(view *dataset.Table, state entities.FilterState, targets entities.TargetTable) (*Aggregates, error) {
	trend, err := hourlyTrend(view, state.TrendView)
	if err != nil {
		return nil, err
	}

	agg := &Aggregates{
		KPIs:                 computeKPIs(view, targets),
		RevenueBySalesperson: revenueBySalesperson(view, targets.Revenue),
		RequestDistribution:  requestDistribution(view),
		JobTypeCounts:        jobTypeCounts(view),
		AffiliateRevenue:     affiliateRevenue(view),
		RevenueByCountry:     revenueByCountry(view),
		MapScope:             mapScope(state.Continent),
		Trend:                trend,
	}
	return agg, nil
}

func computeKPIs(view *dataset.Table, targets entities.TargetTable) []KPI {
	var (
		totalRevenue  float64
		purchases     int
		demoCount     int
		demoPurchases int
		jobsPlaced    int
		aiAssist      int
		promo         int
	)
	for _, e := range view.Events() {
		totalRevenue += e.Revenue
		if e.IsPurchase() {
			purchases++
		}
		switch e.RequestType {
		case entities.RequestTypeDemo:
			demoCount++
			if e.IsPurchase() {
				demoPurchases++
			}
		case entities.RequestTypeAIAssist:
			aiAssist++
		case entities.RequestTypePromo:
			promo++
		}
		if e.IsJobPlacement() {
			jobsPlaced++
		}
	}

	totalInteractions := view.Len()
	conversionRate := 0.0
	if totalInteractions > 0 {
		conversionRate = float64(purchases) / float64(totalInteractions) * 100
	}
	demoRate := 0.0
	if demoCount > 0 {
		demoRate = float64(demoPurchases) / float64(demoCount) * 100
	}

	newKPI := func(key, label, unit string, value, target float64) KPI {
		return KPI{
			Key:    key,
			Label:  label,
			Unit:   unit,
			Value:  value,
			Target: target,
			Status: entities.ClassifyKPI(value, target),
		}
	}

	return []KPI{
		newKPI("revenue", "Total Revenue", UnitCurrency, totalRevenue, targets.Revenue),
		newKPI("conversion_rate", "Conversion Rate", UnitPercent, conversionRate, targets.ConversionRate),
		newKPI("demo_to_purchase", "Demo-to-Purchase Rate", UnitPercent, demoRate, targets.DemoToPurchase),
		newKPI("jobs_placed", "Jobs Placed", UnitCount, float64(jobsPlaced), targets.JobsPlaced),
		newKPI("ai_assist_requests", "AI Assist Requests", UnitCount, float64(aiAssist), targets.AIAssistRequests),
		newKPI("promo_requests", "Promo Requests", UnitCount, float64(promo), targets.PromoRequests),
	}
}

func revenueBySalesperson(view *dataset.Table, revenueTarget float64) []SalespersonRevenue {
	sums := make(map[string]float64)
	for _, e := range view.Events() {
		sums[e.SalespersonID] += e.Revenue
	}

	rows := make([]SalespersonRevenue, 0, len(sums))
	for id, revenue := range sums {
		rows = append(rows, SalespersonRevenue{SalespersonID: id, Revenue: revenue, Target: revenueTarget})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SalespersonID < rows[j].SalespersonID })
	return rows
}

func requestDistribution(view *dataset.Table) []CategoryCount {
	counts := make(map[string]int)
	for _, e := range view.Events() {
		counts[string(e.RequestType)]++
	}
	return sortedCounts(counts)
}

func jobTypeCounts(view *dataset.Table) []CategoryCount {
	counts := make(map[string]int)
	for _, e := range view.Events() {
		if e.IsJobPlacement() {
			counts[e.JobType]++
		}
	}
	return sortedCounts(counts)
}

func affiliateRevenue(view *dataset.Table) []CategoryRevenue {
	sums := make(map[string]float64)
	for _, e := range view.Events() {
		if e.HasAffiliate() {
			sums[e.AffiliateCode] += e.Revenue
		}
	}
	return sortedRevenues(sums)
}

func revenueByCountry(view *dataset.Table) []CategoryRevenue {
	sums := make(map[string]float64)
	for _, e := range view.Events() {
		sums[e.Country] += e.Revenue
	}
	return sortedRevenues(sums)
}

// mapScope is the choropleth scope hint: the lower-cased selected continent,
// or "world" when none is selected.
func mapScope(continent string) string {
	if continent == "" {
		return "world"
	}
	return strings.ToLower(continent)
}

func hourlyTrend(view *dataset.Table, trendView string) (TrendSeries, error) {
	series := TrendSeries{View: trendView}
	if trendView == "" {
		series.View = entities.TrendViewAverage
	}

	var trendDate time.Time
	specificDate := series.View != entities.TrendViewAverage
	if specificDate {
		parsed, err := time.Parse(entities.DateLayout, series.View)
		if err != nil {
			return TrendSeries{}, apperrors.NewInvalidDateRangeError("trend view date " + series.View + " is not a valid date")
		}
		trendDate = parsed
	}

	for _, e := range view.Events() {
		if specificDate && !e.Date().Equal(trendDate) {
			continue
		}
		hour := e.Hour()
		switch e.RequestType {
		case entities.RequestTypePromo:
			series.Promo[hour]++
		case entities.RequestTypeDemo:
			series.Demo[hour]++
		case entities.RequestTypeAIAssist:
			series.AIAssist[hour]++
		}
		if e.IsJobPlacement() {
			series.JobPlacements[hour]++
		}
	}
	return series, nil
}

func sortedCounts(counts map[string]int) []CategoryCount {
	rows := make([]CategoryCount, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, CategoryCount{Label: label, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

func sortedRevenues(sums map[string]float64) []CategoryRevenue {
	rows := make([]CategoryRevenue, 0, len(sums))
	for label, revenue := range sums {
		rows = append(rows, CategoryRevenue{Label: label, Revenue: revenue})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}
