package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/al-solutions/salesdash/internal/analytics"
	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	"github.com/al-solutions/salesdash/internal/infrastructure/observability"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// Cycle trigger names, recorded on cycle metrics and logs.
const (
	triggerInitial      = "initial"
	triggerFilterChange = "filter_change"
	triggerReset        = "reset"
)

// Cycle outcome names.
const (
	outcomeOK               = "ok"
	outcomeInvalidDateRange = "invalid_date_range"
	outcomeEmptyResult      = "empty_result"
	outcomeError            = "error"
)

// Controls is the reflected filter-control state of a snapshot.
type Controls struct {
	Continent string   `json:"continent"`
	Countries []string `json:"countries"`
	Products  []string `json:"products"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	TrendView string   `json:"trend_view"`
}

// Options holds the currently valid control choices. Country options depend
// on the selected continent.
type Options struct {
	Continents []string `json:"continents"`
	Countries  []string `json:"countries"`
	Products   []string `json:"products"`
	TrendDates []string `json:"trend_dates"`
}

// Snapshot is the atomic output bundle of one interaction cycle. Every field
// belongs to the same cycle; readers never observe a half-updated dashboard.
type Snapshot struct {
	Controls      Controls     `json:"controls"`
	Options       Options      `json:"options"`
	KPIs          []KPICard    `json:"kpis"`
	Charts        ChartSet     `json:"charts"`
	Summary       SummaryTable `json:"summary"`
	StatusMessage string       `json:"status_message"`
	RowCount      int          `json:"row_count"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

// Controller runs interaction cycles over the immutable base table. Cycles
// are serialized with a mutex; HTTP dispatch stays concurrent and the
// controller is the single serialization point. The filtered row set of the
// most recent successful cycle is retained for the export action and cleared
// by any failed cycle.
type Controller struct {
	table   *dataset.Table
	catalog dataset.Catalog
	targets entities.TargetTable
	metrics *observability.Metrics

	mu        sync.Mutex
	state     entities.FilterState
	retained  *dataset.Table
	snapshot  Snapshot
	listeners []func(Snapshot)
}

// NewController builds a controller over a loaded table. metrics may be nil
// when observability is disabled. No cycle runs until Refresh.
func NewController(table *dataset.Table, catalog dataset.Catalog, targets entities.TargetTable, metrics *observability.Metrics) *Controller {
	minDate, maxDate := catalog.Bounds()
	return &Controller{
		table:   table,
		catalog: catalog,
		targets: targets,
		metrics: metrics,
		state:   entities.DefaultFilterState(minDate, maxDate),
	}
}

// OnSnapshot registers a listener invoked with every completed snapshot.
// Listeners must not block; the SSE broadcaster hands frames off with
// non-blocking sends.
func (c *Controller) OnSnapshot(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Refresh runs a cycle with the current filter state. Called once at startup
// so a snapshot always exists.
func (c *Controller) Refresh(ctx context.Context) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runCycle(ctx, triggerInitial, c.state)
}

// Update applies a filter-change trigger: the patch's non-nil fields replace
// the corresponding filter values, everything else persists, and one full
// cycle runs.
func (c *Controller) Update(ctx context.Context, patch entities.FilterPatch) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runCycle(ctx, triggerFilterChange, c.state.Apply(patch))
}

// Reset restores the default filter state and runs one full cycle.
func (c *Controller) Reset(ctx context.Context) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	minDate, maxDate := c.catalog.Bounds()
	return c.runCycle(ctx, triggerReset, entities.DefaultFilterState(minDate, maxDate))
}

// Snapshot returns the most recent completed snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// runCycle executes one full cycle for the candidate state. Caller holds the
// lock. Never returns an error: every failure maps to a terminal snapshot
// state and the process keeps serving.
func (c *Controller) runCycle(ctx context.Context, trigger string, candidate entities.FilterState) Snapshot {
	started := time.Now()
	snap, outcome := c.computeCycle(candidate)
	duration := time.Since(started)

	c.snapshot = snap
	for _, fn := range c.listeners {
		fn(snap)
	}

	observability.RecordCycleMetric(ctx, c.metrics, trigger, outcome, snap.RowCount, duration)
	log.Debug().
		Str("trigger", trigger).
		Str("outcome", outcome).
		Int("rows", snap.RowCount).
		Dur("duration", duration).
		Msg("dashboard cycle completed")

	return snap
}

// computeCycle runs filter, aggregation and summary for the candidate state
// and assembles the snapshot. Panics inside the engines are recovered here so
// a poisoned filter combination cannot take the process down.
func (c *Controller) computeCycle(candidate entities.FilterState) (snap Snapshot, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewAggregationError("dashboard computation panicked", fmt.Errorf("%v", r))
			log.Error().Err(err).Msg("recovered dashboard cycle failure")
			c.state = candidate
			c.retained = nil
			snap = c.terminalSnapshot(TitleError, MsgError)
			outcome = outcomeError
		}
	}()

	view, err := analytics.ApplyFilters(c.table, candidate)
	if err != nil {
		return c.failCycle(candidate, err)
	}
	if view.IsEmpty() {
		c.state = candidate
		c.retained = nil
		return c.terminalSnapshot(TitleNoData, MsgNoData), outcomeEmptyResult
	}

	agg, err := analytics.Aggregate(view, candidate, c.targets)
	if err != nil {
		return c.failCycle(candidate, err)
	}
	summary := analytics.Summarize(view)

	c.state = candidate
	c.retained = view
	snap = Snapshot{
		Controls:      c.reportedControls(),
		Options:       c.currentOptions(),
		KPIs:          BuildKPICards(agg.KPIs),
		Charts:        BuildCharts(agg),
		Summary:       BuildSummaryTable(summary),
		StatusMessage: "",
		RowCount:      view.Len(),
		GeneratedAt:   time.Now().UTC(),
	}
	return snap, outcomeOK
}

// failCycle maps an engine error onto its terminal snapshot state. Invalid
// date input resets the date-bearing controls to known-good values: the date
// range to the dataset bounds and the trend view to average. Anything
// unexpected becomes the generic error state.
func (c *Controller) failCycle(candidate entities.FilterState, err error) (Snapshot, string) {
	c.retained = nil

	if apperrors.IsType(err, apperrors.ErrorTypeInvalidDateRange) {
		minDate, maxDate := c.catalog.Bounds()
		recovered := candidate
		recovered.StartDate = minDate.Format(entities.DateLayout)
		recovered.EndDate = maxDate.Format(entities.DateLayout)
		recovered.TrendView = entities.TrendViewAverage
		c.state = recovered
		return c.terminalSnapshot(TitleInvalidDateRange, MsgInvalidDateRange), outcomeInvalidDateRange
	}

	log.Error().Err(err).Msg("dashboard cycle failed")
	c.state = candidate
	return c.terminalSnapshot(TitleError, MsgError), outcomeError
}

// terminalSnapshot builds the placeholder snapshot shared by the invalid,
// empty and error states: placeholder charts, no KPI cards, header-only
// summary table.
func (c *Controller) terminalSnapshot(title, message string) Snapshot {
	return Snapshot{
		Controls:      c.reportedControls(),
		Options:       c.currentOptions(),
		KPIs:          []KPICard{},
		Charts:        PlaceholderCharts(title),
		Summary:       SummaryTable{Columns: summaryColumns},
		StatusMessage: message,
		RowCount:      0,
		GeneratedAt:   time.Now().UTC(),
	}
}

// reportedControls reflects the stored state with date values clamped into
// the dataset bounds. Wider-than-data ranges filter identically to the
// bounds, so the controls report what the view actually spans.
func (c *Controller) reportedControls() Controls {
	minDate, maxDate := c.catalog.Bounds()
	return Controls{
		Continent: c.state.Continent,
		Countries: c.state.Countries,
		Products:  c.state.Products,
		StartDate: clampDate(c.state.StartDate, minDate, maxDate),
		EndDate:   clampDate(c.state.EndDate, minDate, maxDate),
		TrendView: c.state.TrendView,
	}
}

func (c *Controller) currentOptions() Options {
	return Options{
		Continents: c.catalog.Continents,
		Countries:  c.catalog.CountryOptions(c.state.Continent),
		Products:   c.catalog.Products,
		TrendDates: c.catalog.Dates,
	}
}

func clampDate(raw string, minDate, maxDate time.Time) string {
	d, err := time.Parse(entities.DateLayout, raw)
	if err != nil {
		return raw
	}
	if d.Before(minDate) {
		return minDate.Format(entities.DateLayout)
	}
	if d.After(maxDate) {
		return maxDate.Format(entities.DateLayout)
	}
	return raw
}
