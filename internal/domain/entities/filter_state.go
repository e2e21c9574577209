package entities

import (
	"time"
)

// DateLayout is the wire format for filter dates and trend-view dates.
const DateLayout = "2006-01-02"

// TrendViewAverage selects the hourly trend aggregated over the whole
// filtered date range; any other value is a specific calendar date.
const TrendViewAverage = "average"

// FilterState holds the active dashboard filter selections. Dates travel as
// strings exactly as the control surface delivers them; parsing and
// validation belong to the filter engine. The zero values mean "no
// restriction" for continent, countries, and products.
type FilterState struct {
	Continent string   `json:"continent"`
	Countries []string `json:"countries"`
	Products  []string `json:"products"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	TrendView string   `json:"trend_view"`
}

// DefaultFilterState returns the reset-state selections: everything
// unrestricted, date range spanning the dataset bounds, average trend view.
func DefaultFilterState(minDate, maxDate time.Time) FilterState {
	return FilterState{
		StartDate: minDate.Format(DateLayout),
		EndDate:   maxDate.Format(DateLayout),
		TrendView: TrendViewAverage,
	}
}

// FilterPatch carries a filter-change trigger: nil fields are untouched,
// non-nil fields replace the corresponding FilterState value. An explicit
// empty slice clears a multi-select.
type FilterPatch struct {
	Continent *string   `json:"continent,omitempty"`
	Countries *[]string `json:"countries,omitempty"`
	Products  *[]string `json:"products,omitempty"`
	StartDate *string   `json:"start_date,omitempty"`
	EndDate   *string   `json:"end_date,omitempty"`
	TrendView *string   `json:"trend_view,omitempty"`
}

// Apply returns a copy of s with the patch's non-nil fields replaced.
// Slices are copied so no caller aliases the stored state.
func (s FilterState) Apply(p FilterPatch) FilterState {
	next := s
	next.Countries = cloneStrings(s.Countries)
	next.Products = cloneStrings(s.Products)

	if p.Continent != nil {
		next.Continent = *p.Continent
	}
	if p.Countries != nil {
		next.Countries = cloneStrings(*p.Countries)
	}
	if p.Products != nil {
		next.Products = cloneStrings(*p.Products)
	}
	if p.StartDate != nil {
		next.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		next.EndDate = *p.EndDate
	}
	if p.TrendView != nil {
		next.TrendView = *p.TrendView
	}
	return next
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
