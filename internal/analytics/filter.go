package analytics

import (
	"time"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// ApplyFilters derives the filtered view for a filter state. The predicates
// conjoin, so one pass over the table gives the same result as any
// application order. A view with zero rows is returned as-is; mapping it to
// the empty-result terminal state is the caller's job.
func ApplyFilters(table *dataset.Table, state entities.FilterState) (*dataset.Table, error) {
	start, end, err := parseDateRange(state.StartDate, state.EndDate)
	if err != nil {
		return nil, err
	}

	countries := toSet(state.Countries)
	products := toSet(state.Products)

	filtered := make([]entities.SalesEvent, 0, table.Len())
	for _, e := range table.Events() {
		if state.Continent != "" && e.Continent != state.Continent {
			continue
		}
		if len(countries) > 0 && !countries[e.Country] {
			continue
		}
		if len(products) > 0 && !products[e.ProductType] {
			continue
		}
		d := e.Date()
		if d.Before(start) || d.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}

	return dataset.NewTable(filtered), nil
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(entities.DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateRangeError("start date " + startRaw + " is not a valid date")
	}
	end, err := time.Parse(entities.DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateRangeError("end date " + endRaw + " is not a valid date")
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.NewInvalidDateRangeError("start date after end date")
	}
	return start, end, nil
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
