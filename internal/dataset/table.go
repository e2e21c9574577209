package dataset

import (
	"sort"
	"time"

	"github.com/al-solutions/salesdash/internal/domain/entities"
)

// Table is an immutable set of cleaned sales events. The base table is built
// once at load; filtered views are fresh Tables over copied rows. Callers
// must not modify the slice returned by Events.
type Table struct {
	events []entities.SalesEvent
}

// NewTable wraps events in a Table. The caller hands over ownership.
func NewTable(events []entities.SalesEvent) *Table {
	return &Table{events: events}
}

// Events returns the rows in load order.
func (t *Table) Events() []entities.SalesEvent {
	return t.events
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.events)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return len(t.events) == 0
}

// Catalog holds the option sets and date bounds derived from the base table.
// Built once at load; control-surface options and date-field resets read
// from it.
type Catalog struct {
	Continents           []string
	Products             []string
	Dates                []string // ISO dates present in the data, sorted
	MinDate              time.Time
	MaxDate              time.Time
	countriesByContinent map[string][]string
	allCountries         []string
}

// BuildCatalog derives the catalog from a table. An empty table yields empty
// option sets and zero date bounds.
func BuildCatalog(t *Table) Catalog {
	continents := make(map[string]struct{})
	countries := make(map[string]map[string]struct{})
	products := make(map[string]struct{})
	dates := make(map[string]struct{})

	var minDate, maxDate time.Time
	for _, e := range t.Events() {
		continents[e.Continent] = struct{}{}
		if countries[e.Continent] == nil {
			countries[e.Continent] = make(map[string]struct{})
		}
		countries[e.Continent][e.Country] = struct{}{}
		products[e.ProductType] = struct{}{}

		d := e.Date()
		dates[d.Format(entities.DateLayout)] = struct{}{}
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
	}

	byContinent := make(map[string][]string, len(countries))
	allSet := make(map[string]struct{})
	for continent, set := range countries {
		byContinent[continent] = sortedKeys(set)
		for c := range set {
			allSet[c] = struct{}{}
		}
	}

	return Catalog{
		Continents:           sortedKeys(continents),
		Products:             sortedKeys(products),
		Dates:                sortedKeys(dates),
		MinDate:              minDate,
		MaxDate:              maxDate,
		countriesByContinent: byContinent,
		allCountries:         sortedKeys(allSet),
	}
}

// CountryOptions returns the valid country choices for a continent, or all
// countries when no continent is selected. Unknown continents yield no
// options.
func (c Catalog) CountryOptions(continent string) []string {
	if continent == "" {
		return c.allCountries
	}
	return c.countriesByContinent[continent]
}

// Bounds returns the dataset's [min_date, max_date].
func (c Catalog) Bounds() (time.Time, time.Time) {
	return c.MinDate, c.MaxDate
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
