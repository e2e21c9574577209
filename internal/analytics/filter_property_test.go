package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
)

var (
	propContinents = []string{"Europe", "Asia", "North America"}
	propCountries  = map[string][]string{
		"Europe":        {"Germany", "France", "Spain"},
		"Asia":          {"Japan", "India"},
		"North America": {"USA", "Canada"},
	}
	propProducts = []string{"AI-Powered CRM", "Virtual Assistant Suite", "Predictive Analytics Platform"}
	propRequests = []entities.RequestType{
		entities.RequestTypeDemo, entities.RequestTypeAIAssist,
		entities.RequestTypePromo, entities.RequestTypeJob,
	}
)

// randomTable builds a deterministic table from a seed: up to 120 rows over
// March 2024 across the small domains above.
func randomTable(seed int64) *dataset.Table {
	rng := rand.New(rand.NewSource(seed))
	n := rng.Intn(120)
	events := make([]entities.SalesEvent, 0, n)
	for i := 0; i < n; i++ {
		continent := propContinents[rng.Intn(len(propContinents))]
		countries := propCountries[continent]
		rt := propRequests[rng.Intn(len(propRequests))]
		jobType := ""
		if rt == entities.RequestTypeJob {
			jobType = "consulting"
		}
		events = append(events, entities.SalesEvent{
			Timestamp: time.Date(2024, 3, 1+rng.Intn(28), rng.Intn(24), 0, 0, 0, time.UTC),
			Continent: continent,
			Country:   countries[rng.Intn(len(countries))],
			SalespersonID: []string{"SP001", "SP002", "SP003"}[rng.Intn(3)],
			ProductType:   propProducts[rng.Intn(len(propProducts))],
			RequestType:   rt,
			JobType:       jobType,
			Revenue:       float64(rng.Intn(300)),
			PurchaseFlag:  rng.Intn(2),
		})
	}
	return dataset.NewTable(events)
}

// randomState builds a deterministic filter state from a seed. Roughly half
// the dimensions stay unrestricted.
func randomState(seed int64) entities.FilterState {
	rng := rand.New(rand.NewSource(seed))
	state := entities.FilterState{
		StartDate: time.Date(2024, 3, 1+rng.Intn(14), 0, 0, 0, 0, time.UTC).Format(entities.DateLayout),
		TrendView: entities.TrendViewAverage,
	}
	state.EndDate = time.Date(2024, 3, 15+rng.Intn(14), 0, 0, 0, 0, time.UTC).Format(entities.DateLayout)

	if rng.Intn(2) == 0 {
		state.Continent = propContinents[rng.Intn(len(propContinents))]
	}
	if rng.Intn(2) == 0 {
		continent := state.Continent
		if continent == "" {
			continent = propContinents[rng.Intn(len(propContinents))]
		}
		pool := propCountries[continent]
		state.Countries = pool[:1+rng.Intn(len(pool))]
	}
	if rng.Intn(2) == 0 {
		state.Products = propProducts[:1+rng.Intn(len(propProducts))]
	}
	return state
}

func TestProperty_FilteredViewIsSubset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every filtered row exists in the base table", prop.ForAll(
		func(tableSeed, stateSeed int64) bool {
			table := randomTable(tableSeed)
			state := randomState(stateSeed)

			view, err := ApplyFilters(table, state)
			if err != nil {
				return false
			}
			if view.Len() > table.Len() {
				return false
			}

			base := make(map[entities.SalesEvent]int, table.Len())
			for _, e := range table.Events() {
				base[e]++
			}
			for _, e := range view.Events() {
				if base[e] == 0 {
					return false
				}
				base[e]--
			}
			return true
		},
		gen.Int64Range(0, 1<<30),
		gen.Int64Range(0, 1<<30),
	))

	properties.TestingRun(t)
}

func TestProperty_FilteringIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("reapplying the same filters returns the identical view", prop.ForAll(
		func(tableSeed, stateSeed int64) bool {
			table := randomTable(tableSeed)
			state := randomState(stateSeed)

			once, err := ApplyFilters(table, state)
			if err != nil {
				return false
			}
			twice, err := ApplyFilters(once, state)
			if err != nil {
				return false
			}
			return tablesEqual(once, twice)
		},
		gen.Int64Range(0, 1<<30),
		gen.Int64Range(0, 1<<30),
	))

	properties.TestingRun(t)
}

func TestProperty_ConjunctionOrderIndependence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// one state per dimension; applying them successively in any order must
	// land on the same row set as the combined state in one pass
	properties.Property("dimension application order does not change the result", prop.ForAll(
		func(tableSeed, stateSeed int64, orderSeed int64) bool {
			table := randomTable(tableSeed)
			state := randomState(stateSeed)

			combined, err := ApplyFilters(table, state)
			if err != nil {
				return false
			}

			fullRange := dataset.BuildCatalog(table)
			minDate, maxDate := fullRange.Bounds()
			if table.IsEmpty() {
				minDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
				maxDate = time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC)
			}
			wide := entities.DefaultFilterState(minDate, maxDate)

			steps := []entities.FilterState{
				{Continent: state.Continent, StartDate: wide.StartDate, EndDate: wide.EndDate},
				{Countries: state.Countries, StartDate: wide.StartDate, EndDate: wide.EndDate},
				{Products: state.Products, StartDate: wide.StartDate, EndDate: wide.EndDate},
				{StartDate: state.StartDate, EndDate: state.EndDate},
			}

			order := rand.New(rand.NewSource(orderSeed)).Perm(len(steps))
			view := table
			for _, idx := range order {
				view, err = ApplyFilters(view, steps[idx])
				if err != nil {
					return false
				}
			}
			return tablesEqual(combined, view)
		},
		gen.Int64Range(0, 1<<30),
		gen.Int64Range(0, 1<<30),
		gen.Int64Range(0, 1<<30),
	))

	properties.TestingRun(t)
}
