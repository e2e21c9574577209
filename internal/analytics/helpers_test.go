package analytics

import (
	"math"
	"time"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// evt builds a test row. day is an ISO date, hour the hour-of-day.
func evt(day string, hour int, continent, country, salesperson, product string, rt entities.RequestType, jobType string, revenue float64, flag int) entities.SalesEvent {
	d, err := time.Parse(entities.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return entities.SalesEvent{
		Timestamp:     time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC),
		Continent:     continent,
		Country:       country,
		SalespersonID: salesperson,
		ProductType:   product,
		RequestType:   rt,
		JobType:       jobType,
		Revenue:       revenue,
		PurchaseFlag:  flag,
	}
}

func fullRangeState(start, end string) entities.FilterState {
	return entities.FilterState{
		StartDate: start,
		EndDate:   end,
		TrendView: entities.TrendViewAverage,
	}
}

func tablesEqual(a, b *dataset.Table) bool {
	if a.Len() != b.Len() {
		return false
	}
	rowsA, rowsB := a.Events(), b.Events()
	for i := range rowsA {
		if rowsA[i] != rowsB[i] {
			return false
		}
	}
	return true
}

// mixedTable spans two continents, three countries, two products, and three
// dates, with a bit of everything the aggregators look at.
func mixedTable() *dataset.Table {
	return dataset.NewTable([]entities.SalesEvent{
		evt("2024-03-01", 10, "Europe", "Germany", "SP001", "AI-Powered CRM", entities.RequestTypeDemo, "", 150, 1),
		evt("2024-03-01", 10, "Europe", "Germany", "SP002", "Virtual Assistant Suite", entities.RequestTypeDemo, "", 0, 0),
		evt("2024-03-01", 14, "Europe", "France", "SP001", "AI-Powered CRM", entities.RequestTypePromo, "", 0, 0),
		evt("2024-03-02", 9, "Asia", "Japan", "SP002", "AI-Powered CRM", entities.RequestTypeAIAssist, "", 0, 0),
		evt("2024-03-02", 9, "Asia", "Japan", "SP003", "Virtual Assistant Suite", entities.RequestTypeJob, "consulting", 200, 1),
		evt("2024-03-03", 23, "Asia", "India", "SP003", "AI-Powered CRM", entities.RequestTypeJob, "software_dev", 0, 0),
		evt("2024-03-03", 0, "Europe", "France", "SP002", "AI-Powered CRM", entities.RequestTypeUnknown, "", 120, 1),
	})
}
