package dashboard

import (
	"time"

	"github.com/al-solutions/salesdash/internal/dataset"
	"github.com/al-solutions/salesdash/internal/domain/entities"
)

// evt builds a March-2024 test event.
func evt(day, hour int, continent, country, salesperson, product string, rt entities.RequestType, jobType string, revenue float64, flag int) entities.SalesEvent {
	return entities.SalesEvent{
		Timestamp:     time.Date(2024, time.March, day, hour, 30, 0, 0, time.UTC),
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

// europeTable is a small Europe-only fixture spanning 2024-03-01..2024-03-02.
func europeTable() *dataset.Table {
	events := []entities.SalesEvent{
		evt(1, 10, "Europe", "Germany", "SP001", "Virtual Assistant Suite", entities.RequestTypeDemo, "", 150, 1),
		evt(1, 14, "Europe", "France", "SP002", "AI-Powered CRM", entities.RequestTypePromo, "", 0, 0),
		evt(2, 9, "Europe", "Germany", "SP001", "Virtual Assistant Suite", entities.RequestTypeJob, "software_dev", 200, 1),
		evt(2, 16, "Europe", "France", "SP003", "AI-Powered CRM", entities.RequestTypeAIAssist, "", 0, 0),
	}
	return dataset.NewTable(events)
}

// newTestController wires a controller over the Europe fixture without
// metrics.
func newTestController() *Controller {
	table := europeTable()
	catalog := dataset.BuildCatalog(table)
	return NewController(table, catalog, entities.DefaultTargets(), nil)
}

func strPtr(s string) *string {
	return &s
}

func strsPtr(values ...string) *[]string {
	return &values
}
