package synthetic

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/al-solutions/salesdash/internal/domain/entities"
)

const affiliatePoolSize = 100

// continentWeights drive the regional mix of generated events. Countries are
// picked uniformly within the chosen continent.
var continentWeights = []struct {
	name   string
	weight float64
}{
	{"North America", 0.35},
	{"Europe", 0.25},
	{"Asia", 0.20},
	{"Africa", 0.10},
	{"South America", 0.05},
	{"Oceania", 0.05},
}

var countriesByContinent = map[string][]string{
	"North America": {"USA", "Canada", "Mexico"},
	"Europe":        {"UK", "Germany", "France", "Italy", "Spain"},
	"Asia":          {"Japan", "China", "India", "UAE", "South Korea"},
	"Africa": {
		"South Africa", "Nigeria", "Kenya", "Egypt", "Ghana",
		"Ethiopia", "Algeria", "Uganda", "Morocco", "Tanzania",
	},
	"South America": {"Brazil", "Argentina"},
	"Oceania":       {"Australia", "New Zealand"},
}

var salespeople = []string{"SP001", "SP002", "SP003", "SP004", "SP005", "SP006"}

var productTypes = []string{
	"AI-Powered CRM",
	"Virtual Assistant Suite",
	"Predictive Analytics Platform",
	"Automated Workflow Engine",
}

var requestTypes = []entities.RequestType{
	entities.RequestTypeDemo,
	entities.RequestTypeAIAssist,
	entities.RequestTypePromo,
	entities.RequestTypeJob,
}

var jobTypes = []string{"software_dev", "prototyping", "consulting"}

// csvHeader matches the production dataset schema, unit suffix included.
var csvHeader = []string{
	"timestamp", "country", "continent", "salesperson_id", "product_type",
	"request_type", "job_type", "status_code", "affiliate_code",
	"revenue ($)", "purchase_flag",
}

// Row is one generated dataset line. StatusCode exists only for output
// fidelity with the production feed; the loader drops it.
type Row struct {
	entities.SalesEvent
	StatusCode int
}

// Generator produces schema-conforming sales events from a seeded source, so
// the same seed and date span always yield the same dataset.
type Generator struct {
	rng        *rand.Rand
	affiliates []string
	start      time.Time
	end        time.Time
}

// New builds a generator for the given seed and inclusive date span. The
// affiliate pool is drawn once here; every generated row samples from it.
func New(seed int64, start, end time.Time) *Generator {
	rng := rand.New(rand.NewSource(seed))

	affiliates := make([]string, affiliatePoolSize)
	for i := range affiliates {
		affiliates[i] = fmt.Sprintf("AF%03d", rng.Intn(1000))
	}

	return &Generator{
		rng:        rng,
		affiliates: affiliates,
		start:      start,
		end:        end,
	}
}

// Rows generates n dataset rows.
func (g *Generator) Rows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, g.row())
	}
	return rows
}

func (g *Generator) row() Row {
	continent := g.continent()
	country := g.choice(countriesByContinent[continent])
	requestType := requestTypes[g.rng.Intn(len(requestTypes))]

	jobType := ""
	if requestType == entities.RequestTypeJob {
		jobType = g.choice(jobTypes)
	}

	affiliate := ""
	if g.rng.Float64() < 0.30 {
		affiliate = g.choice(g.affiliates)
	}

	// Only demos and job placements convert, and most of those stay free.
	revenue := 0.0
	if requestType == entities.RequestTypeDemo || requestType == entities.RequestTypeJob {
		if g.rng.Float64() < 0.30 {
			revenue = math.Round((100+g.rng.Float64()*200)*100) / 100
		}
	}

	purchaseFlag := 0
	if revenue > 0 && g.rng.Float64() < 0.5 {
		purchaseFlag = 1
	}

	statusCode := 200
	if g.rng.Float64() >= 0.9 {
		statusCode = 404
	}

	return Row{
		SalesEvent: entities.SalesEvent{
			Timestamp:     g.timestamp(),
			Continent:     continent,
			Country:       country,
			SalespersonID: g.choice(salespeople),
			ProductType:   g.choice(productTypes),
			RequestType:   requestType,
			JobType:       jobType,
			Revenue:       revenue,
			PurchaseFlag:  purchaseFlag,
			AffiliateCode: affiliate,
		},
		StatusCode: statusCode,
	}
}

func (g *Generator) continent() string {
	r := g.rng.Float64()
	for _, c := range continentWeights {
		if r < c.weight {
			return c.name
		}
		r -= c.weight
	}
	return continentWeights[len(continentWeights)-1].name
}

func (g *Generator) choice(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// timestamp picks a uniform day across the span, then a uniform time of day.
func (g *Generator) timestamp() time.Time {
	days := int(g.end.Sub(g.start).Hours() / 24)
	day := g.start.AddDate(0, 0, g.rng.Intn(days+1))
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		g.rng.Intn(24), g.rng.Intn(60), g.rng.Intn(60),
		0, time.UTC,
	)
}

// WriteCSV emits rows in the production dataset format: header with the
// "revenue ($)" unit column, None sentinels for absent job and affiliate
// values, and second-resolution timestamps.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Country,
			r.Continent,
			r.SalespersonID,
			r.ProductType,
			string(r.RequestType),
			orNone(r.JobType),
			strconv.Itoa(r.StatusCode),
			orNone(r.AffiliateCode),
			strconv.FormatFloat(r.Revenue, 'f', 2, 64),
			strconv.Itoa(r.PurchaseFlag),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func orNone(v string) string {
	if v == "" {
		return "None"
	}
	return v
}
