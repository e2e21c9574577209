package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// noneSentinel marks absent job types and affiliate codes in the raw dataset.
const noneSentinel = "None"

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// requiredColumns must all be present in the header for the source to be usable.
var requiredColumns = []string{
	"timestamp", "continent", "country", "salesperson_id",
	"product_type", "request_type", "revenue", "purchase_flag",
}

// LoadReport summarizes what the loader kept, dropped, and coerced.
// Dropping and coercion are cleaning policy, not errors.
type LoadReport struct {
	Path                string
	TotalRows           int
	Retained            int
	DroppedBadTimestamp int
	DroppedMissingField int
	DroppedMalformed    int
	CoercedRevenue      int
	CoercedPurchaseFlag int
}

// LoadCSV reads and cleans the sales-event dataset at path. An unreadable
// file or unusable header returns a LOAD error together with an empty table
// so the caller can log and continue; per-row problems only reduce the row
// set per the report.
func LoadCSV(path string) (*Table, *LoadReport, error) {
	report := &LoadReport{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return NewTable(nil), report, apperrors.NewLoadError("failed to read dataset", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return NewTable(nil), report, apperrors.NewLoadError("failed to read dataset header", err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[normalizeHeader(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return NewTable(nil), report, apperrors.NewLoadError("dataset header missing column "+required, nil)
		}
	}

	var events []entities.SalesEvent
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.TotalRows++
			report.DroppedMalformed++
			continue
		}
		report.TotalRows++

		event, ok := parseRow(row, cols, report)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	report.Retained = len(events)
	return NewTable(events), report, nil
}

func parseRow(row []string, cols map[string]int, report *LoadReport) (entities.SalesEvent, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	ts, ok := parseTimestamp(field("timestamp"))
	if !ok {
		report.DroppedBadTimestamp++
		return entities.SalesEvent{}, false
	}

	continent := field("continent")
	country := field("country")
	salesperson := field("salesperson_id")
	product := field("product_type")
	if continent == "" || country == "" || salesperson == "" || product == "" {
		report.DroppedMissingField++
		return entities.SalesEvent{}, false
	}

	requestType := field("request_type")
	if requestType == "" {
		requestType = string(entities.RequestTypeUnknown)
	}

	revenue := 0.0
	if v, err := strconv.ParseFloat(field("revenue"), 64); err == nil && v >= 0 {
		revenue = v
	} else {
		report.CoercedRevenue++
	}

	flag, ok := parsePurchaseFlag(field("purchase_flag"))
	if !ok {
		report.CoercedPurchaseFlag++
	}

	return entities.SalesEvent{
		Timestamp:     ts,
		Continent:     continent,
		Country:       country,
		SalespersonID: salesperson,
		ProductType:   product,
		RequestType:   entities.RequestType(requestType),
		JobType:       optionalValue(field("job_type")),
		Revenue:       revenue,
		PurchaseFlag:  flag,
		AffiliateCode: optionalValue(field("affiliate_code")),
	}, true
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// parsePurchaseFlag coerces the flag to {0,1}; the second return is false
// when the raw value had to be coerced.
func parsePurchaseFlag(raw string) (int, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	switch v {
	case 0:
		return 0, true
	case 1:
		return 1, true
	default:
		return 1, false
	}
}

func optionalValue(raw string) string {
	if raw == noneSentinel {
		return ""
	}
	return raw
}

// normalizeHeader lower-cases a column name, strips unit suffixes such as
// " ($)", and snake-cases the rest, so "Revenue ($)" binds to "revenue".
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	if i := strings.Index(h, "("); i >= 0 {
		h = strings.TrimSpace(h[:i])
	}
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}
