package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/al-solutions/salesdash/internal/domain/entities"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

func TestExportSummary_BeforeAnyCycle(t *testing.T) {
	c := newTestController()

	export, err := c.ExportSummary(context.Background())
	if export != nil {
		t.Error("got a report before any cycle ran")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeExport) {
		t.Errorf("error = %v, want export error", err)
	}
}

func TestExportSummary_AfterEmptyResult(t *testing.T) {
	c := newTestController()
	c.Refresh(context.Background())
	c.Update(context.Background(), entities.FilterPatch{Continent: strPtr("Asia")})

	if _, err := c.ExportSummary(context.Background()); !apperrors.IsType(err, apperrors.ErrorTypeExport) {
		t.Errorf("error = %v, want export error after empty result", err)
	}
}

func TestExportSummary_MatchesLiveSummary(t *testing.T) {
	c := newTestController()
	snap := c.Refresh(context.Background())

	export, err := c.ExportSummary(context.Background())
	if err != nil {
		t.Fatalf("ExportSummary returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(export.Content)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("record count = %d, want header + 4 rows", len(records))
	}

	header := records[0]
	wantHeader := []string{"Metric", "Mean", "Median", "Std Dev"}
	for i, col := range wantHeader {
		if header[i] != col {
			t.Errorf("header[%d] = %q, want %q", i, header[i], col)
		}
	}

	for i, row := range snap.Summary.Rows {
		record := records[i+1]
		if record[0] != row.Metric {
			t.Errorf("row %d metric = %q, want %q", i, record[0], row.Metric)
		}
		wantMean := strconv.FormatFloat(row.Mean, 'f', 2, 64)
		wantMedian := strconv.FormatFloat(row.Median, 'f', 2, 64)
		wantStd := strconv.FormatFloat(row.StdDev, 'f', 2, 64)
		if record[1] != wantMean || record[2] != wantMedian || record[3] != wantStd {
			t.Errorf("row %q = %v, want [%s %s %s]", row.Metric, record[1:], wantMean, wantMedian, wantStd)
		}
	}
}

func TestExportSummary_UsesRetainedRows(t *testing.T) {
	c := newTestController()
	c.Refresh(context.Background())
	c.Update(context.Background(), entities.FilterPatch{Countries: strsPtr("Germany")})

	export, err := c.ExportSummary(context.Background())
	if err != nil {
		t.Fatalf("ExportSummary returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(export.Content)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}

	// Germany rows: one demo on 03-01, one job placement on 03-02. Daily demo
	// counts [1,0] give mean 0.50, median 0.50, sample std 0.71.
	var demoRow []string
	for _, r := range records[1:] {
		if r[0] == "Demo Requests" {
			demoRow = r
		}
	}
	if demoRow == nil {
		t.Fatal("no Demo Requests row in report")
	}
	if demoRow[1] != "0.50" || demoRow[2] != "0.50" || demoRow[3] != "0.71" {
		t.Errorf("Demo Requests stats = %v, want [0.50 0.50 0.71]", demoRow[1:])
	}
}

func TestExportSummary_FilenameAndID(t *testing.T) {
	c := newTestController()
	c.Refresh(context.Background())

	export, err := c.ExportSummary(context.Background())
	if err != nil {
		t.Fatalf("ExportSummary returned error: %v", err)
	}

	if !strings.HasPrefix(export.Filename, "summary_stats_report_") {
		t.Errorf("filename = %q, want summary_stats_report_ prefix", export.Filename)
	}
	if !strings.HasSuffix(export.Filename, ".csv") {
		t.Errorf("filename = %q, want .csv suffix", export.Filename)
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(export.Filename, "summary_stats_report_"), ".csv")
	if _, err := time.Parse("20060102_150405", stamp); err != nil {
		t.Errorf("filename timestamp %q does not parse: %v", stamp, err)
	}

	if _, err := uuid.Parse(export.ID); err != nil {
		t.Errorf("report ID %q is not a UUID: %v", export.ID, err)
	}
}
