package dashboard

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/al-solutions/salesdash/internal/analytics"
	"github.com/al-solutions/salesdash/internal/infrastructure/observability"
	apperrors "github.com/al-solutions/salesdash/pkg/errors"
)

// Export is one rendered summary report.
type Export struct {
	ID       string
	Filename string
	Content  []byte
}

// ExportSummary renders the summary statistics of the retained row set as a
// CSV report. Independent of the cycle triggers: it recomputes from the rows
// the last successful cycle retained. With nothing retained (no successful
// cycle yet, or the last one failed or matched zero rows) it returns an
// export error and no file.
func (c *Controller) ExportSummary(ctx context.Context) (*Export, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.retained == nil || c.retained.IsEmpty() {
		observability.RecordExportMetric(ctx, c.metrics, "empty")
		log.Debug().Msg("summary export requested with no retained rows")
		return nil, apperrors.NewExportError("no filtered rows available for export")
	}

	summary := analytics.Summarize(c.retained)
	content, err := renderSummaryCSV(summary)
	if err != nil {
		observability.RecordExportMetric(ctx, c.metrics, "error")
		return nil, apperrors.NewExportError("rendering summary report failed")
	}

	export := &Export{
		ID:       uuid.New().String(),
		Filename: "summary_stats_report_" + time.Now().UTC().Format("20060102_150405") + ".csv",
		Content:  content,
	}

	observability.RecordExportMetric(ctx, c.metrics, "ok")
	log.Info().
		Str("report_id", export.ID).
		Str("filename", export.Filename).
		Int("rows", c.retained.Len()).
		Msg("summary report exported")

	return export, nil
}

func renderSummaryCSV(summary *analytics.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(summaryColumns); err != nil {
		return nil, err
	}
	for _, row := range summary.Rows {
		record := []string{
			row.Metric,
			strconv.FormatFloat(row.Mean, 'f', 2, 64),
			strconv.FormatFloat(row.Median, 'f', 2, 64),
			strconv.FormatFloat(row.StdDev, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
