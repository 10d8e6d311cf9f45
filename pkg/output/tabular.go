package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/callroute/callroute/pkg/models"
)

var recordHeader = []string{"target", "route", "callers", "conditions", "entry_point"}

// WriteRecords serializes route records as delimiter-separated values.
// Pass ',' for CSV and '\t' for TSV.
func WriteRecords(w io.Writer, records []models.RouteRecord, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("failed to write record header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Target,
			fmt.Sprintf("%d", rec.Route),
			strings.Join(rec.Callers, " -> "),
			strings.Join(rec.Conditions, "; "),
			rec.EntryPoint,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}
