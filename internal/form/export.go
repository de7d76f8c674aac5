package form

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportFilename derives the download name for a form's submissions.
func ExportFilename(title string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(title, "_")) + "_submissions.csv"
}

// WriteCSV writes one row per submission: the submission id, its time, then
// one column per field in field order. Values of fields that were added after
// a submission was made come out empty.
func WriteCSV(w io.Writer, fields []Field, subs []Submission) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(fields)+2)
	header = append(header, "Submission ID", "Submitted At")
	for _, f := range fields {
		header = append(header, f.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, s := range subs {
		row := make([]string, 0, len(header))
		row = append(row, s.ID, s.SubmittedAt.UTC().Format(time.RFC3339))
		for _, f := range fields {
			var cell string
			if v, ok := s.Data[f.ID]; ok {
				cell = v.String()
			}
			row = append(row, cell)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", s.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
