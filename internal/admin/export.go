package admin

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mind-engage/quizhub/internal/quiz"
)

// ExportAPI is the slice of the client the exporter needs.
type ExportAPI interface {
	ExportResults(ctx context.Context, code string) ([]quiz.Result, error)
}

// Export writes one test's results as CSV. Every field is wrapped in
// double quotes, with embedded quotes doubled, so names containing
// commas or quotes survive the round trip.
type Export struct {
	TestCode string
	Results  []quiz.Result
}

func NewExport(ctx context.Context, api ExportAPI, code string) (*Export, error) {
	results, err := api.ExportResults(ctx, code)
	if err != nil {
		return nil, err
	}
	return &Export{TestCode: code, Results: results}, nil
}

func (e *Export) Filename() string {
	return fmt.Sprintf("test_%s_results.csv", e.TestCode)
}

var csvHeader = []string{"Student Name", "User ID", "Score", "Submitted Date"}

func (e *Export) WriteCSV(w io.Writer) error {
	if err := writeRow(w, csvHeader); err != nil {
		return err
	}
	for _, r := range e.Results {
		row := []string{
			r.UserName,
			strconv.FormatInt(r.UserID, 10),
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			exportDate(r.SubmittedAt),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}

// exportDate reduces the stored timestamp to its calendar date; a value
// that is not RFC 3339 passes through untouched.
func exportDate(submittedAt string) string {
	ts, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return submittedAt
	}
	return ts.Format("2006-01-02")
}
