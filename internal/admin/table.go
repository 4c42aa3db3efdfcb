package admin

import (
	"context"
	"strings"

	"github.com/mind-engage/quizhub/internal/quiz"
)

// TestsAPI is the slice of the client the test table and bulk toggler
// need.
type TestsAPI interface {
	ListTests(ctx context.Context) ([]quiz.Test, error)
	ToggleTest(ctx context.Context, code string) error
	DeleteTest(ctx context.Context, code string) error
}

type StatusFilter string

const (
	StatusAll      StatusFilter = ""
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// Table manages the admin test list: the loaded rows, the search and
// status filters, and per-row checkbox selection keyed by test code.
type Table struct {
	api TestsAPI

	tests    []quiz.Test
	search   string
	status   StatusFilter
	selected map[string]bool
}

func NewTable(api TestsAPI) *Table {
	return &Table{api: api, selected: map[string]bool{}}
}

func (t *Table) Load(ctx context.Context) error {
	tests, err := t.api.ListTests(ctx)
	if err != nil {
		return err
	}
	t.tests = tests
	// drop selections for tests that no longer exist
	present := make(map[string]bool, len(tests))
	for _, tt := range tests {
		present[tt.Code] = true
	}
	for code := range t.selected {
		if !present[code] {
			delete(t.selected, code)
		}
	}
	return nil
}

func (t *Table) SetSearch(q string)       { t.search = q }
func (t *Table) SetStatus(s StatusFilter) { t.status = s }

// Rows applies both filters: case-insensitive substring on the title and
// exact match on active status.
func (t *Table) Rows() []quiz.Test {
	needle := strings.ToLower(strings.TrimSpace(t.search))
	out := make([]quiz.Test, 0, len(t.tests))
	for _, tt := range t.tests {
		if needle != "" && !strings.Contains(strings.ToLower(tt.Title), needle) {
			continue
		}
		switch t.status {
		case StatusActive:
			if !tt.Active {
				continue
			}
		case StatusInactive:
			if tt.Active {
				continue
			}
		}
		out = append(out, tt)
	}
	return out
}

func (t *Table) Select(code string, on bool) {
	if on {
		t.selected[code] = true
	} else {
		delete(t.selected, code)
	}
}

func (t *Table) Selected(code string) bool { return t.selected[code] }

// SelectAll checks or clears every visible row, mirroring the header
// checkbox.
func (t *Table) SelectAll(on bool) {
	for _, row := range t.Rows() {
		t.Select(row.Code, on)
	}
}

// AllSelected reports whether every visible row is checked; it drives
// the header checkbox state in the other direction.
func (t *Table) AllSelected() bool {
	rows := t.Rows()
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !t.selected[row.Code] {
			return false
		}
	}
	return true
}

// SelectedCodes returns the checked codes in table order.
func (t *Table) SelectedCodes() []string {
	codes := make([]string, 0, len(t.selected))
	for _, tt := range t.tests {
		if t.selected[tt.Code] {
			codes = append(codes, tt.Code)
		}
	}
	return codes
}

func (t *Table) ClearSelection() {
	t.selected = map[string]bool{}
}
