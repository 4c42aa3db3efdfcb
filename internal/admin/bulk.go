package admin

import (
	"context"
	"fmt"
	"log"

	"github.com/mind-engage/quizhub/internal/alert"
)

// BulkResult summarizes one bulk toggle pass.
type BulkResult struct {
	Toggled int
	Failed  []string // codes that errored, in attempt order
}

// BulkToggle flips each selected test one at a time, in order, and keeps
// going past individual failures so one bad code does not strand the
// rest of the batch.
func BulkToggle(ctx context.Context, api TestsAPI, codes []string, n alert.Notifier) BulkResult {
	if n == nil {
		n = alert.Log()
	}
	var res BulkResult
	for _, code := range codes {
		if err := api.ToggleTest(ctx, code); err != nil {
			log.Printf("bulk toggle %s: %v", code, err)
			res.Failed = append(res.Failed, code)
			continue
		}
		res.Toggled++
	}
	switch {
	case len(res.Failed) == 0 && res.Toggled > 0:
		n.Notify(alert.Success, fmt.Sprintf("Toggled %d test(s)", res.Toggled))
	case len(res.Failed) > 0:
		n.Notify(alert.Warning, fmt.Sprintf("Toggled %d test(s), %d failed", res.Toggled, len(res.Failed)))
	}
	return res
}

// ToggleSelected runs a bulk toggle over the checked rows, then reloads
// the table and clears the selection so the view reflects the new state.
func (t *Table) ToggleSelected(ctx context.Context, n alert.Notifier) (BulkResult, error) {
	res := BulkToggle(ctx, t.api, t.SelectedCodes(), n)
	t.ClearSelection()
	if err := t.Load(ctx); err != nil {
		return res, err
	}
	return res, nil
}
