package audit

import (
	"context"
	"fmt"
	"log"

	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

// auditedStore decorates a store.Store, recording every mutation that
// an admin or student performs. Reads pass straight through.
type auditedStore struct {
	store.Store
	rec Recorder
}

// Wrap returns a store that records mutations to rec.
func Wrap(st store.Store, rec Recorder) store.Store {
	return &auditedStore{Store: st, rec: rec}
}

func (a *auditedStore) record(ctx context.Context, action, subject, detail string) {
	if err := a.rec.Record(ctx, Event{Action: action, Subject: subject, Detail: detail}); err != nil {
		log.Printf("audit %s %s: %v", action, subject, err)
	}
}

func (a *auditedStore) CreateTest(ctx context.Context, t quiz.Test) error {
	if err := a.Store.CreateTest(ctx, t); err != nil {
		return err
	}
	a.record(ctx, "test_created", t.Code, t.Title)
	return nil
}

func (a *auditedStore) ToggleTest(ctx context.Context, code string) (bool, error) {
	active, err := a.Store.ToggleTest(ctx, code)
	if err != nil {
		return false, err
	}
	a.record(ctx, "test_toggled", code, fmt.Sprintf("active=%t", active))
	return active, nil
}

func (a *auditedStore) DeleteTest(ctx context.Context, code string) error {
	if err := a.Store.DeleteTest(ctx, code); err != nil {
		return err
	}
	a.record(ctx, "test_deleted", code, "")
	return nil
}

func (a *auditedStore) SaveResult(ctx context.Context, r quiz.Result) error {
	if err := a.Store.SaveResult(ctx, r); err != nil {
		return err
	}
	a.record(ctx, "result_submitted", r.ID,
		fmt.Sprintf("test=%s user=%d score=%.1f", r.TestCode, r.UserID, r.Score))
	return nil
}
