package audit

import (
	"context"
	"testing"

	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

type memRecorder struct{ events []Event }

func (m *memRecorder) Record(_ context.Context, e Event) error {
	m.events = append(m.events, e)
	return nil
}

func TestWrapRecordsMutations(t *testing.T) {
	ctx := context.Background()
	rec := &memRecorder{}
	st := Wrap(store.NewInMemoryStore(), rec)

	err := st.CreateTest(ctx, quiz.Test{
		Code:      "654321",
		Title:     "Biology Final",
		AnswerKey: quiz.AnswerMap{1: quiz.ChoiceAnswer(1, "B")},
		Active:    true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.ToggleTest(ctx, "654321"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetOrCreateUser(ctx, 3, "Jo"); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveResult(ctx, quiz.Result{ID: "r1", UserID: 3, TestCode: "654321"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"test_created", "test_toggled", "result_submitted"}
	if len(rec.events) != len(want) {
		t.Fatalf("got %d events, want %d", len(rec.events), len(want))
	}
	for i, action := range want {
		if rec.events[i].Action != action {
			t.Fatalf("event %d: got %s, want %s", i, rec.events[i].Action, action)
		}
	}
	if rec.events[1].Detail != "active=false" {
		t.Fatalf("toggle detail: %q", rec.events[1].Detail)
	}
}

func TestWrapSkipsFailedMutations(t *testing.T) {
	ctx := context.Background()
	rec := &memRecorder{}
	st := Wrap(store.NewInMemoryStore(), rec)

	if err := st.DeleteTest(ctx, "999999"); err == nil {
		t.Fatal("expected error deleting missing test")
	}
	if len(rec.events) != 0 {
		t.Fatalf("failed mutation must not be recorded, got %v", rec.events)
	}
}
