package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mind-engage/quizhub/internal/quiz"
)

func testStore(t *testing.T) *memoryStore {
	t.Helper()
	m := NewInMemoryStore().(*memoryStore)
	// deterministic clock
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	return m
}

func TestGenerateCodeShape(t *testing.T) {
	m := testStore(t)
	code, err := m.GenerateCode(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("code %q: want 6 digits", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("code %q contains non-digit", code)
		}
	}
}

func TestTestLifecycle(t *testing.T) {
	ctx := context.Background()
	m := testStore(t)

	tt := quiz.Test{
		Code:           "123456",
		Title:          "Algebra Midterm",
		TotalQuestions: 2,
		AnswerKey: quiz.AnswerMap{
			1:  quiz.ChoiceAnswer(1, "A"),
			36: quiz.TextAnswer("x", "y"),
		},
		Active:    true,
		CreatedAt: m.now().Format(time.RFC3339),
	}
	if err := m.CreateTest(ctx, tt); err != nil {
		t.Fatal(err)
	}
	if err := m.CreateTest(ctx, tt); !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("duplicate create: got %v", err)
	}

	got, err := m.GetTest(ctx, "123456")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Algebra Midterm" || got.AnswerKey[36].PartB != "y" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	active, err := m.ToggleTest(ctx, "123456")
	if err != nil || active {
		t.Fatalf("toggle: active=%v err=%v, want false", active, err)
	}
	active, _ = m.ToggleTest(ctx, "123456")
	if !active {
		t.Fatal("second toggle should re-activate")
	}

	if err := m.DeleteTest(ctx, "123456"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.GetTest(ctx, "123456"); !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("after delete: got %v", err)
	}
	if _, err := m.ToggleTest(ctx, "999999"); !errors.Is(err, ErrTestNotFound) {
		t.Fatalf("toggle missing: got %v", err)
	}
}

func TestResultsAndStats(t *testing.T) {
	ctx := context.Background()
	m := testStore(t)

	_ = m.CreateTest(ctx, quiz.Test{Code: "111111", Title: "Physics", Active: true})
	_, _ = m.GetOrCreateUser(ctx, 3, "Jo")

	results := []quiz.Result{
		{ID: "r1", UserID: 3, TestCode: "111111", Score: 87.5, SubmittedAt: "2024-06-01T10:00:00Z"},
		{ID: "r2", UserID: 3, TestCode: "111111", Score: 15, SubmittedAt: "2024-05-01T10:00:00Z"},
		{ID: "r3", UserID: 7, TestCode: "222222", Score: 55, SubmittedAt: "2024-06-01T11:00:00Z"},
	}
	for _, r := range results {
		if err := m.SaveResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	u, _ := m.GetUser(ctx, 3)
	if u.TestsTaken != 2 {
		t.Errorf("tests_taken = %d, want 2", u.TestsTaken)
	}

	got, err := m.GetResult(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if got.UserName != "Jo" || got.TestTitle != "Physics" {
		t.Errorf("enrichment: %+v", got)
	}

	byTest, _ := m.ListResults(ctx, ResultListOpts{TestCode: "111111"})
	if len(byTest) != 2 || byTest[0].ID != "r1" {
		t.Errorf("test filter / newest-first: %+v", byTest)
	}

	byScore, _ := m.ListResults(ctx, ResultListOpts{ScoreRange: "81-100"})
	if len(byScore) != 1 || byScore[0].ID != "r1" {
		t.Errorf("score filter: %+v", byScore)
	}

	bySearch, _ := m.ListResults(ctx, ResultListOpts{Search: "jo"})
	if len(bySearch) != 2 {
		t.Errorf("search filter: %+v", bySearch)
	}

	byDate, _ := m.ListResults(ctx, ResultListOpts{DateRange: "today"})
	if len(byDate) != 2 {
		t.Errorf("today filter: %+v", byDate)
	}

	stats, _ := m.DashboardStats(ctx)
	if stats.TotalSubmissions != 3 || stats.ActiveTests != 1 {
		t.Errorf("dashboard stats: %+v", stats)
	}
	if stats.AverageScore != 52.5 {
		t.Errorf("average = %v, want 52.5", stats.AverageScore)
	}

	ds, _ := m.DetailedStats(ctx)
	if ds.ScoreDistribution["81-100"] != 1 || ds.ScoreDistribution["0-20"] != 1 || ds.ScoreDistribution["41-60"] != 1 {
		t.Errorf("distribution: %+v", ds.ScoreDistribution)
	}
	if ds.TestPopularity["Physics"] != 2 || ds.TestPopularity["Test 222222"] != 1 {
		t.Errorf("popularity: %+v", ds.TestPopularity)
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "0-20"}, {20, "0-20"}, {20.5, "21-40"}, {40, "21-40"},
		{60, "41-60"}, {80, "61-80"}, {81, "81-100"}, {100, "81-100"},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.score); got != tt.want {
			t.Errorf("BucketFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
