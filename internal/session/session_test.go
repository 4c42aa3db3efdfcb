package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/quizhub/internal/alert"
	"github.com/mind-engage/quizhub/internal/quiz"
)

type fakeBackend struct {
	mu sync.Mutex

	test      quiz.Test
	validErr  error
	submitErr error
	score     float64

	submitted quiz.AnswerMap
	submits   int
}

func (f *fakeBackend) ValidateCode(_ context.Context, code string, userID int64) (quiz.Test, error) {
	if f.validErr != nil {
		return quiz.Test{}, f.validErr
	}
	return f.test, nil
}

func (f *fakeBackend) SubmitTest(_ context.Context, userID int64, code string, answers quiz.AnswerMap) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits++
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	f.submitted = answers
	return f.score, nil
}

func (f *fakeBackend) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

func testUser() quiz.User {
	return quiz.User{ID: 3, Name: "Jo"}
}

func startedSession(t *testing.T, b *fakeBackend, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithNotifier(alert.Discard())}, opts...)
	s := New(b, testUser(), opts...)
	require.NoError(t, s.EnterCode(context.Background(), "654321"))
	require.NoError(t, s.Begin())
	return s
}

func TestEnterCodeValidation(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321", Title: "Biology Final"}}
	s := New(b, testUser(), WithNotifier(alert.Discard()))

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		err := s.EnterCode(context.Background(), code)
		assert.ErrorIs(t, err, ErrBadCode, "code %q", code)
		assert.Equal(t, ScreenCodeEntry, s.Screen())
	}

	require.NoError(t, s.EnterCode(context.Background(), " 654321 "))
	assert.Equal(t, ScreenInstructions, s.Screen())
	assert.Equal(t, "Biology Final", s.Test().Title)
}

func TestEnterCodeServerRejection(t *testing.T) {
	b := &fakeBackend{validErr: errors.New("Invalid or inactive test code")}
	var got string
	s := New(b, testUser(), WithNotifier(alert.Func(func(_ alert.Level, msg string) { got = msg })))

	err := s.EnterCode(context.Background(), "111111")
	require.Error(t, err)
	assert.Equal(t, "Invalid or inactive test code", got)
	assert.Equal(t, ScreenCodeEntry, s.Screen())
}

func TestAnswerRecordingAndRestore(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321"}}
	s := startedSession(t, b)

	require.NoError(t, s.SelectChoice(1, "C"))
	require.NoError(t, s.SelectChoice(1, "B")) // overwrite
	assert.Equal(t, "B", s.Answer(1).Choice)

	// extended-choice range accepts E and F
	require.NoError(t, s.SelectChoice(33, "F"))
	assert.Error(t, s.SelectChoice(1, "F"), "F is not valid for questions 1-32")
	assert.Error(t, s.SelectChoice(40, "A"), "question 40 is text-entry")

	require.NoError(t, s.SetTextPart(36, "A", "  x=5 "))
	assert.False(t, s.Answered(36), "one part is not answered")
	require.NoError(t, s.SetTextPart(36, "B", "y=7"))
	assert.Equal(t, "x=5", s.Answer(36).PartA)
	assert.True(t, s.Answered(36))

	// reads must not mutate: checking an unanswered question leaves it blank
	_ = s.Answer(20)
	assert.False(t, s.Answered(20))
	assert.Equal(t, 3, s.AnsweredCount())
	assert.InDelta(t, 100.0*3/45, s.Progress(), 0.01)
}

func TestNavigation(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321"}}
	s := startedSession(t, b)

	assert.Equal(t, 1, s.CurrentQuestion())
	s.Prev() // no-op on the first question
	assert.Equal(t, 1, s.CurrentQuestion())

	assert.True(t, s.Next())
	assert.Equal(t, 2, s.CurrentQuestion())
	s.Prev()
	assert.Equal(t, 1, s.CurrentQuestion())

	require.NoError(t, s.Jump(44))
	assert.Equal(t, 45, s.CurrentQuestion())
	assert.False(t, s.Next(), "last question should not advance")
	assert.Equal(t, 45, s.CurrentQuestion())

	assert.Error(t, s.Jump(45))
	assert.Error(t, s.Jump(-1))

	require.NoError(t, s.SelectChoice(45, "A"))
	assert.Equal(t, StatusCurrent, s.QuestionStatus(45))
	require.NoError(t, s.Jump(0))
	assert.Equal(t, StatusAnswered, s.QuestionStatus(45))
	assert.Equal(t, StatusBlank, s.QuestionStatus(2))
}

func TestSubmitSendsOnlyAnswered(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321"}, score: 87.5}
	s := startedSession(t, b)

	require.NoError(t, s.SelectChoice(1, "A"))
	require.NoError(t, s.SetTextPart(36, "A", "p"))

	require.NoError(t, s.Submit(context.Background()))
	assert.Equal(t, ScreenResults, s.Screen())
	assert.Equal(t, 87.5, s.Score())
	assert.Equal(t, "B", s.Grade())

	require.Len(t, b.submitted, 1)
	assert.Equal(t, "A", b.submitted[1].Choice)
	_, half := b.submitted[36]
	assert.False(t, half, "half-answered text question must be omitted")
}

func TestSubmitFailureReturnsToTest(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321"}, submitErr: errors.New("Invalid test code")}
	var got string
	s := startedSession(t, b, WithNotifier(alert.Func(func(_ alert.Level, msg string) { got = msg })))

	require.NoError(t, s.SelectChoice(1, "A"))
	err := s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid test code", got)
	assert.Equal(t, ScreenInProgress, s.Screen())
	assert.Equal(t, "A", s.Answer(1).Choice, "answers survive a failed submit")
}

func TestTimedAutoSubmit(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321", TimeLimitMin: 1}, score: 100}
	s := New(b, testUser(),
		WithNotifier(alert.Discard()),
		WithTickInterval(100*time.Microsecond),
		WithAutoSubmitDelay(time.Millisecond))
	require.NoError(t, s.EnterCode(context.Background(), "654321"))
	require.NoError(t, s.Begin())
	require.NoError(t, s.SelectChoice(1, "D"))

	deadline := time.After(2 * time.Second)
	for s.Screen() != ScreenResults {
		select {
		case <-deadline:
			t.Fatal("timer expiry never auto-submitted")
		case <-time.After(time.Millisecond):
		}
	}
	assert.Equal(t, 1, b.submitCount())
	assert.Equal(t, "D", b.submitted[1].Choice)
}

func TestAbandonStopsTimer(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321", TimeLimitMin: 1}}
	s := New(b, testUser(),
		WithNotifier(alert.Discard()),
		WithTickInterval(time.Millisecond),
		WithAutoSubmitDelay(time.Millisecond))
	require.NoError(t, s.EnterCode(context.Background(), "654321"))
	require.NoError(t, s.Begin())
	assert.Greater(t, s.Remaining(), 0)

	s.Abandon()
	assert.Equal(t, ScreenCodeEntry, s.Screen())
	assert.Equal(t, -1, s.Remaining())

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, b.submitCount(), "stopped timer must not submit")
}

func TestTimerStartsAtFullDuration(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321", TimeLimitMin: 45}}
	// an hour-long tick so nothing decrements during the assertion
	s := New(b, testUser(),
		WithNotifier(alert.Discard()),
		WithTickInterval(time.Hour))
	require.NoError(t, s.EnterCode(context.Background(), "654321"))
	require.NoError(t, s.Begin())
	defer s.Abandon()

	assert.Equal(t, 45*60, s.Remaining())
}

func TestUntimedTest(t *testing.T) {
	b := &fakeBackend{test: quiz.Test{Code: "654321", TimeLimitMin: 0}}
	s := startedSession(t, b)
	assert.Equal(t, -1, s.Remaining())
}
