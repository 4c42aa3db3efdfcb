// Package session drives a student's test-taking flow: code entry,
// instructions, question navigation with in-memory answers, the countdown,
// and submission. All state lives in one Session owned by the caller;
// nothing is persisted locally, so abandoning the session loses progress.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/mind-engage/quizhub/internal/alert"
	"github.com/mind-engage/quizhub/internal/quiz"
)

type Screen int

const (
	ScreenCodeEntry Screen = iota
	ScreenInstructions
	ScreenInProgress
	ScreenSubmitting
	ScreenResults
)

func (s Screen) String() string {
	switch s {
	case ScreenCodeEntry:
		return "codeEntry"
	case ScreenInstructions:
		return "instructions"
	case ScreenInProgress:
		return "inProgress"
	case ScreenSubmitting:
		return "submitting"
	case ScreenResults:
		return "results"
	default:
		return "unknown"
	}
}

// QuestionStatus styles the navigation buttons.
type QuestionStatus int

const (
	StatusBlank QuestionStatus = iota
	StatusCurrent
	StatusAnswered
)

// Backend is what the session needs from the server. *client.Client
// satisfies it.
type Backend interface {
	ValidateCode(ctx context.Context, code string, userID int64) (quiz.Test, error)
	SubmitTest(ctx context.Context, userID int64, code string, answers quiz.AnswerMap) (float64, error)
}

var (
	ErrBadCode     = errors.New("test code must be exactly 6 digits")
	ErrWrongScreen = errors.New("operation not valid on this screen")
)

type Session struct {
	mu sync.Mutex

	backend  Backend
	notifier alert.Notifier
	user     quiz.User

	screen  Screen
	test    quiz.Test
	current int // 0-based question index
	answers quiz.AnswerMap
	timer   *Countdown
	score   float64
	busy    bool

	tickInterval time.Duration
	submitDelay  time.Duration // pause between "time is up" and auto-submit
}

type Option func(*Session)

func WithNotifier(n alert.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithTickInterval shortens the timer tick; tests use it.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

func WithAutoSubmitDelay(d time.Duration) Option {
	return func(s *Session) { s.submitDelay = d }
}

func New(backend Backend, user quiz.User, opts ...Option) *Session {
	s := &Session{
		backend:      backend,
		notifier:     alert.Log(),
		user:         user,
		screen:       ScreenCodeEntry,
		tickInterval: time.Second,
		submitDelay:  2 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) Test() quiz.Test {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.test
}

// EnterCode validates the code format locally, then against the server.
// On success the session shows the instructions screen.
func (s *Session) EnterCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !validCode(code) {
		s.notifier.Notify(alert.Warning, "Please enter a 6-digit test code.")
		return ErrBadCode
	}

	release := s.beginBusy()
	defer release()

	test, err := s.backend.ValidateCode(ctx, code, s.user.ID)
	if err != nil {
		log.Printf("validate test code: %v", err)
		s.notifier.Notify(alert.Danger, err.Error())
		return err
	}

	s.mu.Lock()
	s.test = test
	s.screen = ScreenInstructions
	s.mu.Unlock()
	return nil
}

func validCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Begin starts the test: empty answer state, question 1, and the
// countdown if the test is timed.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenInstructions {
		return ErrWrongScreen
	}
	s.answers = quiz.AnswerMap{}
	s.current = 0
	s.screen = ScreenInProgress

	if s.test.TimeLimitMin > 0 {
		s.timer = NewCountdown(s.test.TimeLimitMin*60, s.tickInterval)
		s.timer.OnWarn(func() {
			s.notifier.Notify(alert.Warning, "5 minutes remaining!")
		})
		s.timer.OnExpire(s.handleExpire)
		s.timer.Start()
	}
	return nil
}

func (s *Session) handleExpire() {
	s.notifier.Notify(alert.Warning, "Time is up! Automatically submitting your test...")
	time.AfterFunc(s.submitDelay, func() {
		if err := s.Submit(context.Background()); err != nil {
			log.Printf("auto-submit: %v", err)
		}
	})
}

// Remaining reports timer seconds left; -1 when the test is untimed.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer == nil {
		return -1
	}
	return s.timer.Remaining()
}

// CurrentQuestion is the 1-based number of the question on screen.
func (s *Session) CurrentQuestion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current + 1
}

// SelectChoice records a multiple-choice answer, overwriting any prior
// selection for that question.
func (s *Session) SelectChoice(num int, letter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenInProgress {
		return ErrWrongScreen
	}
	opts := quiz.OptionsFor(num)
	if opts == nil {
		return fmt.Errorf("question %d takes text answers", num)
	}
	valid := false
	for _, o := range opts {
		if o == letter {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("question %d has no option %q", num, letter)
	}
	s.answers[num] = quiz.ChoiceAnswer(num, letter)
	return nil
}

// SetTextPart records one part of a two-part text answer, preserving the
// other part. Values are stored trimmed.
func (s *Session) SetTextPart(num int, part string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenInProgress {
		return ErrWrongScreen
	}
	if quiz.KindOf(num) != quiz.KindTextPair {
		return fmt.Errorf("question %d takes a choice answer", num)
	}
	ans := s.answers[num]
	ans.Kind = quiz.KindTextPair
	switch part {
	case "A":
		ans.PartA = strings.TrimSpace(value)
	case "B":
		ans.PartB = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown part %q", part)
	}
	s.answers[num] = ans
	return nil
}

// Answer returns the stored answer for a question so a re-rendered view
// can restore it exactly.
func (s *Session) Answer(num int) quiz.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers[num]
}

func (s *Session) Answered(num int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers[num].Answered()
}

func (s *Session) AnsweredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.AnsweredCount(1, quiz.TotalQuestions)
}

// Progress is the overall answered percentage, recomputed on demand.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Progress(1, quiz.TotalQuestions)
}

func (s *Session) QuestionStatus(num int) QuestionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if num == s.current+1 {
		return StatusCurrent
	}
	if s.answers[num].Answered() {
		return StatusAnswered
	}
	return StatusBlank
}

// Prev moves to the previous question; a no-op on question 1.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen == ScreenInProgress && s.current > 0 {
		s.current--
	}
}

// Next advances and reports whether it moved. On the last question it
// stays put and returns false: the caller should open the submission
// confirmation instead.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenInProgress || s.current >= quiz.TotalQuestions-1 {
		return false
	}
	s.current++
	return true
}

// Jump navigates straight to a question (0-based index).
func (s *Session) Jump(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenInProgress {
		return ErrWrongScreen
	}
	if index < 0 || index >= quiz.TotalQuestions {
		return fmt.Errorf("question index %d out of range", index)
	}
	s.current = index
	return nil
}

// Submit sends the answered subset to the server. On success the session
// shows results; on failure it returns to in-progress with the timer left
// stopped if it already expired.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.screen != ScreenInProgress {
		s.mu.Unlock()
		return ErrWrongScreen
	}
	s.screen = ScreenSubmitting
	payload := s.answers.Submittable()
	code := s.test.Code
	s.mu.Unlock()

	release := s.beginBusy()
	defer release()

	score, err := s.backend.SubmitTest(ctx, s.user.ID, code, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("submit test: %v", err)
		s.notifier.Notify(alert.Danger, err.Error())
		s.screen = ScreenInProgress
		return err
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.score = score
	s.screen = ScreenResults
	return nil
}

// Abandon drops the session back to code entry, releasing the timer so no
// stray tick fires afterwards.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.screen = ScreenCodeEntry
	s.test = quiz.Test{}
	s.answers = nil
	s.current = 0
}

func (s *Session) Score() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Grade() string {
	return quiz.LetterGrade(s.Score())
}

// beginBusy flags the loading state and returns its release; callers
// defer the release so every exit path clears it.
func (s *Session) beginBusy() func() {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}
}
