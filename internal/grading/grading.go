package grading

import (
	"strings"

	"github.com/mind-engage/quizhub/internal/quiz"
)

// Result is the outcome of grading one question.
type Result struct {
	Correct  bool
	Expected quiz.Answer
	Given    quiz.Answer
}

// Strategy grades a single question against its key entry.
type Strategy interface {
	Grade(key, given quiz.Answer) bool
}

// Grader scores a full submission against a test's answer key.
type Grader interface {
	Score(key, answers quiz.AnswerMap) float64
	GradeAll(key, answers quiz.AnswerMap) map[int]Result
}

type defaultGrader struct {
	choice   Strategy
	textPair Strategy
}

func NewDefaultGrader() Grader {
	return &defaultGrader{
		choice:   choiceStrategy{},
		textPair: textPairStrategy{},
	}
}

// Score is the percentage of key entries answered correctly. An empty key
// or empty submission scores 0.
func (g *defaultGrader) Score(key, answers quiz.AnswerMap) float64 {
	if len(key) == 0 || len(answers) == 0 {
		return 0
	}
	correct := 0
	for num, want := range key {
		if g.strategyFor(want).Grade(want, answers[num]) {
			correct++
		}
	}
	return float64(correct) / float64(len(key)) * 100
}

// GradeAll returns the per-question breakdown used by result detail views.
func (g *defaultGrader) GradeAll(key, answers quiz.AnswerMap) map[int]Result {
	out := make(map[int]Result, len(key))
	for num, want := range key {
		given := answers[num]
		out[num] = Result{
			Correct:  g.strategyFor(want).Grade(want, given),
			Expected: want,
			Given:    given,
		}
	}
	return out
}

func (g *defaultGrader) strategyFor(key quiz.Answer) Strategy {
	if key.Kind == quiz.KindTextPair {
		return g.textPair
	}
	return g.choice
}

// Comparison is case-insensitive on trimmed text on both sides, matching
// how answers were graded historically.
func norm(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

type choiceStrategy struct{}

func (choiceStrategy) Grade(key, given quiz.Answer) bool {
	if given.Choice == "" {
		return false
	}
	return norm(given.Choice) == norm(key.Choice)
}

type textPairStrategy struct{}

func (textPairStrategy) Grade(key, given quiz.Answer) bool {
	if given.Kind != quiz.KindTextPair {
		return false
	}
	return norm(given.PartA) == norm(key.PartA) && norm(given.PartB) == norm(key.PartB)
}
