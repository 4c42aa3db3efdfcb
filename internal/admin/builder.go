package admin

import (
	"errors"
	"strings"

	"github.com/mind-engage/quizhub/internal/client"
	"github.com/mind-engage/quizhub/internal/quiz"
)

var ErrIncompleteForm = errors.New("title and at least one answer are required")

// Builder accumulates the create-test form: metadata plus the answer key
// entered question by question. Only questions with a usable entry end
// up in the key; the rest are simply absent.
type Builder struct {
	Title       string
	Description string
	TimeLimit   int // minutes, 0 = untimed
	Active      bool

	key quiz.AnswerMap
}

func NewBuilder() *Builder {
	return &Builder{Active: true, key: quiz.AnswerMap{}}
}

// SetChoice records the key letter for a multiple-choice question. An
// empty letter clears the entry.
func (b *Builder) SetChoice(num int, letter string) error {
	opts := quiz.OptionsFor(num)
	if opts == nil {
		return errors.New("not a multiple-choice question")
	}
	if letter == "" {
		delete(b.key, num)
		return nil
	}
	for _, o := range opts {
		if o == letter {
			b.key[num] = quiz.ChoiceAnswer(num, letter)
			return nil
		}
	}
	return errors.New("invalid option letter")
}

// SetTextKey records both parts of a text question's key. Clearing both
// parts removes the entry.
func (b *Builder) SetTextKey(num int, partA, partB string) error {
	if quiz.KindOf(num) != quiz.KindTextPair {
		return errors.New("not a text-entry question")
	}
	partA, partB = strings.TrimSpace(partA), strings.TrimSpace(partB)
	if partA == "" && partB == "" {
		delete(b.key, num)
		return nil
	}
	b.key[num] = quiz.TextAnswer(partA, partB)
	return nil
}

func (b *Builder) Key(num int) quiz.Answer { return b.key[num] }

// SectionProgress reports filled and total key slots for one section of
// the fixed layout; it feeds the per-section progress bars.
func (b *Builder) SectionProgress(sec quiz.Section) (filled, total int) {
	total = sec.Last - sec.First + 1
	filled = b.key.AnsweredCount(sec.First, sec.Last)
	return filled, total
}

// Build validates the form and produces the create request. The key may
// be partial; unkeyed questions are not scored.
func (b *Builder) Build() (client.CreateTestInput, error) {
	title := strings.TrimSpace(b.Title)
	if title == "" || len(b.key.Submittable()) == 0 {
		return client.CreateTestInput{}, ErrIncompleteForm
	}
	return client.CreateTestInput{
		Title:       title,
		Description: strings.TrimSpace(b.Description),
		TimeLimit:   b.TimeLimit,
		Active:      b.Active,
		AnswerKey:   b.key.Submittable(),
	}, nil
}

// Reset clears everything back to a fresh form.
func (b *Builder) Reset() {
	*b = Builder{Active: true, key: quiz.AnswerMap{}}
}
