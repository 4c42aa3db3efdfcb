package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Answer is the tagged variant for a single question: either a choice
// letter or a two-part text pair. The zero value is "not answered".
type Answer struct {
	Kind   Kind
	Choice string
	PartA  string
	PartB  string
}

func ChoiceAnswer(num int, letter string) Answer {
	return Answer{Kind: KindOf(num), Choice: letter}
}

func TextAnswer(a, b string) Answer {
	return Answer{Kind: KindTextPair, PartA: a, PartB: b}
}

// Answered reports whether the answer counts as given: a non-empty choice,
// or both text parts non-empty after trimming whitespace.
func (a Answer) Answered() bool {
	if a.Kind == KindTextPair {
		return strings.TrimSpace(a.PartA) != "" && strings.TrimSpace(a.PartB) != ""
	}
	return a.Choice != ""
}

type textPair struct {
	A string `json:"A"`
	B string `json:"B"`
}

// MarshalJSON keeps the legacy wire shape: a bare letter string for
// choice answers, {"A":...,"B":...} for text answers.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Kind == KindTextPair {
		return json.Marshal(textPair{A: a.PartA, B: a.PartB})
	}
	return json.Marshal(a.Choice)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var tp textPair
		if err := json.Unmarshal(data, &tp); err != nil {
			return err
		}
		*a = Answer{Kind: KindTextPair, PartA: tp.A, PartB: tp.B}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Answer{Kind: KindChoiceAD, Choice: s}
	return nil
}

// AnswerMap maps question numbers to answers. It serializes with decimal
// string keys ("1".."45") to match the JSON the endpoints exchange.
type AnswerMap map[int]Answer

func (m AnswerMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]Answer, len(m))
	for num, ans := range m {
		out[strconv.Itoa(num)] = ans
	}
	return json.Marshal(out)
}

func (m *AnswerMap) UnmarshalJSON(data []byte) error {
	var raw map[string]Answer
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AnswerMap, len(raw))
	for k, ans := range raw {
		num, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("answer key %q: not a question number", k)
		}
		// Re-tag choice answers with the range-correct kind.
		if ans.Kind != KindTextPair {
			ans.Kind = KindOf(num)
		}
		out[num] = ans
	}
	*m = out
	return nil
}

// AnsweredCount counts answered questions within [first,last].
func (m AnswerMap) AnsweredCount(first, last int) int {
	n := 0
	for num := first; num <= last; num++ {
		if m[num].Answered() {
			n++
		}
	}
	return n
}

// Progress is the answered percentage over [first,last], 0..100.
func (m AnswerMap) Progress(first, last int) float64 {
	size := last - first + 1
	if size <= 0 {
		return 0
	}
	return 100 * float64(m.AnsweredCount(first, last)) / float64(size)
}

// Submittable returns only the answered entries, the exact payload shape
// the submit endpoint expects.
func (m AnswerMap) Submittable() AnswerMap {
	out := make(AnswerMap, len(m))
	for num, ans := range m {
		if ans.Answered() {
			out[num] = ans
		}
	}
	return out
}
