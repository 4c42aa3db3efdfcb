package quiz

import (
	"encoding/json"
	"testing"
)

func TestKindAndOptionsPerRange(t *testing.T) {
	for num := 1; num <= TotalQuestions; num++ {
		kind := KindOf(num)
		opts := OptionsFor(num)
		switch {
		case num <= 32:
			if kind != KindChoiceAD || len(opts) != 4 || opts[0] != "A" || opts[3] != "D" {
				t.Fatalf("question %d: want choice A-D, got kind=%v opts=%v", num, kind, opts)
			}
		case num <= 35:
			if kind != KindChoiceAF || len(opts) != 6 || opts[5] != "F" {
				t.Fatalf("question %d: want choice A-F, got kind=%v opts=%v", num, kind, opts)
			}
		default:
			if kind != KindTextPair || opts != nil {
				t.Fatalf("question %d: want text pair, got kind=%v opts=%v", num, kind, opts)
			}
		}
	}
}

func TestAnswered(t *testing.T) {
	tests := []struct {
		name string
		ans  Answer
		want bool
	}{
		{"choice made", ChoiceAnswer(5, "C"), true},
		{"no choice", Answer{Kind: KindChoiceAD}, false},
		{"both parts", TextAnswer("x", "y"), true},
		{"only part A", TextAnswer("x", ""), false},
		{"only part B", TextAnswer("", "y"), false},
		{"whitespace parts", TextAnswer("  ", "\t"), false},
		{"zero value", Answer{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ans.Answered(); got != tt.want {
				t.Errorf("Answered() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressOrderIndependent(t *testing.T) {
	forward := AnswerMap{}
	backward := AnswerMap{}
	nums := []int{3, 17, 33, 40, 45}
	for _, n := range nums {
		forward[n] = answerFor(n)
	}
	for i := len(nums) - 1; i >= 0; i-- {
		backward[nums[i]] = answerFor(nums[i])
	}

	if f, b := forward.Progress(1, TotalQuestions), backward.Progress(1, TotalQuestions); f != b {
		t.Fatalf("progress depends on answer order: %v vs %v", f, b)
	}
	want := 100 * 5.0 / 45.0
	if got := forward.Progress(1, TotalQuestions); got != want {
		t.Fatalf("Progress = %v, want %v", got, want)
	}
	if got := forward.Progress(33, 35); got != 100*1.0/3.0 {
		t.Fatalf("section progress = %v", got)
	}
}

func TestSubmittableOmitsUnanswered(t *testing.T) {
	m := AnswerMap{
		1:  ChoiceAnswer(1, "A"),
		2:  {Kind: KindChoiceAD}, // touched but not answered
		36: TextAnswer("left", ""),
		37: TextAnswer("left", "right"),
	}
	out := m.Submittable()
	if len(out) != 2 {
		t.Fatalf("Submittable() kept %d entries, want 2: %v", len(out), out)
	}
	if _, ok := out[2]; ok {
		t.Error("unanswered choice included")
	}
	if _, ok := out[36]; ok {
		t.Error("half-filled text pair included")
	}
}

func TestAnswerMapWireShape(t *testing.T) {
	m := AnswerMap{
		7:  ChoiceAnswer(7, "B"),
		40: TextAnswer("alpha", "beta"),
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["7"]) != `"B"` {
		t.Errorf("choice answer wire form = %s, want bare letter", raw["7"])
	}
	var tp struct{ A, B string }
	if err := json.Unmarshal(raw["40"], &tp); err != nil || tp.A != "alpha" || tp.B != "beta" {
		t.Errorf("text answer wire form = %s", raw["40"])
	}

	var back AnswerMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back[7].Choice != "B" || back[7].Kind != KindChoiceAD {
		t.Errorf("choice round-trip = %+v", back[7])
	}
	if back[40].Kind != KindTextPair || back[40].PartB != "beta" {
		t.Errorf("text round-trip = %+v", back[40])
	}
}

func TestLetterGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {85, "B"}, {72, "C"}, {65, "D"}, {40, "F"},
		{90, "A"}, {80, "B"}, {70, "C"}, {60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := LetterGrade(tt.score); got != tt.want {
			t.Errorf("LetterGrade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestGradeColor(t *testing.T) {
	tests := []struct {
		grade string
		want  string
	}{
		{"A", "success"}, {"B", "info"}, {"C", "warning"},
		{"D", "secondary"}, {"F", "danger"},
	}
	for _, tt := range tests {
		if got := GradeColor(tt.grade); got != tt.want {
			t.Errorf("GradeColor(%q) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}

func answerFor(num int) Answer {
	if KindOf(num) == KindTextPair {
		return TextAnswer("a", "b")
	}
	return ChoiceAnswer(num, "A")
}
