package quiz

// Every test has the same fixed 45-question layout: 32 four-option
// multiple-choice, 3 six-option multiple-choice, 10 two-part free-text.
const (
	TotalQuestions = 45

	lastChoiceADQuestion = 32
	lastChoiceAFQuestion = 35
)

type Kind int

const (
	KindChoiceAD Kind = iota // single choice, options A-D
	KindChoiceAF             // single choice, options A-F
	KindTextPair             // free text, parts A and B
)

var (
	optionsAD = []string{"A", "B", "C", "D"}
	optionsAF = []string{"A", "B", "C", "D", "E", "F"}
)

// KindOf returns the answer shape for a question number. The shape is a
// pure function of the number; it is never inferred from data.
func KindOf(num int) Kind {
	switch {
	case num <= lastChoiceADQuestion:
		return KindChoiceAD
	case num <= lastChoiceAFQuestion:
		return KindChoiceAF
	default:
		return KindTextPair
	}
}

// OptionsFor returns the choice letters for a multiple-choice question,
// or nil for a text question.
func OptionsFor(num int) []string {
	switch KindOf(num) {
	case KindChoiceAD:
		return optionsAD
	case KindChoiceAF:
		return optionsAF
	default:
		return nil
	}
}

// Section is one of the three fixed question ranges, used for the
// per-range progress bars on the creation form.
type Section struct {
	First int
	Last  int
}

func (s Section) Size() int { return s.Last - s.First + 1 }

var Sections = []Section{
	{First: 1, Last: lastChoiceADQuestion},
	{First: lastChoiceADQuestion + 1, Last: lastChoiceAFQuestion},
	{First: lastChoiceAFQuestion + 1, Last: TotalQuestions},
}
