package quiz

type Test struct {
	Code           string    `json:"code"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	TotalQuestions int       `json:"total_questions"`
	AnswerKey      AnswerMap `json:"answer_key,omitempty"`
	TimeLimitMin   int       `json:"time_limit,omitempty"` // minutes, 0 = untimed
	Active         bool      `json:"active"`
	CreatedAt      string    `json:"created_at,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// WithoutKey strips the answer key for student-facing responses.
func (t Test) WithoutKey() Test {
	t.AnswerKey = nil
	return t
}

type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	CreatedAt  string `json:"created_at,omitempty"`
	LastSeen   string `json:"last_seen,omitempty"`
	TestsTaken int    `json:"tests_taken"`
}

type Result struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	TestCode    string    `json:"test_code"`
	Answers     AnswerMap `json:"answers"`
	Score       float64   `json:"score"`
	SubmittedAt string    `json:"submitted_at"`

	// Filled in for listings; not stored.
	UserName  string `json:"user_name,omitempty"`
	TestTitle string `json:"test_title,omitempty"`
}
