package quiz

// LetterGrade maps a percentage score to its display grade. Scoring itself
// happens server-side; this is presentation only.
func LetterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// GradeColor is the badge color class used when rendering a grade.
func GradeColor(grade string) string {
	switch grade {
	case "A":
		return "success"
	case "B":
		return "info"
	case "C":
		return "warning"
	case "F":
		return "danger"
	default:
		return "secondary"
	}
}
