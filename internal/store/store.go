package store

import (
	"context"
	"errors"

	"github.com/mind-engage/quizhub/internal/quiz"
)

var (
	ErrTestNotFound   = errors.New("test not found")
	ErrResultNotFound = errors.New("result not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrAdminNotFound  = errors.New("admin not found")
	ErrCodeTaken      = errors.New("test code already in use")
)

type Admin struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ResultListOpts mirrors the query parameters of the results page; all
// filtering is server-side.
type ResultListOpts struct {
	TestCode   string // exact code
	ScoreRange string // histogram bucket, e.g. "61-80"
	DateRange  string // today|week|month
	Search     string // case-insensitive substring on student name
	Limit      int    // 0 = no limit
}

type DashboardStats struct {
	TotalTests       int     `json:"total_tests"`
	ActiveTests      int     `json:"active_tests"`
	TotalUsers       int     `json:"total_users"`
	TotalSubmissions int     `json:"total_submissions"`
	AverageScore     float64 `json:"average_score"`
}

// DetailedStats feeds the dashboard charts.
type DetailedStats struct {
	ScoreDistribution map[string]int `json:"score_distribution"`
	TestPopularity    map[string]int `json:"test_popularity"`
}

type Store interface {
	// Tests
	GenerateCode(ctx context.Context) (string, error)
	CreateTest(ctx context.Context, t quiz.Test) error
	GetTest(ctx context.Context, code string) (quiz.Test, error)
	ListTests(ctx context.Context) ([]quiz.Test, error)
	ToggleTest(ctx context.Context, code string) (bool, error)
	DeleteTest(ctx context.Context, code string) error

	// Users
	GetOrCreateUser(ctx context.Context, id int64, name string) (quiz.User, error)
	GetUser(ctx context.Context, id int64) (quiz.User, error)

	// Results
	SaveResult(ctx context.Context, r quiz.Result) error
	GetResult(ctx context.Context, id string) (quiz.Result, error)
	ListResults(ctx context.Context, opts ResultListOpts) ([]quiz.Result, error)

	// Admins
	GetAdmin(ctx context.Context, username string) (Admin, error)
	PutAdmin(ctx context.Context, a Admin) error

	// Stats
	DashboardStats(ctx context.Context) (DashboardStats, error)
	DetailedStats(ctx context.Context) (DetailedStats, error)
}
