package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"github.com/mind-engage/quizhub/internal/quiz"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	rng    *rand.Rand
	now    func() time.Time
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{
		db:     db,
		driver: driver,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

func (s *SQLStore) GenerateCode(ctx context.Context) (string, error) {
	for {
		code := randomCode(s.rng)
		var exist int
		err := s.db.QueryRowContext(ctx, `SELECT 1 FROM tests WHERE code=$1`, code).Scan(&exist)
		if errors.Is(err, sql.ErrNoRows) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *SQLStore) CreateTest(ctx context.Context, t quiz.Test) error {
	kj, err := json.Marshal(t.AnswerKey)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests (code,title,description,total_questions,answer_key_json,time_limit,active,created_at,created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		t.Code, t.Title, t.Description, t.TotalQuestions, string(kj), t.TimeLimitMin, t.Active, t.CreatedAt, t.CreatedBy)
	return err
}

func (s *SQLStore) GetTest(ctx context.Context, code string) (quiz.Test, error) {
	row := s.db.QueryRowContext(ctx, `SELECT code,title,description,total_questions,answer_key_json,time_limit,active,created_at,created_by FROM tests WHERE code=$1`, code)
	return scanTest(row)
}

func (s *SQLStore) ListTests(ctx context.Context) ([]quiz.Test, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code,title,description,total_questions,answer_key_json,time_limit,active,created_at,created_by FROM tests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []quiz.Test
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanTest(row rowScanner) (quiz.Test, error) {
	var t quiz.Test
	var kjson string
	if err := row.Scan(&t.Code, &t.Title, &t.Description, &t.TotalQuestions, &kjson, &t.TimeLimitMin, &t.Active, &t.CreatedAt, &t.CreatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Test{}, ErrTestNotFound
		}
		return quiz.Test{}, err
	}
	if err := json.Unmarshal([]byte(kjson), &t.AnswerKey); err != nil {
		return quiz.Test{}, err
	}
	return t, nil
}

func (s *SQLStore) ToggleTest(ctx context.Context, code string) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx, `SELECT active FROM tests WHERE code=$1`, code).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrTestNotFound
	}
	if err != nil {
		return false, err
	}
	active = !active
	if _, err := s.db.ExecContext(ctx, `UPDATE tests SET active=$1 WHERE code=$2`, active, code); err != nil {
		return false, err
	}
	return active, nil
}

func (s *SQLStore) DeleteTest(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tests WHERE code=$1`, code)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTestNotFound
	}
	return nil
}

func (s *SQLStore) GetOrCreateUser(ctx context.Context, id int64, name string) (quiz.User, error) {
	ts := s.now().Format(time.RFC3339)
	u, err := s.GetUser(ctx, id)
	switch {
	case err == nil:
		u.LastSeen = ts
		_, err = s.db.ExecContext(ctx, `UPDATE users SET last_seen=$1 WHERE id=$2`, ts, id)
		return u, err
	case errors.Is(err, ErrUserNotFound):
		u = quiz.User{ID: id, Name: name, Username: name, CreatedAt: ts, LastSeen: ts}
		_, err = s.db.ExecContext(ctx, `INSERT INTO users (id,name,username,created_at,last_seen,tests_taken) VALUES ($1,$2,$3,$4,$5,0)`,
			u.ID, u.Name, u.Username, u.CreatedAt, u.LastSeen)
		return u, err
	default:
		return quiz.User{}, err
	}
}

func (s *SQLStore) GetUser(ctx context.Context, id int64) (quiz.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,username,created_at,last_seen,tests_taken FROM users WHERE id=$1`, id)
	var u quiz.User
	if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.CreatedAt, &u.LastSeen, &u.TestsTaken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.User{}, ErrUserNotFound
		}
		return quiz.User{}, err
	}
	return u, nil
}

func (s *SQLStore) SaveResult(ctx context.Context, r quiz.Result) error {
	aj, err := json.Marshal(r.Answers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO results (id,user_id,test_code,answers_json,score,submitted_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		r.ID, r.UserID, r.TestCode, string(aj), r.Score, r.SubmittedAt)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET tests_taken=tests_taken+1 WHERE id=$1`, r.UserID)
	return err
}

const resultSelect = `SELECT r.id,r.user_id,r.test_code,r.answers_json,r.score,r.submitted_at,
	COALESCE(u.name,'Unknown'),COALESCE(t.title,'Unknown Test')
	FROM results r
	LEFT JOIN users u ON u.id=r.user_id
	LEFT JOIN tests t ON t.code=r.test_code`

func (s *SQLStore) GetResult(ctx context.Context, id string) (quiz.Result, error) {
	row := s.db.QueryRowContext(ctx, resultSelect+` WHERE r.id=$1`, id)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Result{}, ErrResultNotFound
	}
	return r, err
}

func (s *SQLStore) ListResults(ctx context.Context, opts ResultListOpts) ([]quiz.Result, error) {
	q := resultSelect
	var args []any
	if opts.TestCode != "" {
		q += ` WHERE r.test_code=$1`
		args = append(args, opts.TestCode)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []quiz.Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Remaining filters share the in-memory path.
	return filterResults(out, opts, s.now()), nil
}

func scanResult(row rowScanner) (quiz.Result, error) {
	var r quiz.Result
	var ajson string
	if err := row.Scan(&r.ID, &r.UserID, &r.TestCode, &ajson, &r.Score, &r.SubmittedAt, &r.UserName, &r.TestTitle); err != nil {
		return quiz.Result{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &r.Answers); err != nil {
		r.Answers = quiz.AnswerMap{}
	}
	return r, nil
}

func (s *SQLStore) GetAdmin(ctx context.Context, username string) (Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT username,password_hash,role,created_at FROM admins WHERE username=$1`, username)
	var a Admin
	if err := row.Scan(&a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrAdminNotFound
		}
		return Admin{}, err
	}
	return a, nil
}

func (s *SQLStore) PutAdmin(ctx context.Context, a Admin) error {
	if a.CreatedAt == "" {
		a.CreatedAt = s.now().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO admins (username,password_hash,role,created_at) VALUES ($1,$2,$3,$4)
		ON CONFLICT (username) DO UPDATE SET password_hash=EXCLUDED.password_hash, role=EXCLUDED.role`,
		a.Username, a.PasswordHash, a.Role, a.CreatedAt)
	return err
}

func (s *SQLStore) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var st DashboardStats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END),0) FROM tests`).
		Scan(&st.TotalTests, &st.ActiveTests); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&st.TotalUsers); err != nil {
		return st, err
	}
	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), AVG(score) FROM results`).Scan(&st.TotalSubmissions, &avg); err != nil {
		return st, err
	}
	if avg.Valid {
		st.AverageScore = roundTenth(avg.Float64)
	}
	return st, nil
}

func (s *SQLStore) DetailedStats(ctx context.Context) (DetailedStats, error) {
	ds := DetailedStats{
		ScoreDistribution: map[string]int{},
		TestPopularity:    map[string]int{},
	}
	for _, b := range ScoreBuckets {
		ds.ScoreDistribution[b] = 0
	}
	rows, err := s.db.QueryContext(ctx, `SELECT r.score, r.test_code, COALESCE(t.title,'') FROM results r LEFT JOIN tests t ON t.code=r.test_code`)
	if err != nil {
		return ds, err
	}
	defer rows.Close()
	for rows.Next() {
		var score float64
		var code, title string
		if err := rows.Scan(&score, &code, &title); err != nil {
			return ds, err
		}
		ds.ScoreDistribution[BucketFor(score)]++
		if title == "" {
			title = "Test " + code
		}
		ds.TestPopularity[title]++
	}
	return ds, rows.Err()
}
