package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mind-engage/quizhub/internal/quiz"
)

type memoryStore struct {
	mu      sync.RWMutex
	rng     *rand.Rand
	tests   map[string]quiz.Test
	users   map[int64]quiz.User
	results []quiz.Result
	admins  map[string]Admin
	now     func() time.Time
}

func NewInMemoryStore() Store {
	return &memoryStore{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		tests:  map[string]quiz.Test{},
		users:  map[int64]quiz.User{},
		admins: map[string]Admin{},
		now:    time.Now,
	}
}

func (m *memoryStore) GenerateCode(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		code := randomCode(m.rng)
		if _, taken := m.tests[code]; !taken {
			return code, nil
		}
	}
}

func (m *memoryStore) CreateTest(ctx context.Context, t quiz.Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tests[t.Code]; exists {
		return ErrCodeTaken
	}
	m.tests[t.Code] = t
	return nil
}

func (m *memoryStore) GetTest(ctx context.Context, code string) (quiz.Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[code]
	if !ok {
		return quiz.Test{}, ErrTestNotFound
	}
	return t, nil
}

func (m *memoryStore) ListTests(ctx context.Context) ([]quiz.Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]quiz.Test, 0, len(m.tests))
	for _, t := range m.tests {
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryStore) ToggleTest(ctx context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tests[code]
	if !ok {
		return false, ErrTestNotFound
	}
	t.Active = !t.Active
	m.tests[code] = t
	return t.Active, nil
}

func (m *memoryStore) DeleteTest(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tests[code]; !ok {
		return ErrTestNotFound
	}
	delete(m.tests, code)
	return nil
}

func (m *memoryStore) GetOrCreateUser(ctx context.Context, id int64, name string) (quiz.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.now().Format(time.RFC3339)
	u, ok := m.users[id]
	if !ok {
		u = quiz.User{ID: id, Name: name, Username: name, CreatedAt: ts}
	}
	u.LastSeen = ts
	m.users[id] = u
	return u, nil
}

func (m *memoryStore) GetUser(ctx context.Context, id int64) (quiz.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return quiz.User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryStore) SaveResult(ctx context.Context, r quiz.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	if u, ok := m.users[r.UserID]; ok {
		u.TestsTaken++
		m.users[r.UserID] = u
	}
	return nil
}

func (m *memoryStore) GetResult(ctx context.Context, id string) (quiz.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.results {
		if r.ID == id {
			return m.enrich(r), nil
		}
	}
	return quiz.Result{}, ErrResultNotFound
}

func (m *memoryStore) ListResults(ctx context.Context, opts ResultListOpts) ([]quiz.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	enriched := make([]quiz.Result, 0, len(m.results))
	for _, r := range m.results {
		enriched = append(enriched, m.enrich(r))
	}
	return filterResults(enriched, opts, m.now()), nil
}

// enrich attaches display names; caller must hold the lock.
func (m *memoryStore) enrich(r quiz.Result) quiz.Result {
	if u, ok := m.users[r.UserID]; ok {
		r.UserName = u.Name
	} else {
		r.UserName = "Unknown"
	}
	if t, ok := m.tests[r.TestCode]; ok {
		r.TestTitle = t.Title
	} else {
		r.TestTitle = "Unknown Test"
	}
	return r
}

func (m *memoryStore) GetAdmin(ctx context.Context, username string) (Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.admins[username]
	if !ok {
		return Admin{}, ErrAdminNotFound
	}
	return a, nil
}

func (m *memoryStore) PutAdmin(ctx context.Context, a Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.CreatedAt == "" {
		a.CreatedAt = m.now().Format(time.RFC3339)
	}
	m.admins[a.Username] = a
	return nil
}

func (m *memoryStore) DashboardStats(ctx context.Context) (DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := DashboardStats{
		TotalTests:       len(m.tests),
		TotalUsers:       len(m.users),
		TotalSubmissions: len(m.results),
	}
	for _, t := range m.tests {
		if t.Active {
			s.ActiveTests++
		}
	}
	if len(m.results) > 0 {
		sum := 0.0
		for _, r := range m.results {
			sum += r.Score
		}
		s.AverageScore = roundTenth(sum / float64(len(m.results)))
	}
	return s, nil
}

func (m *memoryStore) DetailedStats(ctx context.Context) (DetailedStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ds := DetailedStats{
		ScoreDistribution: map[string]int{},
		TestPopularity:    map[string]int{},
	}
	for _, b := range ScoreBuckets {
		ds.ScoreDistribution[b] = 0
	}
	for _, r := range m.results {
		ds.ScoreDistribution[BucketFor(r.Score)]++
		title := "Test " + r.TestCode
		if t, ok := m.tests[r.TestCode]; ok {
			title = t.Title
		}
		ds.TestPopularity[title]++
	}
	return ds, nil
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
