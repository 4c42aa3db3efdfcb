package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	authmw "github.com/mind-engage/quizhub/internal/auth/middleware"
	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

var validate = validator.New()

// GET /admin/api/stats
func StatsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, err := st.DetailedStats(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ds)
	}
}

// GET /admin/api/dashboard
func DashboardHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := st.DashboardStats(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		recent, err := st.ListResults(r.Context(), store.ResultListOpts{Limit: 10})
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"stats":          stats,
			"recent_results": recent,
		})
	}
}

// GET /admin/tests
func ListTestsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tests, err := st.ListTests(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, tests)
	}
}

// GET /admin/tests/{code}
func GetTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := st.GetTest(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			if errors.Is(err, store.ErrTestNotFound) {
				writeError(w, http.StatusNotFound, "Test not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

type createTestRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	TimeLimit   int            `json:"time_limit" validate:"gte=0"`
	Active      bool           `json:"active"`
	AnswerKey   quiz.AnswerMap `json:"answer_key" validate:"required,min=1"`
}

// POST /admin/tests/create
func CreateTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, "title and at least one answer are required")
			return
		}
		code, err := st.GenerateCode(r.Context())
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		t := quiz.Test{
			Code:           code,
			Title:          req.Title,
			Description:    req.Description,
			TotalQuestions: len(req.AnswerKey),
			AnswerKey:      req.AnswerKey,
			TimeLimitMin:   req.TimeLimit,
			Active:         req.Active,
			CreatedAt:      time.Now().Format(time.RFC3339),
			CreatedBy:      authmw.SubjectFromContext(r.Context()),
		}
		if err := st.CreateTest(r.Context(), t); err != nil {
			writeError(w, 500, "Failed to create test")
			return
		}
		writeSuccess(w, map[string]any{"test_code": code})
	}
}

// POST /admin/tests/{code}/toggle
func ToggleTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := st.ToggleTest(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			if errors.Is(err, store.ErrTestNotFound) {
				writeError(w, http.StatusNotFound, "Test not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeSuccess(w, map[string]any{"active": active})
	}
}

// POST /admin/tests/{code}/delete
func DeleteTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := st.DeleteTest(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			if errors.Is(err, store.ErrTestNotFound) {
				writeError(w, http.StatusNotFound, "Test not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeSuccess(w, nil)
	}
}

// GET /admin/api/results?test_code=&score_range=&date_range=&search=
// All filtering is server-side; the page just re-navigates with new params.
func ListResultsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		results, err := st.ListResults(r.Context(), store.ResultListOpts{
			TestCode:   q.Get("test_code"),
			ScoreRange: q.Get("score_range"),
			DateRange:  q.Get("date_range"),
			Search:     q.Get("search"),
		})
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// GET /admin/api/result/{id}
func GetResultHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := st.GetResult(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, store.ErrResultNotFound) {
				writeError(w, http.StatusNotFound, "Result not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /admin/api/export/{code}
func ExportResultsHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := st.ListResults(r.Context(), store.ResultListOpts{TestCode: chi.URLParam(r, "code")})
		if err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}
