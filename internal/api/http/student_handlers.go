package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/quizhub/internal/grading"
	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

// GET /api/validate_test?code=...&user_id=...
// Returns the descriptor with the answer key stripped; students never see
// keys.
func ValidateTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user_id required")
			return
		}
		if _, err := st.GetUser(r.Context(), userID); err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		t, err := st.GetTest(r.Context(), code)
		if err != nil || !t.Active {
			writeError(w, http.StatusBadRequest, "Invalid or inactive test code")
			return
		}
		writeSuccess(w, map[string]any{"test": t.WithoutKey()})
	}
}

type submitTestRequest struct {
	UserID   int64          `json:"user_id"`
	TestCode string         `json:"test_code"`
	Answers  quiz.AnswerMap `json:"answers"`
}

// POST /api/submit_test
func SubmitTestHandler(st store.Store, grader grading.Grader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		t, err := st.GetTest(r.Context(), req.TestCode)
		if err != nil || !t.Active {
			writeError(w, http.StatusBadRequest, "Invalid test code")
			return
		}

		score := grader.Score(t.AnswerKey, req.Answers)

		res := quiz.Result{
			ID:          uuid.NewString(),
			UserID:      req.UserID,
			TestCode:    req.TestCode,
			Answers:     req.Answers,
			Score:       score,
			SubmittedAt: time.Now().Format(time.RFC3339),
		}
		if err := st.SaveResult(r.Context(), res); err != nil {
			writeError(w, 500, err.Error())
			return
		}
		writeSuccess(w, map[string]any{"score": score, "result_id": res.ID})
	}
}

// GET /api/user?user_id=...
// The web app loads the student's display data before code entry.
func GetUserHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user_id required")
			return
		}
		u, err := st.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeError(w, 500, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
