// Package client is the JSON-over-HTTP client of the quizhub API. The
// admin and session controllers go through it for every network call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

type Client struct {
	base  string
	httpc *http.Client
	token string // admin bearer token, set by Login
}

// New returns a client for the given base URL. Calls carry no client-side
// timeout; an issued request is never cancelled from this layer.
func New(baseURL string) *Client {
	return &Client{
		base:  strings.TrimSuffix(baseURL, "/"),
		httpc: &http.Client{},
	}
}

func (c *Client) SetToken(tok string) { c.token = tok }

// envelope is the {success, error} wrapper most endpoints answer with.
type envelope struct {
	Success bool       `json:"success"`
	Error   string     `json:"error"`
	Test    *quiz.Test `json:"test"`
	Score   float64    `json:"score"`
	ResID   string     `json:"result_id"`
	Code    string     `json:"test_code"`
	Token   string     `json:"access_token"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	if resp.StatusCode >= 400 {
		// Surface the server-provided error string verbatim when there is one.
		var env envelope
		if dec.Decode(&env) == nil && env.Error != "" {
			return fmt.Errorf("%s", env.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	return dec.Decode(out)
}

// Login authenticates an admin and keeps the bearer token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var env envelope
	err := c.doJSON(ctx, http.MethodPost, "/admin/login",
		map[string]string{"username": username, "password": password}, &env)
	if err != nil {
		return err
	}
	c.token = env.Token
	return nil
}

// ValidateCode checks a test code for a user and returns the descriptor.
func (c *Client) ValidateCode(ctx context.Context, code string, userID int64) (quiz.Test, error) {
	q := url.Values{"code": {code}, "user_id": {strconv.FormatInt(userID, 10)}}
	var env envelope
	if err := c.doJSON(ctx, http.MethodGet, "/api/validate_test?"+q.Encode(), nil, &env); err != nil {
		return quiz.Test{}, err
	}
	if !env.Success || env.Test == nil {
		return quiz.Test{}, fmt.Errorf("%s", orDefault(env.Error, "Invalid test code"))
	}
	return *env.Test, nil
}

// SubmitTest posts the answer map and returns the server-computed score.
func (c *Client) SubmitTest(ctx context.Context, userID int64, code string, answers quiz.AnswerMap) (float64, error) {
	body := map[string]any{"user_id": userID, "test_code": code, "answers": answers}
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/api/submit_test", body, &env); err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, fmt.Errorf("%s", orDefault(env.Error, "Error submitting test"))
	}
	return env.Score, nil
}

func (c *Client) Stats(ctx context.Context) (store.DetailedStats, error) {
	var ds store.DetailedStats
	err := c.doJSON(ctx, http.MethodGet, "/admin/api/stats", nil, &ds)
	return ds, err
}

// DashboardData bundles the headline counters with the latest submissions.
type DashboardData struct {
	Stats         store.DashboardStats `json:"stats"`
	RecentResults []quiz.Result        `json:"recent_results"`
}

func (c *Client) Dashboard(ctx context.Context) (DashboardData, error) {
	var d DashboardData
	err := c.doJSON(ctx, http.MethodGet, "/admin/api/dashboard", nil, &d)
	return d, err
}

func (c *Client) ListTests(ctx context.Context) ([]quiz.Test, error) {
	var out []quiz.Test
	err := c.doJSON(ctx, http.MethodGet, "/admin/tests", nil, &out)
	return out, err
}

func (c *Client) GetTest(ctx context.Context, code string) (quiz.Test, error) {
	var t quiz.Test
	err := c.doJSON(ctx, http.MethodGet, "/admin/tests/"+url.PathEscape(code), nil, &t)
	return t, err
}

type CreateTestInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	TimeLimit   int            `json:"time_limit,omitempty"`
	Active      bool           `json:"active"`
	AnswerKey   quiz.AnswerMap `json:"answer_key"`
}

func (c *Client) CreateTest(ctx context.Context, in CreateTestInput) (string, error) {
	var env envelope
	if err := c.doJSON(ctx, http.MethodPost, "/admin/tests/create", in, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", fmt.Errorf("%s", orDefault(env.Error, "Failed to create test"))
	}
	return env.Code, nil
}

func (c *Client) ToggleTest(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/tests/"+url.PathEscape(code)+"/toggle", nil, nil)
}

func (c *Client) DeleteTest(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/admin/tests/"+url.PathEscape(code)+"/delete", nil, nil)
}

func (c *Client) GetResult(ctx context.Context, id string) (quiz.Result, error) {
	var r quiz.Result
	err := c.doJSON(ctx, http.MethodGet, "/admin/api/result/"+url.PathEscape(id), nil, &r)
	return r, err
}

func (c *Client) ListResults(ctx context.Context, opts store.ResultListOpts) ([]quiz.Result, error) {
	q := url.Values{}
	if opts.TestCode != "" {
		q.Set("test_code", opts.TestCode)
	}
	if opts.ScoreRange != "" {
		q.Set("score_range", opts.ScoreRange)
	}
	if opts.DateRange != "" {
		q.Set("date_range", opts.DateRange)
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	path := "/admin/api/results"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var out []quiz.Result
	err := c.doJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ExportResults fetches the full result set for one test.
func (c *Client) ExportResults(ctx context.Context, code string) ([]quiz.Result, error) {
	var out []quiz.Result
	err := c.doJSON(ctx, http.MethodGet, "/admin/api/export/"+url.PathEscape(code), nil, &out)
	return out, err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
