// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	conn, err := db.Open(context.Background(), cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a store over a fresh test database.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t), db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: db.DialectSQLite,
		LogLevel:     "error",
	}
}

// CreateTestSurvey inserts an active survey and returns its id.
// Pass a modifier to change fields before insert.
func CreateTestSurvey(t *testing.T, store *db.Store, modify ...func(*models.Survey)) int64 {
	t.Helper()

	s := models.Survey{
		Name:            "Test Survey",
		Description:     "A test survey",
		ThankYouMessage: "Thanks!",
		Active:          true,
	}
	for _, m := range modify {
		m(&s)
	}

	id, err := store.CreateSurvey(context.Background(), s)
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return id
}

// AddTestQuestion appends a question and returns its id.
func AddTestQuestion(t *testing.T, store *db.Store, surveyID int64, label, questionType string, required bool, options ...string) int64 {
	t.Helper()

	q := models.Question{
		SurveyID:     surveyID,
		Label:        label,
		QuestionType: questionType,
		Required:     required,
	}
	if len(options) > 0 {
		opts := strings.Join(options, "\n")
		q.Options = &opts
	}

	id, err := store.AddQuestion(context.Background(), q)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, strings.NewReader(string(jsonBody)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// WithURLParams attaches chi route parameters to req, as the router would.
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 302 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusFound, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected Location %q, got %q", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
