// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func submit(t *testing.T, handler *SubmitHandler, surveyID int64, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	id := strconv.FormatInt(surveyID, 10)
	req := testutil.MakeFormRequest("POST", "/survey/"+id+"/submit", form)
	req.RemoteAddr = "192.0.2.10:51234"
	req = testutil.WithURLParams(req, map[string]string{"id": id})
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	return w
}

// storedAnswers returns question id → value for every stored answer
func storedAnswers(t *testing.T, store *db.Store, surveyID int64) map[int64]string {
	t.Helper()
	responses, err := store.ListResponses(context.Background(), surveyID)
	if err != nil {
		t.Fatal(err)
	}
	out := map[int64]string{}
	for _, r := range responses {
		for _, a := range r.Answers {
			out[a.QuestionID] = a.Value
		}
	}
	return out
}

func TestSubmit_StoresAnswers(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	name := testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, true)
	colors := testutil.AddTestQuestion(t, store, id, "Colors", models.TypeCheckboxList, false, "Red", "Green", "Blue")
	notes := testutil.AddTestQuestion(t, store, id, "Notes", models.TypeTextarea, false)

	form := url.Values{"survey_id": {"1"}}
	form.Set(survey.FieldKey(name), "  Ada  ")
	form[survey.FieldKey(colors)+"[]"] = []string{"Red", "Blue"}
	form.Set(survey.FieldKey(notes), "   ")
	w := submit(t, handler, id, form)

	testutil.AssertRedirect(t, w, "/thanks/1")

	want := map[int64]string{
		name:   "  Ada  ",
		colors: "Red|Blue",
	}
	if diff := cmp.Diff(want, storedAnswers(t, store, id)); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}

	responses, err := store.ListResponses(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 1 || responses[0].IP != "192.0.2.10" {
		t.Errorf("expected one response from 192.0.2.10, got %+v", responses)
	}
}

func TestSubmit_ForwardedIP(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

	req := testutil.MakeFormRequest("POST", "/survey/1/submit", url.Values{"survey_id": {"1"}, "q-1": {"Ada"}})
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req = testutil.WithURLParams(req, map[string]string{"id": "1"})
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertRedirect(t, w, "/thanks/1")

	responses, err := store.ListResponses(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 1 || responses[0].IP != "203.0.113.7" {
		t.Errorf("expected response from 203.0.113.7, got %+v", responses)
	}
}

func TestSubmit_Redirects(t *testing.T) {
	tests := []struct {
		name      string
		returnURL string
		kiosk     bool
		expected  string
	}{
		{name: "no return url", expected: "/thanks/1"},
		{name: "return url", returnURL: "https://example.com/after", expected: "https://example.com/after"},
		{name: "short return url", returnURL: "http:", expected: "/thanks/1"},
		{name: "return url without scheme", returnURL: "www.example.com/ok", expected: "www.example.com/ok"},
		{name: "kiosk mode ignores return url", returnURL: "https://example.com/after", kiosk: true, expected: "/thanks/1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, v := setupTest(t)
			handler := NewSubmitHandler(store, v)

			id := testutil.CreateTestSurvey(t, store, func(s *models.Survey) {
				s.ReturnURL = tt.returnURL
				s.KioskMode = tt.kiosk
			})
			testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

			w := submit(t, handler, id, url.Values{"survey_id": {"1"}, "q-1": {"Ada"}})

			testutil.AssertRedirect(t, w, tt.expected)
			if n := testutil.CountRows(t, store.DB(), "survey_response"); n != 1 {
				t.Errorf("expected 1 response, got %d", n)
			}
		})
	}
}

func TestSubmit_MissingRequired(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Email", models.TypeEmail, true)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)
	testutil.AddTestQuestion(t, store, id, "Colors", models.TypeCheckboxList, true, "Red", "Blue")

	w := submit(t, handler, id, url.Values{
		"survey_id": {"1"},
		"q-1":       {"   "},
		"q-2":       {"Grace"},
	})

	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	body := w.Body.String()
	for _, want := range []string{"Email is required", "Colors is required", `value="Grace"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}

	conn := store.DB()
	if n := testutil.CountRows(t, conn, "survey_response"); n != 0 {
		t.Errorf("expected no responses, got %d", n)
	}
	if n := testutil.CountRows(t, conn, "answer"); n != 0 {
		t.Errorf("expected no answers, got %d", n)
	}
}

func TestSubmit_KeepsCheckedChoices(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Email", models.TypeEmail, true)
	testutil.AddTestQuestion(t, store, id, "Colors", models.TypeCheckboxList, false, "Red", "Blue")

	w := submit(t, handler, id, url.Values{
		"survey_id": {"1"},
		"q-2[]":     {"Blue"},
	})

	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	if !strings.Contains(w.Body.String(), `value="Blue" checked`) {
		t.Error("expected the submitted choice to stay checked")
	}
}

func TestSubmit_EmptyResponse(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)
	testutil.AddTestQuestion(t, store, id, "Colors", models.TypeCheckboxList, false, "Red")

	w := submit(t, handler, id, url.Values{"survey_id": {"1"}, "q-1": {""}})

	testutil.AssertRedirect(t, w, "/thanks/1")
	if n := testutil.CountRows(t, store.DB(), "survey_response"); n != 0 {
		t.Errorf("expected no response for an empty submission, got %d", n)
	}
}

func TestSubmit_CrossPosted(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, true)

	tests := []struct {
		name   string
		echoed []string
	}{
		{name: "different survey id", echoed: []string{"2"}},
		{name: "missing survey id"},
		{name: "malformed survey id", echoed: []string{"one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"return_url": {"https://example.com/elsewhere"}}
			if tt.echoed != nil {
				form["survey_id"] = tt.echoed
			}
			w := submit(t, handler, id, form)

			testutil.AssertRedirect(t, w, "https://example.com/elsewhere")
			if n := testutil.CountRows(t, store.DB(), "survey_response"); n != 0 {
				t.Errorf("expected nothing stored, got %d responses", n)
			}
		})
	}
}

func TestSubmit_CrossPostedWithoutScheme(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

	w := submit(t, handler, id, url.Values{"survey_id": {"9"}, "return_url": {"y.example/back"}})

	testutil.AssertRedirect(t, w, "y.example/back")
	if n := testutil.CountRows(t, store.DB(), "survey_response"); n != 0 {
		t.Errorf("expected nothing stored, got %d responses", n)
	}
}

func TestSubmit_MismatchWithoutReturnURL(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

	w := submit(t, handler, id, url.Values{"survey_id": {"2"}, "return_url": {"x"}, "q-1": {"Ada"}})

	testutil.AssertRedirect(t, w, "/thanks/1")
	if got := storedAnswers(t, store, id); got[1] != "Ada" {
		t.Errorf("expected the answer stored against survey 1, got %v", got)
	}
}

func TestSubmit_NotFound(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	w := submit(t, handler, 9, url.Values{"survey_id": {"9"}, "q-1": {"Ada"}})

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestSubmit_StoreFailure(t *testing.T) {
	store, v := setupTest(t)
	handler := NewSubmitHandler(store, v)

	id := testutil.CreateTestSurvey(t, store)
	testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

	if _, err := store.DB().Exec("DROP TABLE answer"); err != nil {
		t.Fatal(err)
	}

	w := submit(t, handler, id, url.Values{"survey_id": {"1"}, "q-1": {"Ada"}})

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	if n := testutil.CountRows(t, store.DB(), "survey_response"); n != 0 {
		t.Errorf("expected the response rolled back, got %d rows", n)
	}
}
