// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}
	for _, table := range []string{"survey", "question", "survey_response", "answer"} {
		if n := testutil.CountRows(t, conn, table); n != 0 {
			t.Errorf("expected empty %s, got %d rows", table, n)
		}
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := db.Open(context.Background(), "mysql", "x"); err == nil {
		t.Error("expected error for unsupported database type")
	}
}

func TestSurveyRoundTrip(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()

	begin := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	in := models.Survey{
		Name:            "Roundtrip",
		Description:     "desc",
		ReturnURL:       "https://example.com",
		CSS:             "p {}",
		ThankYouMessage: "ta",
		Slug:            "round_trip",
		KioskMode:       true,
		BeginAt:         &begin,
		Active:          true,
	}
	id, err := store.CreateSurvey(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetSurvey(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	in.ID = id
	in.Questions = []models.Question{}
	if diff := cmp.Diff(in, got, cmpopts.IgnoreFields(models.Survey{}, "CreatedAt")); diff != "" {
		t.Errorf("survey mismatch (-want +got):\n%s", diff)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestGetSurvey_NotFound(t *testing.T) {
	store := testutil.SetupTestStore(t)

	if _, err := store.GetSurvey(context.Background(), 404); !errors.Is(err, survey.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateSurvey(context.Background(), models.Survey{ID: 404, Name: "x"}); !errors.Is(err, survey.ErrNotFound) {
		t.Errorf("expected ErrNotFound on update, got %v", err)
	}
	if _, err := store.SurveyIDBySlug(context.Background(), "nope"); !errors.Is(err, survey.ErrNotFound) {
		t.Errorf("expected ErrNotFound for slug, got %v", err)
	}
}

func TestAddQuestion_Positions(t *testing.T) {
	store := testutil.SetupTestStore(t)
	a := testutil.CreateTestSurvey(t, store)
	b := testutil.CreateTestSurvey(t, store)

	testutil.AddTestQuestion(t, store, a, "A1", models.TypeText, false)
	testutil.AddTestQuestion(t, store, b, "B1", models.TypeText, false)
	testutil.AddTestQuestion(t, store, a, "A2", models.TypeSelect, true, "x", "y")

	s, err := store.GetSurvey(context.Background(), a)
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	var positions []int
	for _, q := range s.Questions {
		labels = append(labels, q.Label)
		positions = append(positions, q.Position)
	}
	if diff := cmp.Diff([]string{"A1", "A2"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, positions); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if got := s.Questions[1].Choices(); len(got) != 2 {
		t.Errorf("expected two choices, got %v", got)
	}

	_, err = store.AddQuestion(context.Background(), models.Question{SurveyID: 99, Label: "orphan", QuestionType: models.TypeText})
	if !errors.Is(err, survey.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing survey, got %v", err)
	}
}

func TestSaveResponse(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	id := testutil.CreateTestSurvey(t, store)
	q1 := testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)
	q2 := testutil.AddTestQuestion(t, store, id, "Colors", models.TypeCheckboxList, false, "Red", "Blue")

	respID, err := store.SaveResponse(ctx, models.SurveyResponse{
		SurveyID: id,
		IP:       "127.0.0.1",
		Answers: []models.Answer{
			{QuestionID: q1, Value: "Ada"},
			{QuestionID: q2, Value: "Red|Blue"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	responses, err := store.ListResponses(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(responses) != 1 || responses[0].ID != respID {
		t.Fatalf("expected response %d, got %+v", respID, responses)
	}

	want := []models.Answer{
		{ResponseID: respID, QuestionID: q1, Value: "Ada"},
		{ResponseID: respID, QuestionID: q2, Value: "Red|Blue"},
	}
	if diff := cmp.Diff(want, responses[0].Answers, cmpopts.IgnoreFields(models.Answer{}, "ID")); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}

	surveys, err := store.ListSurveys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(surveys) != 1 || surveys[0].QuestionCount != 2 || surveys[0].ResponseCount != 1 {
		t.Errorf("unexpected summary %+v", surveys)
	}
}

func TestSaveResponse_RollsBack(t *testing.T) {
	store := testutil.SetupTestStore(t)
	conn := store.DB()
	id := testutil.CreateTestSurvey(t, store)

	// The trigger rejects the second answer so the write fails midway
	if _, err := conn.Exec(`
		CREATE TRIGGER reject_bad_answer BEFORE INSERT ON answer
		WHEN NEW.value = 'bad'
		BEGIN SELECT RAISE(ABORT, 'bad answer'); END
	`); err != nil {
		t.Fatal(err)
	}

	_, err := store.SaveResponse(context.Background(), models.SurveyResponse{
		SurveyID: id,
		IP:       "127.0.0.1",
		Answers: []models.Answer{
			{QuestionID: 1, Value: "good"},
			{QuestionID: 2, Value: "bad"},
		},
	})
	if err == nil {
		t.Fatal("expected error from failing answer insert")
	}

	if n := testutil.CountRows(t, conn, "survey_response"); n != 0 {
		t.Errorf("expected response rolled back, got %d rows", n)
	}
	if n := testutil.CountRows(t, conn, "answer"); n != 0 {
		t.Errorf("expected answers rolled back, got %d rows", n)
	}
}

func TestDeleteSurvey_KeepsResponses(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	id := testutil.CreateTestSurvey(t, store)
	q := testutil.AddTestQuestion(t, store, id, "Name", models.TypeText, false)

	if _, err := store.SaveResponse(ctx, models.SurveyResponse{
		SurveyID: id,
		Answers:  []models.Answer{{QuestionID: q, Value: "Ada"}},
	}); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteSurvey(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSurvey(ctx, id); !errors.Is(err, survey.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	conn := store.DB()
	if n := testutil.CountRows(t, conn, "question"); n != 0 {
		t.Errorf("expected questions removed, got %d", n)
	}
	if n := testutil.CountRows(t, conn, "survey_response"); n != 1 {
		t.Errorf("expected response kept, got %d", n)
	}
	if n := testutil.CountRows(t, conn, "answer"); n != 1 {
		t.Errorf("expected answer kept, got %d", n)
	}
}

func TestSurveyIDBySlug_Newest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	testutil.CreateTestSurvey(t, store, func(s *models.Survey) { s.Slug = "dup" })
	newer := testutil.CreateTestSurvey(t, store, func(s *models.Survey) { s.Slug = "dup" })

	id, err := store.SurveyIDBySlug(context.Background(), "dup")
	if err != nil {
		t.Fatal(err)
	}
	if id != newer {
		t.Errorf("expected newest survey %d, got %d", newer, id)
	}
}
