// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
)

// Store reads and writes surveys, questions, responses and answers.
// Queries are written with ? placeholders and rebound for postgres.
type Store struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

func NewStore(db *sql.DB, dialect string) *Store {
	return &Store{db: db, dialect: dialect, now: time.Now}
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

const surveyColumns = `s.id, s.name, s.description, s.return_url, s.css, s.thank_you_message,
	s.slug, s.kiosk_mode, s.begin_at, s.end_at, s.active, s.created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row scanner, sv *models.Survey, extra ...any) error {
	dest := []any{
		&sv.ID, &sv.Name, &sv.Description, &sv.ReturnURL, &sv.CSS, &sv.ThankYouMessage,
		&sv.Slug, &sv.KioskMode, &sv.BeginAt, &sv.EndAt, &sv.Active, &sv.CreatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// CreateSurvey inserts a new survey and returns its id.
func (s *Store) CreateSurvey(ctx context.Context, sv models.Survey) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO survey (name, description, return_url, css, thank_you_message,
		                    slug, kiosk_mode, begin_at, end_at, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), sv.Name, sv.Description, sv.ReturnURL, sv.CSS, sv.ThankYouMessage,
		sv.Slug, sv.KioskMode, sv.BeginAt, sv.EndAt, sv.Active, s.timestamp(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert survey: %w", err)
	}
	return id, nil
}

// UpdateSurvey writes the editable fields of sv back to its row.
func (s *Store) UpdateSurvey(ctx context.Context, sv models.Survey) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE survey
		SET name = ?, description = ?, css = ?, return_url = ?, thank_you_message = ?,
		    slug = ?, begin_at = ?, end_at = ?
		WHERE id = ?
	`), sv.Name, sv.Description, sv.CSS, sv.ReturnURL, sv.ThankYouMessage,
		sv.Slug, sv.BeginAt, sv.EndAt, sv.ID)
	if err != nil {
		return fmt.Errorf("update survey %d: %w", sv.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update survey %d: %w", sv.ID, err)
	}
	if n == 0 {
		return survey.ErrNotFound
	}
	return nil
}

// DeleteSurvey removes a survey and its questions. Responses stay.
func (s *Store) DeleteSurvey(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM survey WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete survey %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete survey %d: %w", id, err)
	}
	if n == 0 {
		return survey.ErrNotFound
	}
	return nil
}

// GetSurvey loads a survey with its questions in position order.
func (s *Store) GetSurvey(ctx context.Context, id int64) (models.Survey, error) {
	var sv models.Survey
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+surveyColumns+` FROM survey s WHERE s.id = ?`), id)
	if err := scanSurvey(row, &sv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Survey{}, survey.ErrNotFound
		}
		return models.Survey{}, fmt.Errorf("query survey %d: %w", id, err)
	}

	questions, err := s.questions(ctx, id)
	if err != nil {
		return models.Survey{}, err
	}
	sv.Questions = questions
	return sv, nil
}

func (s *Store) questions(ctx context.Context, surveyID int64) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, survey_id, position, label, question_type, options, required, css_class, created_at
		FROM question
		WHERE survey_id = ?
		ORDER BY position, id
	`), surveyID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Position, &q.Label, &q.QuestionType,
			&q.Options, &q.Required, &q.CSSClass, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// SurveyIDBySlug finds the newest survey with the given slug.
func (s *Store) SurveyIDBySlug(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id FROM survey WHERE slug = ? ORDER BY id DESC LIMIT 1
	`), slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, survey.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query survey slug: %w", err)
	}
	return id, nil
}

// ListSurveys returns every survey, newest first, with question and response counts.
func (s *Store) ListSurveys(ctx context.Context) ([]models.SurveySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+surveyColumns+`,
		       (SELECT COUNT(*) FROM question q WHERE q.survey_id = s.id),
		       (SELECT COUNT(*) FROM survey_response r WHERE r.survey_id = s.id)
		FROM survey s
		ORDER BY s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query surveys: %w", err)
	}
	defer rows.Close()

	surveys := []models.SurveySummary{}
	for rows.Next() {
		var sum models.SurveySummary
		if err := scanSurvey(rows, &sum.Survey, &sum.QuestionCount, &sum.ResponseCount); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		surveys = append(surveys, sum)
	}
	return surveys, rows.Err()
}

// AddQuestion appends q to the end of its survey's question list.
func (s *Store) AddQuestion(ctx context.Context, q models.Question) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, s.rebind(`
		SELECT COALESCE(MAX(q.position), 0) + 1
		FROM survey s
		LEFT JOIN question q ON q.survey_id = s.id
		WHERE s.id = ?
		GROUP BY s.id
	`), q.SurveyID).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, survey.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query question position: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, s.rebind(`
		INSERT INTO question (survey_id, position, label, question_type, options, required, css_class, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), q.SurveyID, position, q.Label, q.QuestionType, q.Options, q.Required, q.CSSClass, s.timestamp(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit question: %w", err)
	}
	return id, nil
}

// SaveResponse inserts a response and its answers in one transaction.
// Any failure rolls back the whole response.
func (s *Store) SaveResponse(ctx context.Context, resp models.SurveyResponse) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := s.timestamp()

	var responseID int64
	err = tx.QueryRowContext(ctx, s.rebind(`
		INSERT INTO survey_response (survey_id, ip, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), resp.SurveyID, resp.IP, createdAt).Scan(&responseID)
	if err != nil {
		return 0, fmt.Errorf("insert response: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO answer (response_id, question_id, value, created_at)
		VALUES (?, ?, ?, ?)
	`))
	if err != nil {
		return 0, fmt.Errorf("prepare answer insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range resp.Answers {
		if _, err := stmt.ExecContext(ctx, responseID, a.QuestionID, a.Value, createdAt); err != nil {
			return 0, fmt.Errorf("insert answer for question %d: %w", a.QuestionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit response: %w", err)
	}
	return responseID, nil
}

// ListResponses returns the responses of a survey, oldest first, each with
// its answers in creation order.
func (s *Store) ListResponses(ctx context.Context, surveyID int64) ([]models.SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, survey_id, ip, created_at
		FROM survey_response
		WHERE survey_id = ?
		ORDER BY id
	`), surveyID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}

	responses := []models.SurveyResponse{}
	index := map[int64]int{}
	for rows.Next() {
		r := models.SurveyResponse{Answers: []models.Answer{}}
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.IP, &r.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan response: %w", err)
		}
		index[r.ID] = len(responses)
		responses = append(responses, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}

	// Answers are read after the response rows are closed; sqlite runs on a
	// single connection.
	rows, err = s.db.QueryContext(ctx, s.rebind(`
		SELECT a.id, a.response_id, a.question_id, a.value
		FROM answer a
		JOIN survey_response r ON r.id = a.response_id
		WHERE r.survey_id = ?
		ORDER BY a.response_id, a.id
	`), surveyID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.Value); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if i, ok := index[a.ResponseID]; ok {
			responses[i].Answers = append(responses[i].Answers, a)
		}
	}
	return responses, rows.Err()
}

var _ survey.Store = (*Store)(nil)
