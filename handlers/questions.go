// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/views"
)

type QuestionHandler struct {
	store *db.Store
	views *views.Renderer
}

func NewQuestionHandler(store *db.Store, v *views.Renderer) *QuestionHandler {
	return &QuestionHandler{store: store, views: v}
}

// AddQuestionForm handles GET /addquestion/{survey}
func (h *QuestionHandler) AddQuestionForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderForm(w, r, http.StatusOK, s, models.QuestionForm{QuestionType: models.TypeText}, nil)
}

// AddQuestion handles POST /survey/{survey}/question
// The question is appended after the survey's existing questions.
func (h *QuestionHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var f models.QuestionForm
	if err := decodeForm(r, &f); err != nil {
		renderError(w, r, h.views, http.StatusBadRequest, "Invalid form data")
		return
	}

	if err := survey.CheckQuestionForm(f); err != nil {
		errs, ok := fieldErrors(err)
		if !ok {
			storeFailed(w, r, h.views, err, "failed to check question form")
			return
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, s, f, errs)
		return
	}

	id, err := h.store.AddQuestion(r.Context(), survey.NewQuestion(s.ID, f))
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to add question")
		return
	}

	middleware.Logger(r).WithFields(log.Fields{
		"survey_id":   s.ID,
		"question_id": id,
	}).Info("question added")

	http.Redirect(w, r, addQuestionPath(s.ID), http.StatusFound)
}

func (h *QuestionHandler) load(w http.ResponseWriter, r *http.Request) (models.Survey, bool) {
	id, ok := idParam(r, "survey")
	if !ok {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return models.Survey{}, false
	}
	s, err := h.store.GetSurvey(r.Context(), id)
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to load survey")
		return models.Survey{}, false
	}
	return s, true
}

func (h *QuestionHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, s models.Survey, old models.QuestionForm, errs []survey.FieldError) {
	render(w, r, h.views, status, "addquestion.html", views.Context{
		"survey": s,
		"types":  models.QuestionTypes,
		"old":    old,
		"errors": errs,
	})
}
