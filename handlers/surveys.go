// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/views"
)

type SurveyHandler struct {
	store *db.Store
	views *views.Renderer
	now   func() time.Time
}

func NewSurveyHandler(store *db.Store, v *views.Renderer) *SurveyHandler {
	return &SurveyHandler{store: store, views: v, now: time.Now}
}

// List handles GET /list
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.store.ListSurveys(r.Context())
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to list surveys")
		return
	}

	render(w, r, h.views, http.StatusOK, "list.html", views.Context{
		"surveys": surveys,
		"status":  r.URL.Query().Get("status"),
	})
}

// CreateForm handles GET /survey/create
func (h *SurveyHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, http.StatusOK, "create.html", views.Context{
		"old": models.SurveyForm{},
	})
}

// Create handles POST /survey
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var f models.SurveyForm
	if err := decodeForm(r, &f); err != nil {
		renderError(w, r, h.views, http.StatusBadRequest, "Invalid form data")
		return
	}

	if err := survey.CheckSurveyForm(f); err != nil {
		errs, ok := fieldErrors(err)
		if !ok {
			storeFailed(w, r, h.views, err, "failed to check survey form")
			return
		}
		render(w, r, h.views, http.StatusUnprocessableEntity, "create.html", views.Context{
			"old":    f,
			"errors": errs,
		})
		return
	}

	id, err := h.store.CreateSurvey(r.Context(), survey.NewSurvey(f))
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to create survey")
		return
	}

	middleware.Logger(r).WithField("survey_id", id).Info("survey created")

	http.Redirect(w, r, addQuestionPath(id), http.StatusFound)
}

// Show handles GET /survey/{id}
// Open surveys render the submission form, others the thank-you view.
func (h *SurveyHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return
	}

	s, err := h.store.GetSurvey(r.Context(), id)
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to load survey")
		return
	}

	if !s.IsOpen(h.now()) {
		renderThanks(w, r, h.views, s)
		return
	}
	renderSurveyForm(w, r, h.views, http.StatusOK, s, nil, nil)
}

// BySlug handles GET /s/{slug}
func (h *SurveyHandler) BySlug(w http.ResponseWriter, r *http.Request) {
	slug := survey.NormalizeSlug(chi.URLParam(r, "slug"))
	if slug == "" {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return
	}

	id, err := h.store.SurveyIDBySlug(r.Context(), slug)
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to look up slug")
		return
	}

	http.Redirect(w, r, "/survey/"+strconv.FormatInt(id, 10), http.StatusFound)
}

// Thanks handles GET /thanks/{id}
func (h *SurveyHandler) Thanks(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return
	}

	s, err := h.store.GetSurvey(r.Context(), id)
	if err != nil {
		storeFailed(w, r, h.views, err, "failed to load survey")
		return
	}
	renderThanks(w, r, h.views, s)
}

// EditForm handles GET /survey/{survey}/edit
func (h *SurveyHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	render(w, r, h.views, http.StatusOK, "editsurvey.html", views.Context{
		"survey": s,
		"old":    editForm(s),
	})
}

// Edit handles POST /survey/{survey}/edit
func (h *SurveyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	var f models.SurveyForm
	if err := decodeForm(r, &f); err != nil {
		renderError(w, r, h.views, http.StatusBadRequest, "Invalid form data")
		return
	}

	if err := survey.CheckSurveyForm(f); err != nil {
		errs, ok := fieldErrors(err)
		if !ok {
			storeFailed(w, r, h.views, err, "failed to check survey form")
			return
		}
		render(w, r, h.views, http.StatusUnprocessableEntity, "editsurvey.html", views.Context{
			"survey": s,
			"old":    f,
			"errors": errs,
		})
		return
	}

	survey.ApplyEdit(&s, f)
	if err := h.store.UpdateSurvey(r.Context(), s); err != nil {
		storeFailed(w, r, h.views, err, "failed to update survey")
		return
	}

	middleware.Logger(r).WithField("survey_id", s.ID).Info("survey edited")

	http.Redirect(w, r, listPath("Successfully edited Survey "+strconv.FormatInt(s.ID, 10)), http.StatusFound)
}

// Delete handles POST /survey/{survey}/delete
// Questions go with the survey; responses are kept.
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "survey")
	if !ok {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return
	}

	if err := h.store.DeleteSurvey(r.Context(), id); err != nil {
		storeFailed(w, r, h.views, err, "failed to delete survey")
		return
	}

	middleware.Logger(r).WithField("survey_id", id).Info("survey deleted")

	http.Redirect(w, r, listPath("Deleted Survey "+strconv.FormatInt(id, 10)), http.StatusFound)
}

// Responses handles GET /survey/{survey}/responses
// Returns every response with its answers as JSON.
func (h *SurveyHandler) Responses(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "survey")
	if !ok {
		middleware.ErrorResponse(w, r, http.StatusNotFound, "Survey not found")
		return
	}

	s, err := h.store.GetSurvey(r.Context(), id)
	if errors.Is(err, survey.ErrNotFound) {
		middleware.ErrorResponse(w, r, http.StatusNotFound, "Survey not found")
		return
	}
	if err != nil {
		middleware.Logger(r).WithError(err).Error("failed to load survey")
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := h.store.ListResponses(r.Context(), id)
	if err != nil {
		middleware.Logger(r).WithError(err).Error("failed to list responses")
		middleware.ErrorResponse(w, r, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, models.ResponsesExport{
		Survey:    s,
		Responses: responses,
	})
}

func (h *SurveyHandler) load(w http.ResponseWriter, r *http.Request) (models.Survey, bool) {
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

// editForm fills the edit form with the stored values.
func editForm(s models.Survey) models.SurveyForm {
	return models.SurveyForm{
		Name:            s.Name,
		Description:     s.Description,
		ReturnURL:       s.ReturnURL,
		CSS:             s.CSS,
		ThankYouMessage: s.ThankYouMessage,
		Slug:            s.Slug,
		BeginAt:         views.FormatTimestamp(s.BeginAt),
		EndAt:           views.FormatTimestamp(s.EndAt),
	}
}

func renderThanks(w http.ResponseWriter, r *http.Request, v *views.Renderer, s models.Survey) {
	render(w, r, v, http.StatusOK, "thanks.html", views.Context{
		"survey": s,
		"css":    survey.StripMarkup(s.CSS),
	})
}

func renderSurveyForm(w http.ResponseWriter, r *http.Request, v *views.Renderer, status int, s models.Survey, old survey.Fields, errs []survey.FieldError) {
	byField := (&survey.ValidationError{Fields: errs}).ByField()
	render(w, r, v, status, "form.html", views.Context{
		"survey": s,
		"fields": views.FormFields(s, old, byField),
		"errors": errs,
		"css":    survey.StripMarkup(s.CSS),
	})
}

func addQuestionPath(surveyID int64) string {
	return "/addquestion/" + strconv.FormatInt(surveyID, 10) + "#new-question-form"
}

func listPath(status string) string {
	return "/list?" + url.Values{"status": {status}}.Encode()
}
