// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/views"
)

type SubmitHandler struct {
	submissions *survey.Orchestrator
	views       *views.Renderer
}

func NewSubmitHandler(store *db.Store, v *views.Renderer) *SubmitHandler {
	return &SubmitHandler{submissions: survey.NewOrchestrator(store), views: v}
}

// Submit handles POST /survey/{id}/submit
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		renderError(w, r, h.views, http.StatusBadRequest, "Invalid form data")
		return
	}

	sub := survey.Submission{
		SurveyID:       id,
		Fields:         survey.FieldsFromForm(r.PostForm),
		IP:             middleware.GetClientIP(r),
		EchoedSurveyID: r.PostForm.Get("survey_id"),
		ReturnURL:      r.PostForm.Get("return_url"),
	}

	out, err := h.submissions.Submit(r.Context(), sub)
	if err != nil {
		var verr *survey.ValidationError
		var werr *survey.StoreWriteError
		switch {
		case errors.As(err, &verr):
			renderSurveyForm(w, r, h.views, http.StatusUnprocessableEntity, out.Survey, sub.Fields, verr.Fields)
		case errors.Is(err, survey.ErrNotFound):
			renderError(w, r, h.views, http.StatusNotFound, "Survey not found")
		case errors.As(err, &werr):
			middleware.Logger(r).WithError(err).WithField("survey_id", id).Error("failed to save response")
			renderError(w, r, h.views, http.StatusInternalServerError, "Your response could not be saved. Please try again.")
		default:
			storeFailed(w, r, h.views, err, "failed to process submission")
		}
		return
	}

	middleware.Logger(r).WithFields(log.Fields{
		"survey_id":   id,
		"response_id": out.ResponseID,
		"answers":     len(out.Answers),
		"state":       out.Final().String(),
		"external":    out.External,
	}).Info("submission processed")

	if out.External {
		// http.Redirect would resolve a scheme-less url against the request path
		w.Header().Set("Location", out.Redirect)
		w.WriteHeader(http.StatusFound)
		return
	}
	http.Redirect(w, r, out.Redirect, http.StatusFound)
}
