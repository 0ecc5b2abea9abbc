// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ajg/form"
	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/survey"
	"github.com/danielhkuo/quickly-survey/views"
)

// render writes a view, falling back to a plain 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, v *views.Renderer, status int, name string, data views.Context) {
	if err := v.Render(w, status, name, data); err != nil {
		middleware.Logger(r).WithError(err).WithField("template", name).Error("failed to render view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func renderError(w http.ResponseWriter, r *http.Request, v *views.Renderer, status int, message string) {
	render(w, r, v, status, "error.html", views.Context{
		"title":   http.StatusText(status),
		"message": message,
	})
}

// storeFailed answers a store error: 404 for missing records, 500 otherwise.
func storeFailed(w http.ResponseWriter, r *http.Request, v *views.Renderer, err error, msg string) {
	if errors.Is(err, survey.ErrNotFound) {
		renderError(w, r, v, http.StatusNotFound, "Survey not found")
		return
	}
	middleware.Logger(r).WithError(err).Error(msg)
	renderError(w, r, v, http.StatusInternalServerError, "Something went wrong. Please try again.")
}

// idParam reads a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeForm parses the POST body into dst. Keys without a matching field
// are ignored.
func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	dec := form.NewDecoder(nil)
	dec.IgnoreUnknownKeys(true)
	return dec.DecodeValues(dst, r.PostForm)
}

// fieldErrors pulls the field messages out of a validation failure.
func fieldErrors(err error) ([]survey.FieldError, bool) {
	var verr *survey.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return verr.Fields, true
}
