// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/views"
)

func NewRouter(store *db.Store, v *views.Renderer) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(store, v)
	questionHandler := handlers.NewQuestionHandler(store, v)
	submitHandler := handlers.NewSubmitHandler(store, v)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/list", http.StatusFound)
	})
	r.Get("/list", surveyHandler.List)

	// Survey management
	r.Get("/survey/create", surveyHandler.CreateForm)
	r.Post("/survey", surveyHandler.Create)
	r.Get("/survey/{survey:[0-9]+}/edit", surveyHandler.EditForm)
	r.Post("/survey/{survey:[0-9]+}/edit", surveyHandler.Edit)
	r.Post("/survey/{survey:[0-9]+}/delete", surveyHandler.Delete)
	r.Get("/survey/{survey:[0-9]+}/responses", surveyHandler.Responses)

	// Questions
	r.Get("/addquestion/{survey:[0-9]+}", questionHandler.AddQuestionForm)
	r.Post("/survey/{survey:[0-9]+}/question", questionHandler.AddQuestion)

	// Respondents
	r.Get("/survey/{id:[0-9]+}", surveyHandler.Show)
	r.Get("/s/{slug}", surveyHandler.BySlug)
	r.Post("/survey/{id:[0-9]+}/submit", submitHandler.Submit)
	r.Get("/thanks/{id:[0-9]+}", surveyHandler.Thanks)

	return r
}
