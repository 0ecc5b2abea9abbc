// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the survey pages.

# Handler Types

Each handler is a struct with store and view dependencies:

  - SurveyHandler: survey list, create, show, edit, delete, thanks, export
  - QuestionHandler: add-question page and question creation
  - SubmitHandler: respondent submissions

Handlers are created via constructor functions:

	surveyHandler := handlers.NewSurveyHandler(store, renderer)

# Submissions

	POST /survey/{id}/submit → Submit

Submit hands the posted q-<question id> fields to survey.Orchestrator and
answers with a 302 to the survey's return URL or its thanks page. Failed
validation re-renders the form with status 422, every field message and the
submitted values. Missing surveys are 404; failed writes are 500.

# Forms

Survey and question forms are decoded with ajg/form into models.SurveyForm
and models.QuestionForm, then checked in package survey. Invalid forms are
re-rendered with status 422.

	POST /survey                  → Create (redirects to /addquestion/{id})
	POST /survey/{survey}/edit     → Edit (redirects to /list?status=...)
	POST /survey/{survey}/question → AddQuestion

# Export

	GET /survey/{survey}/responses → Responses

Returns the survey and all responses with their answers as JSON.
*/
package handlers
