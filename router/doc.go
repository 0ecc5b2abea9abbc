// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey application.

# Route Registration

NewRouter creates a chi router with all endpoints:

	r := router.NewRouter(store, renderer)

Every request passes through chi's Recoverer and middleware.WithLogging.

# Endpoints

Health:

	GET /health

Survey management:

	GET  /                           - Redirect to /list
	GET  /list                       - Surveys with counts
	GET  /survey/create              - Create form
	POST /survey                     - Create survey
	GET  /survey/{survey}/edit       - Edit form
	POST /survey/{survey}/edit       - Update survey
	POST /survey/{survey}/delete     - Delete survey
	GET  /survey/{survey}/responses  - JSON export
	GET  /addquestion/{survey}       - Question list and add form
	POST /survey/{survey}/question   - Append question

Respondents:

	GET  /survey/{id}        - Form, or thanks view when closed
	GET  /s/{slug}           - Redirect to the survey with that slug
	POST /survey/{id}/submit - Submit answers
	GET  /thanks/{id}        - Thank-you view

Ids are numeric; anything else does not match a route.
*/
package router
