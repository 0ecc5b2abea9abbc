// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap the router with request logging:

	r := chi.NewRouter()
	r.Use(middleware.WithLogging)

Logs request start (method, path, remote) and completion (duration_ms)
through logrus. Each request gets an id from X-Request-ID or a new uuid,
echoed back in the response header. Handlers log with the id attached:

	middleware.Logger(r).WithError(err).Error("failed to save response")

# JSON Helpers

Write JSON responses through go-chi/render:

	middleware.JSONResponse(w, r, http.StatusOK, data)
	middleware.ErrorResponse(w, r, http.StatusNotFound, "Survey not found")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Stored with each survey response.
*/
package middleware
