// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey server.

Operators build surveys out of ordered questions (text, textarea, email,
number, select, checkbox-list and section headings), publish them at
/survey/{id} or a slug, and collect responses. Submissions are validated
against rules built from the survey's required questions, normalized into
answers and stored in one transaction.

# Starting the Server

With no configuration the server listens on 3318 and stores data in
surveys.db (SQLite):

	go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..."

# Configuration

Settings come from flags, then environment variables (a .env file is
loaded first), then an optional YAML file, then defaults:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or SQLite file (default: surveys.db)
  - LOG_LEVEL (-log-level): logrus level (default: info)
  - CONFIG_FILE (-c): YAML file with the keys above

# Architecture

  - handlers: HTTP request handlers (surveys, questions, submissions)
  - router: Route definitions on chi
  - middleware: Request logging, request ids, JSON helpers
  - survey: Validation rules, answer normalization, submission flow
  - views: Embedded pongo2 templates
  - models: Domain and form types
  - db: Connection, schema creation and the store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
