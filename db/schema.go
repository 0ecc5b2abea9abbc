// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	_, err := db.Exec(schemaFor(dialect))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// schemaFor fills in the auto-increment primary key of the dialect.
func schemaFor(dialect string) string {
	pk := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == DialectPostgres {
		pk = "BIGSERIAL PRIMARY KEY"
	}
	return strings.ReplaceAll(schema, "{{pk}}", pk)
}

const schema = `
-- Surveys
CREATE TABLE IF NOT EXISTS survey (
    id {{pk}},
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    return_url TEXT NOT NULL DEFAULT '',
    css TEXT NOT NULL DEFAULT '',
    thank_you_message TEXT NOT NULL DEFAULT '',
    slug TEXT NOT NULL DEFAULT '',
    kiosk_mode BOOLEAN NOT NULL DEFAULT FALSE,
    begin_at TIMESTAMP,
    end_at TIMESTAMP,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_slug ON survey(slug);

-- Questions, owned by their survey
CREATE TABLE IF NOT EXISTS question (
    id {{pk}},
    survey_id BIGINT NOT NULL REFERENCES survey(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    question_type TEXT NOT NULL DEFAULT 'text',
    options TEXT,
    required BOOLEAN NOT NULL DEFAULT FALSE,
    css_class TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_survey_id ON question(survey_id, position);

-- Responses reference their survey without owning it
CREATE TABLE IF NOT EXISTS survey_response (
    id {{pk}},
    survey_id BIGINT NOT NULL,
    ip TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_response_survey_id ON survey_response(survey_id);

-- Answers, owned by their response
CREATE TABLE IF NOT EXISTS answer (
    id {{pk}},
    response_id BIGINT NOT NULL REFERENCES survey_response(id) ON DELETE CASCADE,
    question_id BIGINT NOT NULL,
    value TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_response_id ON answer(response_id);
`
