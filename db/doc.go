// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and implements the store.

# Drivers

Open selects the driver from the configured database type:

  - sqlite: modernc.org/sqlite, foreign keys on, one connection
  - postgres: github.com/lib/pq

	conn, err := db.Open(ctx, db.DialectSQLite, "surveys.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey: survey metadata and active window
  - question: ordered, typed questions of a survey
  - survey_response: one submission with submitter IP
  - answer: one value per answered question

# Relationships

	survey 1──* question         (ON DELETE CASCADE)
	survey_response 1──* answer  (ON DELETE CASCADE)
	survey_response *──1 survey  (reference only)
	answer *──1 question         (reference only)

# Store

Store implements survey.Store. SaveResponse writes a response and all of
its answers in a single transaction.
*/
package db
