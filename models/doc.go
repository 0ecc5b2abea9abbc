// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines form payload, domain, and response types.

# Form Payloads

Types decoded from application/x-www-form-urlencoded bodies:

  - SurveyForm: name, description, return_url, css, thank_you_message,
    slug, kiosk_mode, begin_at, end_at
  - QuestionForm: label, question_type, options, required, css_class

All fields are strings; conversion happens after validation.

# Domain Types

  - Survey: survey metadata, active window, ordered questions
  - Question: typed prompt, optional options (one per line)
  - SurveyResponse: one submission with submitter IP
  - Answer: one question's value within a response
  - SurveySummary: survey with question and response counts

# Constants

Question types:

	TypeText         = "text"
	TypeTextarea     = "textarea"
	TypeEmail        = "email"
	TypeNumber       = "number"
	TypeSelect       = "select"
	TypeCheckboxList = "checkbox-list"
	TypeSection      = "section"

Select, checkbox-list and section questions require options.
Multi-value answers are joined with AnswerSeparator ("|").
*/
package models
