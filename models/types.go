// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strings"
	"time"
)

// Question type constants
const (
	TypeText         = "text"
	TypeTextarea     = "textarea"
	TypeEmail        = "email"
	TypeNumber       = "number"
	TypeSelect       = "select"
	TypeCheckboxList = "checkbox-list"
	TypeSection      = "section"
)

// QuestionTypes lists every accepted question type in display order.
var QuestionTypes = []string{
	TypeText, TypeTextarea, TypeEmail, TypeNumber,
	TypeSelect, TypeCheckboxList, TypeSection,
}

// TimestampLayout is the canonical format survey dates are normalized to.
const TimestampLayout = "2006-01-02 15:04:05"

// AnswerSeparator joins the values of a multi-value answer.
const AnswerSeparator = "|"

// HasChoices reports whether questions of type t carry an options list.
func HasChoices(t string) bool {
	switch t {
	case TypeSelect, TypeCheckboxList, TypeSection:
		return true
	}
	return false
}

// Form payloads

// SurveyForm is the POST body of the create and edit survey forms.
// Fields are strings so absent values can be told apart from empty ones.
type SurveyForm struct {
	Name            string `form:"name" validate:"required,max=255"`
	Description     string `form:"description"`
	ReturnURL       string `form:"return_url"`
	CSS             string `form:"css"`
	ThankYouMessage string `form:"thank_you_message"`
	Slug            string `form:"slug"`
	KioskMode       string `form:"kiosk_mode" validate:"omitempty,boolean"`
	BeginAt         string `form:"begin_at" validate:"omitempty,timestamp"`
	EndAt           string `form:"end_at" validate:"omitempty,timestamp"`
}

// QuestionForm is the POST body of the add question form.
type QuestionForm struct {
	Label        string `form:"label" validate:"required,max=255"`
	QuestionType string `form:"question_type" validate:"omitempty,questiontype"`
	Options      string `form:"options"`
	Required     string `form:"required" validate:"omitempty,boolean"`
	CSSClass     string `form:"css_class"`
}

// Domain types

type Survey struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ReturnURL       string     `json:"return_url,omitempty"`
	CSS             string     `json:"css,omitempty"`
	ThankYouMessage string     `json:"thank_you_message"`
	Slug            string     `json:"slug,omitempty"`
	KioskMode       bool       `json:"kiosk_mode"`
	BeginAt         *time.Time `json:"begin_at,omitempty"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	Questions       []Question `json:"questions,omitempty"`
}

// IsOpen reports whether the survey accepts responses at now: the stored
// active flag is set and now lies inside the optional [BeginAt, EndAt) window.
func (s Survey) IsOpen(now time.Time) bool {
	if !s.Active {
		return false
	}
	if s.BeginAt != nil && now.Before(*s.BeginAt) {
		return false
	}
	if s.EndAt != nil && !now.Before(*s.EndAt) {
		return false
	}
	return true
}

type Question struct {
	ID           int64     `json:"id"`
	SurveyID     int64     `json:"survey_id"`
	Position     int       `json:"position"`
	Label        string    `json:"label"`
	QuestionType string    `json:"question_type"`
	Options      *string   `json:"options,omitempty"`
	Required     bool      `json:"required"`
	CSSClass     string    `json:"css_class,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Choices splits the stored options into one entry per non-blank line.
func (q Question) Choices() []string {
	if q.Options == nil {
		return nil
	}
	var choices []string
	for _, line := range strings.Split(*q.Options, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			choices = append(choices, line)
		}
	}
	return choices
}

type SurveyResponse struct {
	ID        int64     `json:"id"`
	SurveyID  int64     `json:"survey_id"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers"`
}

type Answer struct {
	ID         int64  `json:"id,omitempty"`
	ResponseID int64  `json:"response_id,omitempty"`
	QuestionID int64  `json:"question_id"`
	Value      string `json:"value"`
}

// SurveySummary is one row of the survey list.
type SurveySummary struct {
	Survey
	QuestionCount int `json:"question_count"`
	ResponseCount int `json:"response_count"`
}

// Response types

type ResponsesExport struct {
	Survey    Survey           `json:"survey"`
	Responses []SurveyResponse `json:"responses"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
