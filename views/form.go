// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"slices"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/survey"
)

// Choice is one option of a select or checkbox-list question.
type Choice struct {
	Label    string
	Selected bool
}

// FormField is one question as the submission form shows it.
type FormField struct {
	Key      string
	ID       int64
	Label    string
	Type     string
	CSSClass string
	Required bool
	Choices  []Choice
	Text     string
	Value    string
	Error    string
}

// FormFields prepares the questions of s for the submission form, filled with
// previously submitted values and their validation messages.
func FormFields(s models.Survey, old survey.Fields, errs map[string]string) []FormField {
	fields := make([]FormField, 0, len(s.Questions))
	for _, q := range s.Questions {
		key := survey.FieldKey(q.ID)
		prev := old[key]

		f := FormField{
			Key:      key,
			ID:       q.ID,
			Label:    q.Label,
			Type:     q.QuestionType,
			CSSClass: q.CSSClass,
			Required: q.Required,
			Value:    prev.String(),
			Error:    errs[key],
		}
		if q.QuestionType == models.TypeSection {
			if q.Options != nil {
				f.Text = *q.Options
			}
		} else {
			for _, c := range q.Choices() {
				f.Choices = append(f.Choices, Choice{
					Label:    c,
					Selected: slices.Contains(prev.Values, c),
				})
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// FormatTimestamp renders an optional date in the canonical layout.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(models.TimestampLayout)
}
