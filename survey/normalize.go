// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"strings"

	"github.com/danielhkuo/quickly-survey/models"
)

// Normalize turns submitted fields into at most one answer per question, in
// question order. Absent fields, empty collections and blank strings produce
// no answer. Collections are joined with models.AnswerSeparator; single
// strings are kept untrimmed.
func Normalize(questions []models.Question, fields Fields) []models.Answer {
	answers := []models.Answer{}
	for _, q := range questions {
		v, ok := fields[FieldKey(q.ID)]
		if !ok {
			continue
		}

		var value string
		if v.Multi {
			if len(v.Values) == 0 {
				continue
			}
			value = strings.Join(v.Values, models.AnswerSeparator)
		} else {
			value = v.String()
			if strings.TrimSpace(value) == "" {
				continue
			}
		}

		answers = append(answers, models.Answer{
			QuestionID: q.ID,
			Value:      value,
		})
	}
	return answers
}
