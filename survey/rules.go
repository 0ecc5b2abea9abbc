// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"strings"

	"github.com/danielhkuo/quickly-survey/models"
)

// Rule requires a non-empty answer for one question.
type Rule struct {
	Field      string
	QuestionID int64
	Label      string
	Message    string
}

// Rules is the rule set of one survey, in question order.
type Rules []Rule

// BuildRules maps a survey's questions to its rule set. Every required
// question gets a rule, including sections.
func BuildRules(questions []models.Question) Rules {
	var rules Rules
	for _, q := range questions {
		if !q.Required {
			continue
		}
		rules = append(rules, Rule{
			Field:      FieldKey(q.ID),
			QuestionID: q.ID,
			Label:      q.Label,
			Message:    q.Label + " is required",
		})
	}
	return rules
}

// ByField returns the rule map keyed by field key.
func (rs Rules) ByField() map[string]Rule {
	out := make(map[string]Rule, len(rs))
	for _, r := range rs {
		out[r.Field] = r
	}
	return out
}

// Check runs every rule against fields and returns a *ValidationError listing
// all violations, or nil.
func (rs Rules) Check(fields Fields) error {
	verr := &ValidationError{}
	for _, r := range rs {
		if !present(fields[r.Field]) {
			verr.add(r.Field, r.Message)
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// present reports whether v satisfies "must be non-empty": a collection needs
// at least one element, a single string must be non-blank after trimming.
// An absent field is the zero Value, a blank single string.
func present(v Value) bool {
	if v.Multi {
		return validate.Var(v.Values, "min=1") == nil
	}
	return validate.Var(strings.TrimSpace(v.String()), "required") == nil
}
