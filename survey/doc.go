// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey implements response validation, answer normalization and
submission handling, plus the checks behind the survey and question forms.

# Submissions

A submission moves through these states:

	received → validating → rejected
	                      → normalizing → empty      → redirecting → done
	                                    → persisting → redirecting → done

A cross-posted submission (echoed survey_id differs and a return_url longer
than five characters is present) jumps from received straight to redirecting.

	orch := survey.NewOrchestrator(store)
	out, err := orch.Submit(ctx, survey.Submission{
		SurveyID: 7,
		Fields:   survey.FieldsFromForm(r.PostForm),
		IP:       ip,
	})

# Rules

BuildRules turns the survey's questions into one "must be non-empty" rule
per required question, keyed "q-<question id>". Rules.Check reports every
violation at once with the message "<label> is required".

# Answers

Normalize produces at most one answer per question. Collections are joined
with "|"; blank single values are dropped.

# Errors

  - ErrNotFound: missing survey
  - *ValidationError: one or more field violations
  - *StoreWriteError: persisting failed, nothing was kept
*/
package survey
