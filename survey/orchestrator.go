// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/danielhkuo/quickly-survey/models"
)

// State is a step of a submission.
type State int

const (
	Received State = iota
	Validating
	Rejected
	Normalizing
	Empty
	Persisting
	Redirecting
	Done
)

var stateNames = [...]string{
	Received:    "received",
	Validating:  "validating",
	Rejected:    "rejected",
	Normalizing: "normalizing",
	Empty:       "empty",
	Persisting:  "persisting",
	Redirecting: "redirecting",
	Done:        "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// minReturnURLLen is the length a return URL must exceed to be followed.
const minReturnURLLen = 5

// Store is the persistence the orchestrator needs.
type Store interface {
	// GetSurvey loads a survey with its ordered questions, or ErrNotFound.
	GetSurvey(ctx context.Context, id int64) (models.Survey, error)
	// SaveResponse stores a response and all of its answers atomically and
	// returns the new response id.
	SaveResponse(ctx context.Context, resp models.SurveyResponse) (int64, error)
}

// Submission is one respondent's POST against a survey.
type Submission struct {
	SurveyID int64
	Fields   Fields
	IP       string

	// EchoedSurveyID and ReturnURL are the survey_id and return_url fields
	// sent back by the client, if any.
	EchoedSurveyID string
	ReturnURL      string
}

// Outcome describes how a submission ended.
type Outcome struct {
	States     []State
	Survey     models.Survey
	Answers    []models.Answer
	ResponseID int64

	// Redirect is where the respondent is sent next. External is true for
	// return URLs outside the application.
	Redirect string
	External bool
}

// Final returns the last state reached.
func (o Outcome) Final() State {
	if len(o.States) == 0 {
		return Received
	}
	return o.States[len(o.States)-1]
}

// Reached reports whether the submission passed through s.
func (o Outcome) Reached(s State) bool {
	for _, st := range o.States {
		if st == s {
			return true
		}
	}
	return false
}

func (o *Outcome) enter(s State) {
	o.States = append(o.States, s)
}

// ThanksPath is the internal thank-you page of a survey.
func ThanksPath(surveyID int64) string {
	return "/thanks/" + strconv.FormatInt(surveyID, 10)
}

// Orchestrator runs submissions: validate, normalize, persist, redirect.
type Orchestrator struct {
	store Store
}

func NewOrchestrator(store Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// Submit processes sub. A rejected submission returns a *ValidationError
// together with an outcome holding the loaded survey, so the caller can
// re-render the form. Nothing is written unless at least one answer exists.
func (o *Orchestrator) Submit(ctx context.Context, sub Submission) (Outcome, error) {
	out := Outcome{}
	out.enter(Received)

	if crossPosted(sub) {
		log.WithFields(log.Fields{
			"survey_id":  sub.SurveyID,
			"echoed_id":  sub.EchoedSurveyID,
			"return_url": sub.ReturnURL,
		}).Debug("cross-posted submission, redirecting to return url")
		out.enter(Redirecting)
		out.Redirect = sub.ReturnURL
		out.External = true
		out.enter(Done)
		return out, nil
	}

	s, err := o.store.GetSurvey(ctx, sub.SurveyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return out, err
		}
		return out, fmt.Errorf("load survey %d: %w", sub.SurveyID, err)
	}
	out.Survey = s

	out.enter(Validating)
	if err := BuildRules(s.Questions).Check(sub.Fields); err != nil {
		out.enter(Rejected)
		return out, err
	}

	out.enter(Normalizing)
	out.Answers = Normalize(s.Questions, sub.Fields)

	if len(out.Answers) == 0 {
		out.enter(Empty)
	} else {
		out.enter(Persisting)
		id, err := o.store.SaveResponse(ctx, models.SurveyResponse{
			SurveyID: s.ID,
			IP:       sub.IP,
			Answers:  out.Answers,
		})
		if err != nil {
			return out, &StoreWriteError{Op: "save response", Err: err}
		}
		out.ResponseID = id
	}

	out.enter(Redirecting)
	out.Redirect, out.External = redirectFor(s)
	out.enter(Done)
	return out, nil
}

// crossPosted reports whether the client echoed a different survey id and
// supplied a usable return URL. A missing or malformed echoed id counts as
// different. Without a usable return URL the submission is processed normally.
func crossPosted(sub Submission) bool {
	if len(sub.ReturnURL) <= minReturnURLLen {
		return false
	}
	echoed, err := strconv.ParseInt(strings.TrimSpace(sub.EchoedSurveyID), 10, 64)
	return err != nil || echoed != sub.SurveyID
}

func redirectFor(s models.Survey) (target string, external bool) {
	if len(s.ReturnURL) > minReturnURLLen && !s.KioskMode {
		return s.ReturnURL, true
	}
	return ThanksPath(s.ID), false
}
