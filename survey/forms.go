// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/quickly-survey/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.QuestionTypes, fl.Field().String())
	})

	return v
}

// timestampLayouts are the date formats accepted from forms.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	models.TimestampLayout,
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseTimestamp parses a form date and normalizes it to UTC with second
// precision, the resolution of models.TimestampLayout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// NormalizeSlug replaces spaces with underscores.
func NormalizeSlug(slug string) string {
	return strings.ReplaceAll(slug, " ", "_")
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// CheckSurveyForm validates the create and edit survey forms.
func CheckSurveyForm(f models.SurveyForm) error {
	return checkStruct(f)
}

// CheckQuestionForm validates the add question form. Options are required
// for choice-set question types.
func CheckQuestionForm(f models.QuestionForm) error {
	verr := &ValidationError{}
	if err := checkStruct(f); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}
	if models.HasChoices(f.QuestionType) && strings.TrimSpace(f.Options) == "" {
		verr.add("options", "The options field is required when question type is "+f.QuestionType+".")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func checkStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return "The " + name + " field is required."
	case "max":
		return "The " + name + " may not be greater than " + fe.Param() + " characters."
	case "boolean":
		return "The " + name + " field must be true or false."
	case "timestamp":
		return "The " + name + " is not a valid date."
	case "questiontype":
		return "The selected " + name + " is invalid."
	}
	return "The " + name + " field is invalid."
}

// NewSurvey builds a survey from a checked create form. Only supplied
// fields are set; dates are normalized and the survey starts active.
func NewSurvey(f models.SurveyForm) models.Survey {
	s := models.Survey{
		Name:            f.Name,
		Description:     f.Description,
		ReturnURL:       f.ReturnURL,
		CSS:             f.CSS,
		ThankYouMessage: f.ThankYouMessage,
		Slug:            NormalizeSlug(f.Slug),
		KioskMode:       parseBool(f.KioskMode),
		Active:          true,
	}
	s.BeginAt = optionalTimestamp(f.BeginAt)
	s.EndAt = optionalTimestamp(f.EndAt)
	return s
}

// ApplyEdit overwrites the editable fields of s from a checked edit form.
// Markup is stripped from the css; dates are only replaced when supplied.
// Applying the same form twice leaves s unchanged the second time.
func ApplyEdit(s *models.Survey, f models.SurveyForm) {
	s.Name = f.Name
	s.Description = f.Description
	s.CSS = StripMarkup(f.CSS)
	s.ReturnURL = f.ReturnURL
	s.ThankYouMessage = f.ThankYouMessage
	s.Slug = NormalizeSlug(f.Slug)
	if t := optionalTimestamp(f.BeginAt); t != nil {
		s.BeginAt = t
	}
	if t := optionalTimestamp(f.EndAt); t != nil {
		s.EndAt = t
	}
}

// NewQuestion builds a question from a checked add question form.
func NewQuestion(surveyID int64, f models.QuestionForm) models.Question {
	q := models.Question{
		SurveyID:     surveyID,
		Label:        f.Label,
		QuestionType: f.QuestionType,
		Required:     parseBool(f.Required),
		CSSClass:     f.CSSClass,
	}
	if q.QuestionType == "" {
		q.QuestionType = models.TypeText
	}
	if strings.TrimSpace(f.Options) != "" {
		opts := f.Options
		q.Options = &opts
	}
	return q
}

func optionalTimestamp(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return nil
	}
	return &t
}
