package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Job fields
	"Title":       "Job Title",
	"Description": "Job Description",
	"Skills":      "Required Skills",
	"Location":    "Location",
	"Min":         "Minimum",
	"Max":         "Maximum",

	// CandidateProfile fields
	"Headline":   "Profile Headline",
	"About":      "About",
	"Experience": "Work Experience",
	"Education":  "Education",

	// Work Experience fields
	"Company":      "Company",
	"StartDate":    "Start Date",
	"EndDate":      "End Date",
	"Current":      "Current Position",
	"School":       "School",
	"Degree":       "Degree",
	"FieldOfStudy": "Field of Study",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins the formatted errors into one response-ready string
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must have at least %s entries", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must have at most %s entries", label, param)

	case "gte":
		return fmt.Sprintf("%s must be %s or more", label, param)

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
