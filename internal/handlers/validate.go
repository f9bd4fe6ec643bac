package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation limits for profile and design fields.
const (
	maxNameLen         = 200
	maxPromptLen       = 4_000
	maxSystemPromptLen = 4_000
	maxTextFieldLen    = 2_000
	maxCanvasDim       = 4_096
	minCanvasDim       = 64
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// fieldError is one validation failure. Validators return the first
// failure found, zero value means valid.
type fieldError struct {
	Field   string
	Message string
}

func (e fieldError) ok() bool { return e.Field == "" }

func (e fieldError) details() map[string]string {
	return map[string]string{e.Field: e.Message}
}

// validateProfileInput checks the create/update profile body.
func validateProfileInput(name, colorDark, colorLight, colorAccent, systemPrompt string) fieldError {
	if strings.TrimSpace(name) == "" {
		return fieldError{"name", "Name is required."}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fieldError{"name", "Name is too long (max 200 characters)."}
	}
	colors := []struct{ field, value string }{
		{"colorDark", colorDark},
		{"colorLight", colorLight},
		{"colorAccent", colorAccent},
	}
	for _, c := range colors {
		if c.value != "" && !hexColorRe.MatchString(c.value) {
			return fieldError{c.field, "Color must be a hex value like #1a1a2e."}
		}
	}
	if utf8.RuneCountInString(systemPrompt) > maxSystemPromptLen {
		return fieldError{"systemPrompt", "System prompt is too long (max 4,000 characters)."}
	}
	return fieldError{}
}

// validateDesignInput checks the create/update design body.
func validateDesignInput(name string, width, height int) fieldError {
	if strings.TrimSpace(name) == "" {
		return fieldError{"name", "Name is required."}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fieldError{"name", "Name is too long (max 200 characters)."}
	}
	if width < minCanvasDim || width > maxCanvasDim {
		return fieldError{"width", "Width must be between 64 and 4096 pixels."}
	}
	if height < minCanvasDim || height > maxCanvasDim {
		return fieldError{"height", "Height must be between 64 and 4096 pixels."}
	}
	return fieldError{}
}

// validatePrompt checks a generation prompt.
func validatePrompt(prompt string) fieldError {
	if strings.TrimSpace(prompt) == "" {
		return fieldError{"prompt", "Prompt is required."}
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return fieldError{"prompt", "Prompt is too long (max 4,000 characters)."}
	}
	return fieldError{}
}

// validEmailRe is deliberately loose; the authority on address validity
// is the mail system, not this regex.
var validEmailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) fieldError {
	if !validEmailRe.MatchString(strings.TrimSpace(email)) {
		return fieldError{"email", "A valid email address is required."}
	}
	return fieldError{}
}
