package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const DefaultMinLength = 10

const (
	RuleWhitespace = "whitespace"
	RuleMinLength  = "min_length"
	RulePrefix     = "prefix"
)

// Validator applies the light heuristics used before saving.
type Validator struct {
	MinLength   int
	CheckPrefix bool
}

func DefaultValidator() Validator {
	return Validator{MinLength: DefaultMinLength, CheckPrefix: true}
}

// Validate checks one candidate. Blank and placeholder values are not an error.
func (v Validator) Validate(candidate string, d Descriptor) error {
	if d.IsPlaceholder(candidate) {
		return nil
	}
	s := strings.TrimSpace(candidate)
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return &ValidationError{Provider: d.ID, Rule: RuleWhitespace,
			Message: fmt.Sprintf("%s key must not contain spaces", d.DisplayName)}
	}
	minLen := v.MinLength
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	if utf8.RuneCountInString(s) < minLen {
		return &ValidationError{Provider: d.ID, Rule: RuleMinLength,
			Message: fmt.Sprintf("%s key is too short (min %d characters)", d.DisplayName, minLen)}
	}
	if v.CheckPrefix && d.RequiredPrefix != "" && !strings.HasPrefix(s, d.RequiredPrefix) {
		return &ValidationError{Provider: d.ID, Rule: RulePrefix,
			Message: fmt.Sprintf("%s key must start with %q", d.DisplayName, d.RequiredPrefix)}
	}
	return nil
}

// ValidateForm returns the first failure in descriptor order.
func (v Validator) ValidateForm(f FormState, descriptors []Descriptor) error {
	for _, d := range descriptors {
		if err := v.Validate(f.Get(d.ID), d); err != nil {
			return err
		}
	}
	return nil
}
