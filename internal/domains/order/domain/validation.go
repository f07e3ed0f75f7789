package domain

import (
	"regexp"
	"sort"
	"strings"
)

// PhoneMessage is reported when the phone number does not look like a phone number.
const PhoneMessage = "Please give us your correct phone number. We might need it to contact you."

var phonePattern = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\(?\d{1,3}?\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}$`)

// ValidationErrors maps a field name to the message shown next to it.
type ValidationErrors map[string]string

// Empty reports whether the draft passed every rule.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Fields lists the failing fields in a stable order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, field+": "+v[field])
	}
	return "order validation failed: " + strings.Join(parts, "; ")
}

// IsValidPhone reports whether the value matches the international phone pattern.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Validate runs every rule against the draft and collects all failures.
func Validate(draft Draft) ValidationErrors {
	errs := ValidationErrors{}
	if !IsValidPhone(draft.Phone) {
		errs[FieldPhone] = PhoneMessage
	}
	return errs
}
