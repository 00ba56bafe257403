package normalization

import (
	"strings"
)

// ParseInputString lowercases and trims free-form identity input
// (emails, role names). Display fields use TrimInputString instead so
// casing survives.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func TrimInputString(input string) string {
	return strings.TrimSpace(input)
}

func TrimInputStringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*input)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
