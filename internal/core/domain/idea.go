package domain

import "strings"

// NormaliseIdea trims the product idea and rejects empty input.
func NormaliseIdea(idea string) (string, error) {
	trimmed := strings.TrimSpace(idea)
	if trimmed == "" {
		return "", ErrEmptyIdea
	}
	return trimmed, nil
}
