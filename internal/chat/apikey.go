package chat

import "strings"

const (
	// APIKeyPrefix is the prefix every Groq key carries.
	APIKeyPrefix = "gsk_"

	// MinAPIKeyLength is the shortest key accepted. Real keys are 56 characters.
	MinAPIKeyLength = 50
)

// ValidateAPIKeyFormat is a format sanity check only. A key that passes may
// still be rejected by the API.
func ValidateAPIKeyFormat(key string) error {
	switch {
	case key == "":
		return &KeyFormatError{Reason: "API key must not be empty"}
	case len(key) < MinAPIKeyLength:
		return &KeyFormatError{Reason: "API key is too short"}
	case !strings.HasPrefix(key, APIKeyPrefix):
		return &KeyFormatError{Reason: "API key must start with " + APIKeyPrefix}
	}
	return nil
}
