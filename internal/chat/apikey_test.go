package chat

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAPIKeyFormat(t *testing.T) {
	valid := "gsk_" + strings.Repeat("a", 52)

	tests := []struct {
		name    string
		key     string
		wantErr bool
		reason  string
	}{
		{name: "empty", key: "", wantErr: true, reason: "API key must not be empty"},
		{name: "short", key: "short", wantErr: true, reason: "API key is too short"},
		{name: "short with prefix", key: "gsk_abc", wantErr: true, reason: "API key is too short"},
		{name: "long without prefix", key: strings.Repeat("x", 56), wantErr: true, reason: "API key must start with gsk_"},
		{name: "valid 56 chars", key: valid},
		{name: "exactly minimum", key: "gsk_" + strings.Repeat("b", MinAPIKeyLength-4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKeyFormat(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAPIKeyFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidKeyFormat) {
				t.Errorf("expected ErrInvalidKeyFormat, got %v", err)
			}
			if err.Error() != tt.reason {
				t.Errorf("expected reason %q, got %q", tt.reason, err.Error())
			}
			if UserMessage(err) != tt.reason {
				t.Errorf("expected user message %q, got %q", tt.reason, UserMessage(err))
			}
		})
	}

	if len(valid) != 56 {
		t.Fatalf("test key should be 56 chars, got %d", len(valid))
	}
}
