package chat

import (
	"errors"

	"groq-chatbot/pkg/llmprovider"
)

var (
	ErrInvalidKeyFormat = errors.New("invalid API key format")
	ErrDocumentDecode   = errors.New("document is not valid UTF-8 text")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionBusy      = errors.New("session is busy with another interaction")
	ErrEmptyQuestion    = errors.New("question must not be empty")
	ErrInvalidModel     = errors.New("model must not be empty")
	ErrInvalidTemp      = errors.New("temperature out of range")
	ErrTurnOrder        = errors.New("assistant turn must follow a user turn")
)

// KeyFormatError explains why an API key was rejected. It matches
// ErrInvalidKeyFormat with errors.Is.
type KeyFormatError struct {
	Reason string
}

func (e *KeyFormatError) Error() string { return e.Reason }

func (e *KeyFormatError) Is(target error) bool { return target == ErrInvalidKeyFormat }

// User-facing messages, one per failure class.
const (
	MsgAuthentication = "Authentication failed: check that your API key is correct and active."
	MsgRateLimit      = "Rate limit reached: wait a moment before sending another message."
	MsgConnection     = "Could not reach the model API: check your connection and try again."
	MsgUnclassified   = "The model API returned an unexpected error."
	MsgDocumentDecode = "The file could not be read as UTF-8 text."
)

// UserMessage turns an interaction error into the message shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var kfe *KeyFormatError
	if errors.As(err, &kfe) {
		return kfe.Reason
	}
	if errors.Is(err, ErrDocumentDecode) {
		return MsgDocumentDecode
	}

	switch llmprovider.KindOf(err) {
	case llmprovider.KindAuthentication:
		return MsgAuthentication
	case llmprovider.KindRateLimit:
		return MsgRateLimit
	case llmprovider.KindConnection:
		return MsgConnection
	default:
		return MsgUnclassified
	}
}
