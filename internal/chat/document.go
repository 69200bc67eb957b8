package chat

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// LoadSourceDocument decodes raw as UTF-8 and makes it the session's active
// document, clearing the history. On a decode error the session is untouched.
func LoadSourceDocument(s *Session, name string, raw []byte) (Document, error) {
	if !utf8.Valid(raw) {
		return Document{}, fmt.Errorf("%s: %w", name, ErrDocumentDecode)
	}

	doc := Document{
		Name:     name,
		Text:     string(raw),
		LoadedAt: time.Now(),
	}
	s.SetDocument(doc)
	return doc, nil
}
