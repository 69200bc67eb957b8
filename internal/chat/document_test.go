package chat

import (
	"errors"
	"testing"
)

func TestLoadSourceDocument(t *testing.T) {
	s := NewSession("doc")
	s.AppendUser(UserTurn{Content: "old question"})

	doc, err := LoadSourceDocument(s, "notes.txt", []byte("héllo wörld"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "héllo wörld" || doc.Name != "notes.txt" {
		t.Errorf("unexpected document %+v", doc)
	}
	if s.Len() != 0 {
		t.Errorf("expected turns cleared, got %d", s.Len())
	}
	if s.ResetCounter() != 1 {
		t.Errorf("expected reset counter 1, got %d", s.ResetCounter())
	}
}

func TestLoadSourceDocument_InvalidUTF8LeavesSessionUntouched(t *testing.T) {
	s := NewSession("doc")
	if _, err := LoadSourceDocument(s, "first.txt", []byte("first text")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.AppendUser(UserTurn{Content: "q"})

	_, err := LoadSourceDocument(s, "binary.bin", []byte{0xff, 0xfe, 0x00, 0x80})
	if !errors.Is(err, ErrDocumentDecode) {
		t.Fatalf("expected ErrDocumentDecode, got %v", err)
	}

	doc, ok := s.Document()
	if !ok || doc.Text != "first text" {
		t.Errorf("expected previous document kept, got %+v (ok=%v)", doc, ok)
	}
	if s.Len() != 1 {
		t.Errorf("expected turns kept, got %d", s.Len())
	}
	if s.ResetCounter() != 1 {
		t.Errorf("expected reset counter unchanged, got %d", s.ResetCounter())
	}
	if UserMessage(err) != MsgDocumentDecode {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}
}
