package chat

import (
	"errors"
	"testing"
)

func TestSession_TurnOrder(t *testing.T) {
	s := NewSession("order")

	if err := s.AppendAssistant(AssistantTurn{Response1: "a", Response2: "b"}); !errors.Is(err, ErrTurnOrder) {
		t.Errorf("expected ErrTurnOrder on empty session, got %v", err)
	}

	s.AppendUser(UserTurn{Content: "q"})
	if err := s.AppendAssistant(AssistantTurn{Response1: "a", Response2: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AppendAssistant(AssistantTurn{Response1: "a", Response2: "b"}); !errors.Is(err, ErrTurnOrder) {
		t.Errorf("expected ErrTurnOrder after assistant turn, got %v", err)
	}
}

func TestSession_TruncateRollsBack(t *testing.T) {
	s := NewSession("rollback")
	s.AppendUser(UserTurn{Content: "q1"})
	s.AppendAssistant(AssistantTurn{Response1: "a", Single: true})

	mark := s.AppendUser(UserTurn{Content: "q2"})
	if mark != 2 {
		t.Fatalf("expected mark 2, got %d", mark)
	}
	s.Truncate(mark)

	if s.Len() != 2 {
		t.Errorf("expected 2 turns after rollback, got %d", s.Len())
	}
	s.Truncate(10)
	if s.Len() != 2 {
		t.Errorf("out-of-range truncate must be a no-op, got %d", s.Len())
	}
}

func TestSession_Reset(t *testing.T) {
	s := NewSession("reset")
	LoadSourceDocument(s, "a.txt", []byte("text"))
	s.AppendUser(UserTurn{Content: "q"})

	s.Reset()

	if s.Len() != 0 {
		t.Errorf("expected no turns, got %d", s.Len())
	}
	if _, ok := s.Document(); ok {
		t.Error("expected document dropped")
	}
	if s.ResetCounter() != 2 {
		t.Errorf("expected counter 2 (load + reset), got %d", s.ResetCounter())
	}
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := NewSession("snap")
	s.AppendUser(UserTurn{Content: "q"})

	snap := s.Snapshot()
	snap.Turns[0] = UserTurn{Content: "mutated"}

	if got := s.Turns()[0].(UserTurn).Content; got != "q" {
		t.Errorf("snapshot shares storage with session: %q", got)
	}
}

func TestSession_TryBegin(t *testing.T) {
	s := NewSession("busy")
	if !s.TryBegin() {
		t.Fatal("expected first claim to succeed")
	}
	if s.TryBegin() {
		t.Fatal("expected second claim to fail")
	}
	s.End()
	if !s.TryBegin() {
		t.Fatal("expected claim after End to succeed")
	}
	s.End()
}
