package usecase

import (
	"context"
	"errors"
	"testing"

	"groq-chatbot/internal/chat"
	"groq-chatbot/pkg/llmprovider"
)

func TestChat_AppendsSingleTurn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	sess, _ := f.uc.CreateSession(ctx)

	out, err := f.uc.Chat(ctx, chat.ChatInput{SessionID: sess.ID, Question: "hi", Model: "big"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out.Response != "World" || out.Model != "big" {
		t.Errorf("unexpected output %+v", out)
	}

	at := out.Session.Turns[1].(chat.AssistantTurn)
	if !at.Single || at.Response1 != "World" {
		t.Errorf("expected single assistant turn, got %+v", at)
	}

	msgs, err := f.uc.Messages(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs.Messages) != 3 || msgs.Messages[2].Content != "World" {
		t.Errorf("unexpected messages %+v", msgs.Messages)
	}
}

func TestChat_FailureLeavesSessionUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.provider.errs["small"] = authErr()
	sess, _ := f.uc.CreateSession(ctx)

	_, err := f.uc.Chat(ctx, chat.ChatInput{SessionID: sess.ID, Question: "hi"})
	if llmprovider.KindOf(err) != llmprovider.KindAuthentication {
		t.Fatalf("expected authentication error, got %v", err)
	}

	got, _ := f.uc.GetSession(ctx, sess.ID)
	if len(got.Turns) != 0 {
		t.Errorf("expected no turns, got %d", len(got.Turns))
	}
	if len(f.archive.saved) != 1 || f.archive.saved[0].Error1 == "" {
		t.Errorf("expected failed exchange archived, got %+v", f.archive.saved)
	}
}

func TestChat_ArchiveFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.archive.err = errors.New("disk full")
	sess, _ := f.uc.CreateSession(ctx)

	if _, err := f.uc.Chat(ctx, chat.ChatInput{SessionID: sess.ID, Question: "hi"}); err != nil {
		t.Fatalf("expected archive failure to be swallowed, got %v", err)
	}
}
