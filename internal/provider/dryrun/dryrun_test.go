package dryrun

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sewoong/mailbridge/internal/email"
)

func TestSend(t *testing.T) {
	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Message{
		From:    "u@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Cc:      []string{"c@example.com"},
		Subject: "Hi",
		Body:    "Hello there",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"From: u@example.com",
		"To: a@example.com, b@example.com",
		"Cc: c@example.com",
		"Subject: Hi",
		"Hello there",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSend_OmitsEmptyCc(t *testing.T) {
	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Message{
		From:    "u@example.com",
		To:      []string{"a@example.com"},
		Subject: "Hi",
		Body:    "Hello",
	}

	if err := p.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "Cc:") {
		t.Errorf("output contains Cc line for empty cc list:\n%s", buf.String())
	}
}

func TestSend_InvalidMessage(t *testing.T) {
	var buf bytes.Buffer
	p := NewWithWriter(&buf)

	msg := &email.Message{From: "u@example.com", Subject: "Hi"}
	if err := p.Send(context.Background(), msg); err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("invalid message was printed:\n%s", buf.String())
	}
}
