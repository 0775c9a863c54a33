package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

func render(t *testing.T, from string, msg Message) string {
	t.Helper()

	mm, err := newMessage(from, msg)
	if err != nil {
		t.Fatalf("newMessage() error = %v", err)
	}
	var buf bytes.Buffer
	if _, err := mm.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	return buf.String()
}

func headerLine(data, name string) string {
	for _, line := range strings.Split(data, "\r\n") {
		if strings.HasPrefix(line, name+": ") {
			return line
		}
	}
	return ""
}

func TestNewMessageHeaders(t *testing.T) {
	data := render(t, "shop@example.com", Message{
		To:      []string{"owner@example.com"},
		ReplyTo: "visitor@example.com",
		Subject: "Hello",
		Body:    "line one\nline two",
	})

	for name, want := range map[string]string{
		"From":     "shop@example.com",
		"To":       "owner@example.com",
		"Reply-To": "visitor@example.com",
		"Subject":  "Hello",
	} {
		if line := headerLine(data, name); !strings.Contains(line, want) {
			t.Errorf("%s header = %q, want %q:\n%s", name, line, want, data)
		}
	}
	for _, name := range []string{"Date", "Message-ID"} {
		if headerLine(data, name) == "" {
			t.Errorf("missing %s header:\n%s", name, data)
		}
	}
	if !strings.Contains(data, "line one") || !strings.Contains(data, "line two") {
		t.Errorf("body missing:\n%s", data)
	}
}

func TestNewMessageOmitsEmptyReplyTo(t *testing.T) {
	data := render(t, "a@example.com", Message{To: []string{"b@example.com"}})
	if strings.Contains(data, "Reply-To") {
		t.Fatalf("unexpected Reply-To header:\n%s", data)
	}
}

func TestNewMessageRejectsBadAddresses(t *testing.T) {
	tests := []struct {
		name string
		from string
		msg  Message
	}{
		{"sender", "not an address", Message{To: []string{"b@example.com"}}},
		{"recipient", "a@example.com", Message{To: []string{"nope"}}},
		{"reply-to", "a@example.com", Message{To: []string{"b@example.com"}, ReplyTo: "@@"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newMessage(tt.from, tt.msg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewWithoutHostLogsOnly(t *testing.T) {
	m := New(utils.EmailConfig{}, zap.NewNop())
	if _, ok := m.(*logMailer); !ok {
		t.Fatalf("New() = %T, want *logMailer", m)
	}
	if err := m.Send(context.Background(), Message{To: []string{"x@example.com"}}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
}

func TestSMTPMailerRequiresRecipients(t *testing.T) {
	m := New(utils.EmailConfig{Host: "localhost", Port: 25}, zap.NewNop())
	if err := m.Send(context.Background(), Message{}); !errors.Is(err, errNoRecipients) {
		t.Fatalf("Send() error = %v, want no recipients", err)
	}
}

func TestSMTPMailerHonoursCancelledContext(t *testing.T) {
	m := New(utils.EmailConfig{Host: "127.0.0.1", Port: 1, From: "shop@example.com"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, Message{To: []string{"owner@example.com"}}); err == nil {
		t.Fatal("Send() with cancelled context succeeded")
	}
}
