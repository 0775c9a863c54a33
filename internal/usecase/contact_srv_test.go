package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"furniture-store/internal/apperror"
	"furniture-store/internal/dto/request"
	"furniture-store/pkg/mailer"
	"furniture-store/pkg/utils"

	"go.uber.org/zap/zaptest"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func TestContactSend(t *testing.T) {
	mail := &recordingMailer{}
	svc := NewContactService(mail, utils.EmailConfig{From: "shop@example.com", Recipient: "owner@example.com"}, zaptest.NewLogger(t))

	err := svc.Send(context.Background(), &request.ContactRequest{
		Name:    "Dana",
		Email:   "Dana@Example.com",
		Subject: "Sofa delivery",
		Message: "When will it arrive?",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	svc.Wait()

	if len(mail.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To[0] != "owner@example.com" || msg.ReplyTo != "dana@example.com" {
		t.Errorf("routing = to %v reply-to %q", msg.To, msg.ReplyTo)
	}
	if !strings.Contains(msg.Subject, "Sofa delivery") || !strings.Contains(msg.Body, "When will it arrive?") {
		t.Errorf("message = %+v", msg)
	}
}

func TestContactSendFailureIsNotReturned(t *testing.T) {
	mail := &recordingMailer{err: errors.New("smtp down")}
	svc := NewContactService(mail, utils.EmailConfig{From: "shop@example.com"}, zaptest.NewLogger(t))

	err := svc.Send(context.Background(), &request.ContactRequest{
		Name: "Dana", Email: "dana@example.com", Subject: "Hi", Message: "Hello",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	svc.Wait()

	if len(mail.sent) != 1 || mail.sent[0].To[0] != "shop@example.com" {
		t.Fatalf("sent = %+v, want fallback to From", mail.sent)
	}
}

func TestContactSendValidation(t *testing.T) {
	mail := &recordingMailer{}
	svc := NewContactService(mail, utils.EmailConfig{}, zaptest.NewLogger(t))

	err := svc.Send(context.Background(), &request.ContactRequest{Email: "nope"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Send() error = %v, want validation", err)
	}
	svc.Wait()
	if len(mail.sent) != 0 {
		t.Fatal("invalid message was sent")
	}
}
