package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"furniture-store/internal/dto/request"
	"furniture-store/pkg/mailer"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

const contactSendTimeout = 30 * time.Second

// ContactService forwards contact-form messages to the store's inbox.
type ContactService interface {
	Send(ctx context.Context, req *request.ContactRequest) error
	// Wait blocks until queued deliveries have finished.
	Wait()
}

type contactService struct {
	mail      mailer.Mailer
	recipient string
	log       *zap.Logger
	wg        sync.WaitGroup
}

// NewContactService builds the contact service. Messages go to the configured
// recipient, or to the sender address when none is set.
func NewContactService(mail mailer.Mailer, config utils.EmailConfig, log *zap.Logger) ContactService {
	recipient := config.Recipient
	if recipient == "" {
		recipient = config.From
	}
	return &contactService{
		mail:      mail,
		recipient: recipient,
		log:       log.With(zap.String("service", "contact")),
	}
}

// Send validates the message and hands it off for delivery. Delivery runs
// after the request returns; failures are only logged.
func (s *contactService) Send(ctx context.Context, req *request.ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validate(req); err != nil {
		return err
	}

	msg := mailer.Message{
		To:      []string{s.recipient},
		ReplyTo: req.Email,
		Subject: "[Contact] " + req.Subject,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\n\n%s",
			req.Name, req.Email, req.Message),
	}
	log := utils.LoggerFromContext(ctx, s.log)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), contactSendTimeout)
		defer cancel()

		if err := s.mail.Send(sendCtx, msg); err != nil {
			log.Error("Failed to deliver contact message",
				zap.Error(err), zap.String("reply_to", msg.ReplyTo))
			return
		}
		log.Info("Contact message delivered", zap.String("reply_to", msg.ReplyTo))
	}()

	return nil
}

// Wait blocks until queued deliveries have finished.
func (s *contactService) Wait() {
	s.wg.Wait()
}
