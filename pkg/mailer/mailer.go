package mailer

import (
	"context"
	"errors"
	"fmt"

	"furniture-store/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var errNoRecipients = errors.New("mailer: no recipients")

// Message is a plain-text email.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a mailer that only logs when no SMTP host
// is configured.
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		return &logMailer{log: log.With(zap.String("mailer", "log"))}
	}
	return &smtpMailer{
		config: config,
		log:    log.With(zap.String("mailer", "smtp")),
	}
}

type smtpMailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errNoRecipients
	}

	mm, err := newMessage(m.config.From, msg)
	if err != nil {
		return err
	}

	client, err := m.client()
	if err != nil {
		return fmt.Errorf("mailer: create client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("mailer: send via %s: %w", m.config.Host, err)
	}

	m.log.Info("Email sent", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func (m *smtpMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(m.config.Port),
	}
	if m.config.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.User),
			mail.WithPassword(m.config.Password),
		)
	}
	return mail.NewClient(m.config.Host, opts...)
}

// newMessage builds a plain-text message. Reply-To is set only when present.
func newMessage(from string, msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(from); err != nil {
		return nil, fmt.Errorf("mailer: sender %q: %w", from, err)
	}
	if err := mm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("mailer: recipients: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("mailer: reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	mm.Subject(msg.Subject)
	mm.SetDate()
	mm.SetMessageID()
	mm.SetBodyString(mail.TypeTextPlain, msg.Body)
	return mm, nil
}

type logMailer struct {
	log *zap.Logger
}

func (m *logMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info("Email not sent, SMTP disabled",
		zap.Strings("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject))
	return nil
}
