package notifiers

import (
	"context"
	"log/slog"

	"github.com/kova98/newsdigest/models"
	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

type Mailer struct {
	logger   *slog.Logger
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewMailer(logger *slog.Logger, smtpHost string, smtpPort int, username, password, from string) *Mailer {
	return &Mailer{
		logger:   logger,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers mail to its single recipient over a STARTTLS connection.
// Each call opens and closes its own connection.
func (m *Mailer) Send(ctx context.Context, email models.Email) error {
	msg, err := m.newMessage(email)
	if err != nil {
		return errors.Wrap(err, "build message")
	}

	client, err := mail.NewClient(
		m.smtpHost,
		mail.WithPort(m.smtpPort),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return errors.Wrap(err, "create mail client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "send email")
	}

	m.logger.Debug("email sent", "recipient", email.To, "subject", email.Subject)
	return nil
}

// newMessage builds a multipart/alternative message. The HTML part comes
// last so clients that can render it prefer it over the plain text.
func (m *Mailer) newMessage(email models.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, errors.Wrap(err, "set from")
	}
	if err := msg.To(email.To); err != nil {
		return nil, errors.Wrap(err, "set to")
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)

	return msg, nil
}
