package external_services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mikiasgoitom/Learnify/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// EmailService sends plain-text mail through an SMTP relay.
type EmailService struct {
	Host        string
	Port        string
	Username    string
	AppPassword string
	From        string
}

func NewEmailService(host, port, username, appPassword, from string) *EmailService {
	return &EmailService{
		Host:        host,
		Port:        port,
		Username:    username,
		AppPassword: appPassword,
		From:        from,
	}
}

// make sure EmailService implements contract.IEmailService
var _ contract.IEmailService = (*EmailService)(nil)

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// SendEmail delivers one message. net/smtp has no context support, so ctx is
// only checked before dialing.
func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", es.Username, es.AppPassword, es.Host)
	addr := fmt.Sprintf("%s:%s", es.Host, es.Port)
	if err := smtp.SendMail(addr, auth, es.From, []string{to}, buildMessage(es.From, to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

// LogEmailService writes mail to the log; used when no mailer is configured.
type LogEmailService struct {
	logger usecasecontract.IAppLogger
}

var _ contract.IEmailService = (*LogEmailService)(nil)

func NewLogEmailService(logger usecasecontract.IAppLogger) *LogEmailService {
	return &LogEmailService{logger: logger}
}

func (l *LogEmailService) SendEmail(_ context.Context, to, subject, body string) error {
	l.logger.Infof("email to=%s subject=%q\n%s", to, subject, body)
	return nil
}
