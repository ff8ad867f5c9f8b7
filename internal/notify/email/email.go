package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/avelin/scoop/internal/config"
)

// Notifier delivers alerts over SMTP with STARTTLS. The operator mails
// themselves: From doubles as the recipient.
type Notifier struct {
	cfg  config.EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates an email Notifier from config.
func New(cfg config.EmailConfig) *Notifier {
	return &Notifier{cfg: cfg, send: smtp.SendMail}
}

func (n *Notifier) Send(_ context.Context, subject string, lines []string) error {
	if n.cfg.From == "" {
		return fmt.Errorf("email notifier: missing sender address")
	}
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.From, n.cfg.Password, n.cfg.SMTPHost)
	msg := buildMessage(n.cfg.From, subject, strings.Join(lines, "\n"))
	if err := n.send(addr, auth, n.cfg.From, []string{n.cfg.From}, msg); err != nil {
		return fmt.Errorf("email notifier: %w", err)
	}
	return nil
}

func (n *Notifier) Close() error {
	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", from)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
