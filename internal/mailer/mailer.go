package mailer

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"restaurante-be/internal/config"
	"restaurante-be/internal/logger"

	"go.uber.org/zap"
)

var ErrNoRecipients = errors.New("mail has no recipients")

type Message struct {
	To      []string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers plain-text mail through a single SMTP relay.
// smtp.SendMail upgrades with STARTTLS whenever the server offers it.
type SMTPSender struct {
	addr     string
	host     string
	from     string
	username string
	password string
	useTLS   bool
	send     sendFunc
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		addr:     net.JoinHostPort(cfg.MailServer, strconv.Itoa(cfg.MailPort)),
		host:     cfg.MailServer,
		from:     cfg.MailSender,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		useTLS:   cfg.MailUseTLS,
		send:     smtp.SendMail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "mailer"),
		zap.String("method", "Send"),
		zap.Strings("to", msg.To),
	)

	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// PlainAuth refuses to send credentials over an unencrypted link to
	// anything but localhost, so auth is only attempted with TLS on.
	var a smtp.Auth
	if s.username != "" && s.useTLS {
		a = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := s.send(s.addr, a, s.from, msg.To, buildMessage(s.from, msg)); err != nil {
		log.Error("failed to send mail", zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	log.Info("mail sent", zap.String("subject", msg.Subject))
	return nil
}

func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(msg.Body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(b.String())
}
