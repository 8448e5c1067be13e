package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
)

// Mailer доставляет письма
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer отправляет письма через SMTP-релей муниципалитета
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	deliver  func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	m := &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
	}
	m.deliver = m.dialAndSend
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mailMsg, err := buildMessage(msg)
	if err != nil {
		return err
	}
	if err := m.deliver(ctx, mailMsg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// buildMessage собирает письмо; go-mail кодирует заголовки по RFC 2047
func buildMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(singleLine(msg.Subject))
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// singleLine убирает переводы строк из значения заголовка
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
