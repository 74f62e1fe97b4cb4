// Package mailer sends transactional emails through SendGrid, or prints them
// when no API key is configured.
package mailer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"microcourses/config"
	"microcourses/logger"

	"github.com/pkg/errors"
)

type Message struct {
	To          mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the SendGrid mailer when an API key is set.
func New(cfg config.MailConfig, log logger.Logger) Mailer {
	from := mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}
	if cfg.SendgridAPIKey == "" {
		return NewConsoleMailer(from, log)
	}
	return NewSendgridMailer(cfg.SendgridAPIKey, from, log)
}

// ConsoleMailer logs messages instead of delivering them and keeps a copy.
type ConsoleMailer struct {
	from   mail.Address
	logger logger.Logger

	mu   sync.Mutex
	sent []Message
}

func NewConsoleMailer(from mail.Address, log logger.Logger) *ConsoleMailer {
	return &ConsoleMailer{from: from, logger: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	if msg.To.Address == "" {
		return errors.New("mailer: message without recipient")
	}
	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s\n", m.from.String())
	fmt.Fprintf(body, "To: %s\n", msg.To.String())
	fmt.Fprintf(body, "Subject: %s\n\n", msg.Subject)
	body.WriteString(msg.TextContent)
	if m.logger != nil {
		m.logger.Info("mail:\n" + body.String())
	}

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

// Sent returns the messages passed to Send so far.
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
