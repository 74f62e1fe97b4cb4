package main

import (
	"context"
	"log"
	"net/mail"
	"os"
	"testing"
	"time"

	"microcourses/events"
	"microcourses/logger"
	"microcourses/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier() (*notifier, *mailer.ConsoleMailer) {
	appLogger := logger.NewRollbarLogger(log.New(os.Stderr, "[test] ", 0), "", "test")
	m := mailer.NewConsoleMailer(mail.Address{Address: "no-reply@test.com"}, appLogger)
	return &notifier{mailer: m, logger: appLogger}, m
}

func mustEvent(t *testing.T, eventType string, payload interface{}) events.Event {
	t.Helper()
	event, err := events.NewEvent(eventType, payload, time.Now())
	require.NoError(t, err)
	return event
}

func TestNotifierMailsApplicationDecision(t *testing.T) {
	n, m := newTestNotifier()

	err := n.handle(context.Background(), mustEvent(t, events.TypeCreatorApplicationDecided, events.CreatorApplicationDecided{
		UserID: 3,
		Name:   "Bob",
		Email:  "bob@test.com",
		Status: "Approved",
	}))
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "bob@test.com", sent[0].To.Address)
	assert.Equal(t, "Your creator application was approved", sent[0].Subject)
}

func TestNotifierMailsCertificate(t *testing.T) {
	n, m := newTestNotifier()

	err := n.handle(context.Background(), mustEvent(t, events.TypeCertificateIssued, events.CertificateIssued{
		UserName:        "Alice",
		UserEmail:       "alice@test.com",
		CourseTitle:     "Go Basics",
		CertificateHash: "cafe",
		CompletedAt:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, err)

	sent := m.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Certificate for Go Basics", sent[0].Subject)
	assert.Contains(t, sent[0].TextContent, "cafe")
}

func TestNotifierOnlyLogsOtherEvents(t *testing.T) {
	n, m := newTestNotifier()

	require.NoError(t, n.handle(context.Background(), mustEvent(t, events.TypeCourseStatusChanged, events.CourseStatusChanged{
		CourseID: 1, Title: "Go", From: "Draft", To: "Pending Review",
	})))
	require.NoError(t, n.handle(context.Background(), events.Event{Type: "something.else"}))
	assert.Empty(t, m.Sent())
}

func TestNotifierRejectsMalformedPayload(t *testing.T) {
	n, _ := newTestNotifier()

	err := n.handle(context.Background(), events.Event{
		Type:    events.TypeCertificateIssued,
		Payload: []byte(`"not an object"`),
	})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "decode "+events.TypeCertificateIssued+": ")
	}
}
