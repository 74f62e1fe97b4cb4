package mailer

import (
	"fmt"
	"net/mail"
	"time"
)

// ApplicationDecision is sent when an admin approves or rejects a creator
// application.
func ApplicationDecision(name, email, status string) Message {
	msg := Message{To: mail.Address{Name: name, Address: email}}
	switch status {
	case "Approved":
		msg.Subject = "Your creator application was approved"
		msg.TextContent = fmt.Sprintf("Hi %s,\n\nYour creator application was approved. You can now create courses.\n", name)
	default:
		msg.Subject = "Your creator application was not approved"
		msg.TextContent = fmt.Sprintf("Hi %s,\n\nYour creator application was not approved this time. You are welcome to apply again.\n", name)
	}
	return msg
}

// CertificateIssued is sent when a learner receives a course certificate.
func CertificateIssued(name, email, courseTitle, hash string, completedAt time.Time) Message {
	return Message{
		To:      mail.Address{Name: name, Address: email},
		Subject: fmt.Sprintf("Certificate for %s", courseTitle),
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nCongratulations on completing %s on %s.\nCertificate id: %s\n",
			name, courseTitle, completedAt.Format("2 January 2006"), hash,
		),
	}
}
