// Package events carries domain events to RabbitMQ for out-of-band
// consumers such as the notifier.
package events

import (
	"encoding/json"
	"time"
)

const (
	TypeCertificateIssued         = "certificate.issued"
	TypeCourseStatusChanged       = "course.status_changed"
	TypeCreatorApplicationDecided = "creator_application.decided"
)

// Event is the envelope written to the queue.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type CertificateIssued struct {
	EnrollmentID    uint      `json:"enrollmentId"`
	UserID          uint      `json:"userId"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	CourseID        uint      `json:"courseId"`
	CourseTitle     string    `json:"courseTitle"`
	CertificateHash string    `json:"certificateHash"`
	CompletedAt     time.Time `json:"completedAt"`
}

type CourseStatusChanged struct {
	CourseID  uint   `json:"courseId"`
	Title     string `json:"title"`
	CreatorID uint   `json:"creatorId"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type CreatorApplicationDecided struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// NewEvent wraps payload in an envelope of the given type.
func NewEvent(eventType string, payload interface{}, at time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, OccurredAt: at.UTC(), Payload: body}, nil
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}
