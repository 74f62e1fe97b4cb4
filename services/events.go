package services

import (
	"context"
	"time"

	"microcourses/events"
)

const publishTimeout = 5 * time.Second

// publish sends an event after the write it describes has committed. Broker
// failures never fail the request.
func publish(p events.Publisher, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	_ = p.Publish(ctx, eventType, payload)
}
