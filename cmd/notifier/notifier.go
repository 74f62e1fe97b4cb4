package main

import (
	"context"
	"fmt"

	"microcourses/config"
	"microcourses/events"
	"microcourses/logger"
	"microcourses/mailer"

	"github.com/pkg/errors"
)

type notifier struct {
	mailer mailer.Mailer
	logger logger.Logger
}

func (n *notifier) run(ctx context.Context, cfg config.RabbitMQConfig) error {
	n.logger.Info("consuming " + cfg.Queue)
	return events.Consume(ctx, cfg.URL, cfg.Queue, n.logger, n.handle)
}

func (n *notifier) handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.TypeCreatorApplicationDecided:
		var p events.CreatorApplicationDecided
		if err := event.Decode(&p); err != nil {
			return errors.Wrapf(err, "decode %s", event.Type)
		}
		n.logger.Info(fmt.Sprintf("creator application %s for user %d", p.Status, p.UserID))
		return n.mailer.Send(ctx, mailer.ApplicationDecision(p.Name, p.Email, p.Status))

	case events.TypeCertificateIssued:
		var p events.CertificateIssued
		if err := event.Decode(&p); err != nil {
			return errors.Wrapf(err, "decode %s", event.Type)
		}
		n.logger.Info(fmt.Sprintf("certificate %s issued to user %d for course %d", p.CertificateHash, p.UserID, p.CourseID))
		return n.mailer.Send(ctx, mailer.CertificateIssued(p.UserName, p.UserEmail, p.CourseTitle, p.CertificateHash, p.CompletedAt))

	case events.TypeCourseStatusChanged:
		var p events.CourseStatusChanged
		if err := event.Decode(&p); err != nil {
			return errors.Wrapf(err, "decode %s", event.Type)
		}
		n.logger.Info(fmt.Sprintf("course %d %q moved from %s to %s", p.CourseID, p.Title, p.From, p.To))
		return nil

	default:
		n.logger.Warn("ignoring unknown event type " + event.Type)
		return nil
	}
}
