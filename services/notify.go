package services

import (
	"context"
	"fmt"
	"html"

	"github.com/rpupo63/student-projects-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ApplicationEvent describes a created or processed application. Email
// addresses stay out of the published JSON.
type ApplicationEvent struct {
	ApplicationID  uint                     `json:"applicationId"`
	ProjectID      uint                     `json:"projectId"`
	ProjectName    string                   `json:"projectName"`
	ApplicantID    uint                     `json:"applicantId"`
	OwnerID        uint                     `json:"ownerId"`
	Status         models.ApplicationStatus `json:"status"`
	Message        string                   `json:"message,omitempty"`
	ApplicantEmail string                   `json:"-"`
	OwnerEmail     string                   `json:"-"`
}

// Notifier is told about application changes. Implementations log their own
// failures; a notification never fails the request that caused it.
type Notifier interface {
	ApplicationCreated(ctx context.Context, event ApplicationEvent)
	ApplicationProcessed(ctx context.Context, event ApplicationEvent)
}

type nopNotifier struct{}

func (nopNotifier) ApplicationCreated(context.Context, ApplicationEvent)   {}
func (nopNotifier) ApplicationProcessed(context.Context, ApplicationEvent) {}

// NewNotifier fans events out to every non-nil notifier.
func NewNotifier(notifiers ...Notifier) Notifier {
	var active multiNotifier
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	if len(active) == 0 {
		return nopNotifier{}
	}
	return active
}

type multiNotifier []Notifier

func (m multiNotifier) ApplicationCreated(ctx context.Context, event ApplicationEvent) {
	for _, n := range m {
		n.ApplicationCreated(ctx, event)
	}
}

func (m multiNotifier) ApplicationProcessed(ctx context.Context, event ApplicationEvent) {
	for _, n := range m {
		n.ApplicationProcessed(ctx, event)
	}
}

type emailSender interface {
	SendEmail(ctx context.Context, subject, body string, recipients []string) (string, error)
}

// EmailNotifier mails the project owner about new applications and the
// applicant about decisions.
type EmailNotifier struct {
	sender emailSender
	logger zerolog.Logger
}

func NewEmailNotifier(sender emailSender) *EmailNotifier {
	return &EmailNotifier{
		sender: sender,
		logger: log.With().Str("component", "emailNotifier").Logger(),
	}
}

func (n *EmailNotifier) ApplicationCreated(ctx context.Context, event ApplicationEvent) {
	if event.OwnerEmail == "" {
		return
	}
	subject := fmt.Sprintf("New application to %s", event.ProjectName)
	body := fmt.Sprintf("<p>Someone applied to your project <b>%s</b>.</p>", html.EscapeString(event.ProjectName))
	if event.Message != "" {
		body += fmt.Sprintf("<blockquote>%s</blockquote>", html.EscapeString(event.Message))
	}
	n.send(ctx, subject, body, event.OwnerEmail, event)
}

func (n *EmailNotifier) ApplicationProcessed(ctx context.Context, event ApplicationEvent) {
	if event.ApplicantEmail == "" {
		return
	}
	subject := fmt.Sprintf("Your application to %s was %s", event.ProjectName, event.Status)
	body := fmt.Sprintf("<p>Your application to <b>%s</b> was %s.</p>", html.EscapeString(event.ProjectName), event.Status)
	n.send(ctx, subject, body, event.ApplicantEmail, event)
}

func (n *EmailNotifier) send(ctx context.Context, subject, body, to string, event ApplicationEvent) {
	if _, err := n.sender.SendEmail(ctx, subject, body, []string{to}); err != nil {
		n.logger.Error().Err(err).
			Uint("applicationId", event.ApplicationID).
			Msg("failed to send application email")
	}
}

type eventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// EventNotifier publishes application events to the broker.
type EventNotifier struct {
	publisher eventPublisher
	logger    zerolog.Logger
}

func NewEventNotifier(publisher eventPublisher) *EventNotifier {
	return &EventNotifier{
		publisher: publisher,
		logger:    log.With().Str("component", "eventNotifier").Logger(),
	}
}

func (n *EventNotifier) ApplicationCreated(ctx context.Context, event ApplicationEvent) {
	n.publish(ctx, RoutingKeyApplicationCreated, event)
}

func (n *EventNotifier) ApplicationProcessed(ctx context.Context, event ApplicationEvent) {
	n.publish(ctx, RoutingKeyApplicationProcessed, event)
}

func (n *EventNotifier) publish(ctx context.Context, key string, event ApplicationEvent) {
	if err := n.publisher.PublishJSON(ctx, key, event); err != nil {
		n.logger.Error().Err(err).
			Str("routingKey", key).
			Uint("applicationId", event.ApplicationID).
			Msg("failed to publish application event")
	}
}
