package newsletter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ninamwrites/bookstore-backend/pkg/db"
	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/mailer"
)

const emailUniqueConstraint = "idx_newsletter_subscribers_email"

type subscriberRepository interface {
	Create(ctx context.Context, subscriber *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error)
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
}

// SubscriberDTO exposes one subscriber row in admin responses.
type SubscriberDTO struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscribeResult reports the outcome of a subscribe attempt. A repeated
// email is not an error: the existing row stands and the caller is told so.
type SubscribeResult struct {
	Email             string `json:"email"`
	AlreadySubscribed bool   `json:"already_subscribed"`
}

// SendReport summarizes a newsletter fan-out.
type SendReport struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Service exposes newsletter subscription and delivery operations.
type Service interface {
	Subscribe(ctx context.Context, email string) (*SubscribeResult, error)
	List(ctx context.Context) ([]SubscriberDTO, error)
	Send(ctx context.Context, subject, message string) (*SendReport, error)
}

type service struct {
	repo subscriberRepository
	mail mailer.Mailer
}

// NewService builds a newsletter service with the provided collaborators.
func NewService(repo subscriberRepository, mail mailer.Mailer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscriber repository required")
	}
	if mail == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{repo: repo, mail: mail}, nil
}

func (s *service) Subscribe(ctx context.Context, email string) (*SubscribeResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}

	_, err := s.repo.Create(ctx, &models.NewsletterSubscriber{Email: email})
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return &SubscribeResult{Email: email, AlreadySubscribed: true}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscriber")
	}
	return &SubscribeResult{Email: email}, nil
}

func (s *service) List(ctx context.Context) ([]SubscriberDTO, error) {
	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	out := make([]SubscriberDTO, len(subscribers))
	for i, sub := range subscribers {
		out[i] = SubscriberDTO{
			ID:           sub.ID,
			Email:        sub.Email,
			SubscribedAt: sub.SubscribedAt,
		}
	}
	return out, nil
}

// Send delivers one message per subscriber. Individual delivery failures do
// not abort the fan-out; they are aggregated and reflected in the report. The
// whole operation fails only when nothing could be sent.
func (s *service) Send(ctx context.Context, subject, message string) (*SendReport, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	subscribers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscribers")
	}
	if len(subscribers) == 0 {
		return &SendReport{}, nil
	}

	report := &SendReport{}
	var sendErrs error
	for _, sub := range subscribers {
		if err := s.mail.Send(ctx, []string{sub.Email}, subject, message); err != nil {
			report.Failed++
			sendErrs = multierr.Append(sendErrs, fmt.Errorf("send to %s: %w", sub.Email, err))
			continue
		}
		report.Sent++
	}

	if report.Sent == 0 && report.Failed > 0 {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, sendErrs, "newsletter delivery failed")
	}
	return report, nil
}
