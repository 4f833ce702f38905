package testimonials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
)

const (
	minRating     = 1
	maxRating     = 5
	defaultRating = 5
)

type testimonialRepository interface {
	Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error)
	ListActive(ctx context.Context) ([]models.Testimonial, error)
	ListAll(ctx context.Context) ([]models.Testimonial, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseChecker interface {
	HasDeliveredOrder(ctx context.Context, customerID uuid.UUID) (bool, error)
}

// TestimonialDTO exposes a testimonial in API responses.
type TestimonialDTO struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps the persisted testimonial into a DTO.
func FromModel(m *models.Testimonial) *TestimonialDTO {
	if m == nil {
		return nil
	}
	return &TestimonialDTO{
		ID:        m.ID,
		Author:    m.Author,
		Content:   m.Content,
		Rating:    m.Rating,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// SubmitInput captures a customer's testimonial submission. Rating defaults
// to 5 when absent.
type SubmitInput struct {
	Content string
	Rating  *int
}

// Service exposes testimonial submission and moderation operations.
type Service interface {
	Submit(ctx context.Context, customerID uuid.UUID, customerName string, input SubmitInput) (*TestimonialDTO, error)
	ListActive(ctx context.Context) ([]*TestimonialDTO, error)
	ListAll(ctx context.Context) ([]*TestimonialDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*TestimonialDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      testimonialRepository
	purchases purchaseChecker
}

// NewService builds a testimonial service with the provided collaborators.
func NewService(repo testimonialRepository, purchases purchaseChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonial repository required")
	}
	if purchases == nil {
		return nil, fmt.Errorf("purchase checker required")
	}
	return &service{repo: repo, purchases: purchases}, nil
}

// Submit stores a testimonial for a customer who has at least one delivered
// order.
func (s *service) Submit(ctx context.Context, customerID uuid.UUID, customerName string, input SubmitInput) (*TestimonialDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}

	rating := defaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}
	if rating < minRating || rating > maxRating {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("rating must be between %d and %d", minRating, maxRating))
	}

	qualified, err := s.purchases.HasDeliveredOrder(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check purchase history")
	}
	if !qualified {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "testimonials require a delivered order")
	}

	author := strings.TrimSpace(customerName)
	if author == "" {
		author = "A verified reader"
	}

	created, err := s.repo.Create(ctx, &models.Testimonial{
		Author:   author,
		Content:  content,
		Rating:   rating,
		IsActive: true,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create testimonial")
	}
	return FromModel(created), nil
}

func (s *service) ListActive(ctx context.Context) ([]*TestimonialDTO, error) {
	testimonials, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return mapDTOs(testimonials), nil
}

func (s *service) ListAll(ctx context.Context) ([]*TestimonialDTO, error) {
	testimonials, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return mapDTOs(testimonials), nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*TestimonialDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update testimonial")
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload testimonial")
	}
	for i := range all {
		if all[i].ID == id {
			return FromModel(&all[i]), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "testimonial id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete testimonial")
	}
	return nil
}

func mapDTOs(testimonials []models.Testimonial) []*TestimonialDTO {
	out := make([]*TestimonialDTO, len(testimonials))
	for i := range testimonials {
		out[i] = FromModel(&testimonials[i])
	}
	return out
}
