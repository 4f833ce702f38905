package newsletter

import (
	"context"

	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/types"
)

// Repository handles newsletter subscriber persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to subscriber operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new subscriber row.
func (r *Repository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) (*models.NewsletterSubscriber, error) {
	if err := r.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		return nil, err
	}
	return subscriber, nil
}

// List returns all subscribers, newest first.
func (r *Repository) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Order("subscribed_at DESC, id DESC").
		Find(&subscribers).Error
	if err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Count returns the number of subscribers.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByMonth aggregates subscriber counts per calendar month, oldest first.
func (r *Repository) CountByMonth(ctx context.Context) ([]types.MonthlyCount, error) {
	var rows []types.MonthlyCount
	err := r.db.WithContext(ctx).
		Model(&models.NewsletterSubscriber{}).
		Select("date_trunc('month', subscribed_at) AS month, COUNT(*) AS count").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
