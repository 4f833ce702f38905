package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ninamwrites/bookstore-backend/pkg/db/models"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
)

// Repository handles book persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog book operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every book ordered by title.
func (r *Repository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByID loads a book by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDs loads the books matching the given ids. Missing ids are simply
// absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var books []models.Book
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Create persists a new book row.
func (r *Repository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// Update saves the provided book.
func (r *Repository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete removes a book row. Returns gorm.ErrRecordNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of catalog books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MerchRepository handles merchandise persistence.
type MerchRepository struct {
	db *gorm.DB
}

// NewMerchRepository binds a GORM DB to merchandise operations.
func NewMerchRepository(db *gorm.DB) *MerchRepository {
	return &MerchRepository{db: db}
}

// List returns all merchandise ordered by category then title.
func (r *MerchRepository) List(ctx context.Context) ([]models.Merchandise, error) {
	var items []models.Merchandise
	if err := r.db.WithContext(ctx).Order("category ASC, title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByCategory returns merchandise in a single category ordered by title.
func (r *MerchRepository) ListByCategory(ctx context.Context, category enums.MerchCategory) ([]models.Merchandise, error) {
	var items []models.Merchandise
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("title ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads a merchandise row by its UUID.
func (r *MerchRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchandise, error) {
	var item models.Merchandise
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a new merchandise row.
func (r *MerchRepository) Create(ctx context.Context, item *models.Merchandise) (*models.Merchandise, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update saves the provided merchandise row.
func (r *MerchRepository) Update(ctx context.Context, item *models.Merchandise) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a merchandise row.
func (r *MerchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Merchandise{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of merchandise rows.
func (r *MerchRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Merchandise{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
