package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/portfolio-api/internal/database"
	"github.com/noah-isme/portfolio-api/internal/models"
)

// ContactRepository persists contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	ListRecent(ctx context.Context) ([]models.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs a repository backed by GORM.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) ListRecent(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&messages).
		Error
	return messages, err
}

// NewContactRepositoryForStore picks the repository implementation matching the
// store driver. SQL stores are migrated first.
func NewContactRepositoryForStore(store *database.Store) (ContactRepository, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}

	switch {
	case store.Mongo != nil:
		return NewMongoContactRepository(store.Mongo), nil
	case store.SQL != nil:
		if err := store.SQL.AutoMigrate(&models.ContactMessage{}); err != nil {
			return nil, fmt.Errorf("failed to migrate contact messages: %w", err)
		}
		return NewContactRepository(store.SQL), nil
	default:
		return nil, fmt.Errorf("store %q has no open connection", store.Driver)
	}
}
