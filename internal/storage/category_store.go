package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"productadmin/internal/models"
)

type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func (s *CategoryStore) All(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	err := s.db.WithContext(ctx).Order("name").Find(&items).Error
	return items, errors.Wrap(err, "list categories")
}

func (s *CategoryStore) Exists(ctx context.Context, id uint) (bool, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&cnt).Error
	return cnt > 0, errors.Wrapf(err, "check category %d", id)
}
