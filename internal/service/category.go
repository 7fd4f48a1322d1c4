package service

import (
	"context"

	"productadmin/internal/models"
)

type CategoryStore interface {
	All(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.store.All(ctx)
}

func (s *CategoryService) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	return s.store.Exists(ctx, id)
}
