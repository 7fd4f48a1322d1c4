package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"productadmin/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, "username = ?", username)
}

func (s *UserStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

func (s *UserStore) exists(ctx context.Context, query string, arg any) (bool, error) {
	var cnt int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&cnt).Error
	return cnt > 0, errors.Wrap(err, "check user")
}

// Create вставляет пользователя; занятый логин или почта дают ErrDuplicate.
// Нужен gorm.Config{TranslateError: true}.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create user")
}
