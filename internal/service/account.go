package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"productadmin/internal/models"
	"productadmin/internal/storage"
)

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email already registered")
)

type UserStore interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *models.User) error
}

// RegisterInput — данные формы регистрации
type RegisterInput struct {
	Fullname string
	Username string
	Email    string
	Password string
}

type AccountService struct {
	store UserStore
}

func NewAccountService(store UserStore) *AccountService {
	return &AccountService{store: store}
}

// Register создаёт пользователя с ролью member, логин и почта должны быть свободны
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.store.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.store.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := models.HashPassword(in.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	u := &models.User{
		Fullname:     strings.TrimSpace(in.Fullname),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleMember,
	}
	err = s.store.Create(ctx, u)
	if errors.Is(err, storage.ErrDuplicate) {
		// параллельная регистрация успела раньше, проверки выше её не видели
		return nil, s.whichTaken(ctx, username)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AccountService) whichTaken(ctx context.Context, username string) error {
	if taken, err := s.store.UsernameTaken(ctx, username); err == nil && !taken {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
