package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productadmin/internal/models"
	"productadmin/internal/storage/memstore"
)

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(memstore.New().Users())

	u, err := svc.Register(ctx, RegisterInput{Fullname: " Ann Lee ", Username: "ann", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", u.Fullname)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, models.RoleMember, u.Role)
	assert.True(t, models.CheckPassword(u.PasswordHash, "secret1"))

	_, err = svc.Register(ctx, RegisterInput{Username: "ann", Email: "other@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "ann@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// staleUsers отвечает «свободно» на проверки до вставки, как если бы
// вторая регистрация шла параллельно с первой
type staleUsers struct {
	*memstore.Users
	checks int
}

func (s *staleUsers) UsernameTaken(ctx context.Context, username string) (bool, error) {
	s.checks++
	if s.checks == 1 {
		return false, nil
	}
	return s.Users.UsernameTaken(ctx, username)
}

func (s *staleUsers) EmailTaken(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func TestAccountService_RegisterRaceMapsDuplicate(t *testing.T) {
	ctx := context.Background()
	users := memstore.New().Users()
	require.NoError(t, users.Create(ctx, &models.User{Username: "ann", Email: "ann@example.com"}))

	_, err := NewAccountService(&staleUsers{Users: users}).
		Register(ctx, RegisterInput{Username: "ann", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = NewAccountService(&staleUsers{Users: users}).
		Register(ctx, RegisterInput{Username: "bob", Email: "ann@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	b := store.AddCategory("Beds")
	store.AddCategory("Armchairs")
	svc := NewCategoryService(store)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Armchairs", all[0].Name)

	ok, err := svc.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = svc.Exists(ctx, 0)
	assert.False(t, ok)
}
