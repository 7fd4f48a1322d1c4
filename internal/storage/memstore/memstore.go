// Package memstore — хранилище в памяти с тем же поведением, что и gorm-хранилище.
// Используется при DB_DRIVER=memory (локальный запуск без базы) и в тестах.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"productadmin/internal/models"
	"productadmin/internal/storage"
)

type Store struct {
	mu         sync.RWMutex
	products   map[uint]models.Product
	categories map[uint]models.Category
	users      map[uint]models.User
	nextID     uint

	// FailWrites заставляет запись вернуть ошибку (для проверки отката файлов)
	FailWrites error
}

func New() *Store {
	return &Store{
		products:   map[uint]models.Product{},
		categories: map[uint]models.Category{},
		users:      map[uint]models.User{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AddCategory — для сидинга и тестов
func (s *Store) AddCategory(name string) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Name == name {
			return c
		}
	}
	now := time.Now()
	c := models.Category{Base: models.Base{ID: s.id(), CreatedAt: now, UpdatedAt: now}, Name: name}
	s.categories[c.ID] = c
	return c
}

// Categories

func (s *Store) All(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) Exists(ctx context.Context, id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.categories[id]
	return ok, nil
}

// Products

func (s *Store) Page(ctx context.Context, offset, limit int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := []models.Product{}
	if offset < 0 || offset >= len(ids) {
		return out, nil
	}
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		out = append(out, s.full(s.products[ids[i]]))
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *Store) FullByID(ctx context.Context, id uint) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	full := s.full(p)
	return &full, nil
}

func (s *Store) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	now := time.Now()
	p.ID = s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	for i := range p.Images {
		p.Images[i].ID = s.id()
		p.Images[i].ProductID = p.ID
		p.Images[i].CreatedAt, p.Images[i].UpdatedAt = now, now
	}
	s.products[p.ID] = clone(*p)
	return nil
}

func (s *Store) Update(ctx context.Context, p *models.Product, added []models.ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	cur, ok := s.products[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	now := time.Now()
	if len(added) > 0 {
		for i := range cur.Images {
			cur.Images[i].IsMain = false
		}
		for i := range added {
			added[i].ID = s.id()
			added[i].ProductID = p.ID
			added[i].CreatedAt, added[i].UpdatedAt = now, now
			cur.Images = append(cur.Images, added[i])
		}
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.CategoryID = p.CategoryID
	cur.UpdatedAt = now
	s.products[p.ID] = cur
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.products[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// Users — пользователи; отдельный тип, т.к. Create у Store занят продуктами
type Users struct {
	s *Store
}

func (s *Store) Users() *Users {
	return &Users{s: s}
}

func (u *Users) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return u.exists(func(x models.User) bool { return x.Username == username }), nil
}

func (u *Users) EmailTaken(ctx context.Context, email string) (bool, error) {
	return u.exists(func(x models.User) bool { return strings.EqualFold(x.Email, email) }), nil
}

func (u *Users) exists(match func(models.User) bool) bool {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, x := range u.s.users {
		if match(x) {
			return true
		}
	}
	return false
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.FailWrites != nil {
		return u.s.FailWrites
	}
	for _, x := range u.s.users {
		if x.Username == user.Username || strings.EqualFold(x.Email, user.Email) {
			return storage.ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = u.s.id()
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.users[user.ID] = *user
	return nil
}

// full — копия продукта с подставленной категорией, как после Preload
func (s *Store) full(p models.Product) models.Product {
	out := clone(p)
	out.Category = s.categories[p.CategoryID]
	return out
}

func clone(p models.Product) models.Product {
	if p.Images != nil {
		imgs := make([]models.ProductImage, len(p.Images))
		copy(imgs, p.Images)
		p.Images = imgs
	}
	return p
}
