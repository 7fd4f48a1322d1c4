package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"productadmin/internal/models"
)

// ProductStore — доступ к products и product_images
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func pageScope(offset, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("id desc").Offset(offset).Limit(limit)
	}
}

// Page возвращает не больше limit продуктов начиная с offset, вместе с категорией и картинками
func (s *ProductStore) Page(ctx context.Context, offset, limit int) ([]models.Product, error) {
	var items []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Scopes(pageScope(offset, limit)).
		Find(&items).Error
	return items, errors.Wrap(err, "list products")
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, errors.Wrap(err, "count products")
}

// FullByID — продукт с картинками и категорией
func (s *ProductStore) FullByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return &p, nil
}

// Create сохраняет продукт вместе с картинками в одной транзакции
func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Category").Create(p).Error
	})
	return errors.Wrap(err, "create product")
}

// Update перезаписывает редактируемые поля и дописывает новые картинки.
// Если картинки есть, старые теряют флаг главной: главная остаётся одна.
func (s *ProductStore) Update(ctx context.Context, p *models.Product, added []models.ProductImage) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(added) > 0 {
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ?", p.ID).
				Update("is_main", false).Error; err != nil {
				return err
			}
			for i := range added {
				added[i].ProductID = p.ID
			}
			if err := tx.Create(&added).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Product{Base: models.Base{ID: p.ID}}).
			Select("Name", "Description", "Price", "CategoryID", "UpdatedAt").
			Updates(p).Error
	})
	return errors.Wrapf(err, "update product %d", p.ID)
}

// Delete удаляет продукт и его картинки
func (s *ProductStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "delete product %d", id)
}
