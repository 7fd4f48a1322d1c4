package service

import (
	"context"
	"math"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"productadmin/internal/events"
	"productadmin/internal/models"
	"productadmin/internal/storage"
)

// ErrNotFound — продукт (или другая запись) не найден
var ErrNotFound = storage.ErrNotFound

// ProductStore — то, что сервису нужно от хранилища
type ProductStore interface {
	Page(ctx context.Context, offset, limit int) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	FullByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product, added []models.ProductImage) error
	Delete(ctx context.Context, id uint) error
}

// ImageStorage — файловое хранилище картинок
type ImageStorage interface {
	SaveAll(uploads []*multipart.FileHeader) ([]string, error)
	Remove(names ...string)
}

// ProductInput — проверенные значения полей формы
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Count       int
	CategoryID  uint
}

type ProductService struct {
	store     ProductStore
	images    ImageStorage
	publisher events.Publisher
	now       func() time.Time
}

func NewProductService(store ProductStore, images ImageStorage, publisher events.Publisher) *ProductService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ProductService{store: store, images: images, publisher: publisher, now: time.Now}
}

// PageCount = ceil(total / take)
func PageCount(total int64, take int) int {
	if take < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(take) - 1) / int64(take))
}

// Paginated — страница page (с 1) по take продуктов
func (s *ProductService) Paginated(ctx context.Context, page, take int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	if take < 1 {
		return []models.Product{}, nil
	}
	// offset не должен переполнить int
	if page-1 > math.MaxInt/take {
		return []models.Product{}, nil
	}
	return s.store.Page(ctx, (page-1)*take, take)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

func (s *ProductService) FullByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.store.FullByID(ctx, id)
}

// Create сначала пишет файлы, потом строку в БД.
// Если БД не сохранила продукт, записанные файлы удаляются.
func (s *ProductService) Create(ctx context.Context, in ProductInput, photos []*multipart.FileHeader) (*models.Product, error) {
	names, err := s.images.SaveAll(photos)
	if err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Count:       in.Count,
		CategoryID:  in.CategoryID,
		Images:      newImages(names),
	}
	if err := s.store.Create(ctx, p); err != nil {
		s.images.Remove(names...)
		return nil, err
	}

	s.publish(ctx, events.ProductCreated, p)
	return p, nil
}

// Update всегда перечитывает продукт из базы и перезаписывает Name, Description, Price, CategoryID.
// Новые фото дописываются, первая из новых становится главной.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput, photos []*multipart.FileHeader) (*models.Product, error) {
	p, err := s.store.FullByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var names []string
	if len(photos) > 0 {
		if names, err = s.images.SaveAll(photos); err != nil {
			return nil, err
		}
	}
	added := newImages(names)

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.CategoryID = in.CategoryID

	if err := s.store.Update(ctx, p, added); err != nil {
		s.images.Remove(names...)
		return nil, err
	}

	if len(added) > 0 {
		p.Images = append(p.Images, added...)
		p.SetMain(len(p.Images) - len(added))
	}
	s.publish(ctx, events.ProductUpdated, p)
	return p, nil
}

// Delete удаляет продукт, а после коммита и его файлы
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	p, err := s.store.FullByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.images.Remove(p.ImageNames()...)
	s.publish(ctx, events.ProductDeleted, p)
	return nil
}

func newImages(names []string) []models.ProductImage {
	if len(names) == 0 {
		return nil
	}
	imgs := make([]models.ProductImage, 0, len(names))
	for i, name := range names {
		imgs = append(imgs, models.ProductImage{Image: name, IsMain: i == 0})
	}
	return imgs
}

// publish не роняет запрос: событие вторично по отношению к записи в БД
func (s *ProductService) publish(ctx context.Context, typ string, p *models.Product) {
	ev := events.ProductEvent{
		Type:       typ,
		ProductID:  p.ID,
		Name:       p.Name,
		Price:      p.Price.StringFixed(2),
		CategoryID: p.CategoryID,
		Images:     p.ImageNames(),
		Timestamp:  s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		zap.L().Warn("failed to publish product event", zap.String("type", typ), zap.Uint("product_id", p.ID), zap.Error(err))
	}
}
