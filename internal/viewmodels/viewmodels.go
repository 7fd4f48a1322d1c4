package viewmodels

import (
	"mime/multipart"

	"github.com/shopspring/decimal"

	"productadmin/internal/models"
)

// Paginate — страница элементов плюс номер текущей страницы и число страниц
type Paginate[T any] struct {
	Datas       []T
	CurrentPage int
	TotalPage   int
	Take        int
}

func NewPaginate[T any](datas []T, currentPage, totalPage, take int) Paginate[T] {
	return Paginate[T]{Datas: datas, CurrentPage: currentPage, TotalPage: totalPage, Take: take}
}

func (p Paginate[T]) HasPrevious() bool { return p.CurrentPage > 1 }
func (p Paginate[T]) HasNext() bool     { return p.CurrentPage < p.TotalPage }

// Pages — номера страниц 1..TotalPage для шаблона
func (p Paginate[T]) Pages() []int {
	pages := make([]int, p.TotalPage)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// ProductListVM — строка таблицы продуктов
type ProductListVM struct {
	ID           uint
	Name         string
	Description  string
	Price        decimal.Decimal
	Count        int
	CategoryName string
	MainImage    string
}

func MapProductList(products []models.Product) []ProductListVM {
	out := make([]ProductListVM, 0, len(products))
	for _, p := range products {
		out = append(out, ProductListVM{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			Count:        p.Count,
			CategoryName: p.Category.Name,
			MainImage:    p.MainImage(),
		})
	}
	return out
}

// SelectOption — <option value=Value>Label</option>
type SelectOption struct {
	Value    uint
	Label    string
	Selected bool
}

func CategoryOptions(categories []models.Category, selected uint) []SelectOption {
	out := make([]SelectOption, 0, len(categories))
	for _, c := range categories {
		out = append(out, SelectOption{Value: c.ID, Label: c.Name, Selected: c.ID == selected})
	}
	return out
}

// ProductCreateVM — форма создания. Price строкой, парсим сами.
type ProductCreateVM struct {
	Name        string                  `form:"name" binding:"required,max=255"`
	Description string                  `form:"description" binding:"required"`
	Price       string                  `form:"price" binding:"required"`
	Count       int                     `form:"count" binding:"min=0"`
	CategoryID  uint                    `form:"categoryId" binding:"required"`
	Photos      []*multipart.FileHeader `form:"photos"`
}

// ProductEditVM — форма редактирования; Images только для показа текущих картинок
type ProductEditVM struct {
	ID          uint                    `form:"-"`
	Name        string                  `form:"name" binding:"required,max=255"`
	Description string                  `form:"description" binding:"required"`
	Price       string                  `form:"price" binding:"required"`
	CategoryID  uint                    `form:"categoryId" binding:"required"`
	Images      []models.ProductImage   `form:"-"`
	Photos      []*multipart.FileHeader `form:"photos"`
}

func NewProductEditVM(p *models.Product) ProductEditVM {
	return ProductEditVM{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		CategoryID:  p.CategoryID,
		Images:      p.Images,
	}
}

// RegisterVM — форма регистрации
type RegisterVM struct {
	Fullname        string `form:"fullname" binding:"required,max=255"`
	Username        string `form:"username" binding:"required,max=64"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" binding:"required,eqfield=Password"`
}

// FieldErrors — ошибки по полям формы, ключ — имя поля в форме
type FieldErrors map[string]string

func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) Any() bool { return len(e) > 0 }
