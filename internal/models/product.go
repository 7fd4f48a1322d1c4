package models

import "github.com/shopspring/decimal"

// Product — таблица products
type Product struct {
	Base
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"` // HTML из редактора, храним как есть
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Count       int             `gorm:"not null;default:0"`
	CategoryID  uint            `gorm:"index;not null"`
	Category    Category
	Images      []ProductImage `gorm:"constraint:OnDelete:CASCADE"`
}

// ProductImage — таблица product_images
type ProductImage struct {
	Base
	Image     string `gorm:"size:512;not null"` // только имя файла внутри папки img
	IsMain    bool   `gorm:"not null;default:false"`
	ProductID uint   `gorm:"index;not null"`
}

// MainImage возвращает имя главной картинки или "" если картинок нет
func (p *Product) MainImage() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.Image
		}
	}
	return ""
}

// ImageNames — имена всех файлов продукта
func (p *Product) ImageNames() []string {
	names := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		names = append(names, img.Image)
	}
	return names
}

// SetMain снимает флаг со всех картинок и ставит его на i-ю.
// Так у продукта всегда ровно одна главная картинка.
func (p *Product) SetMain(i int) {
	if i < 0 || i >= len(p.Images) {
		return
	}
	for k := range p.Images {
		p.Images[k].IsMain = k == i
	}
}
