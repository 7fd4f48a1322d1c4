package models

import "time"

// Base — общие поля для всех таблиц
type Base struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Tables — порядок важен для AutoMigrate: категории раньше продуктов
var Tables = []any{
	&Category{},
	&Product{},
	&ProductImage{},
	&User{},
}
