package models

// Category — таблица categories
type Category struct {
	Base
	Name string `gorm:"size:128;uniqueIndex;not null"`
}
