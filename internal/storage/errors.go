package storage

import "github.com/pkg/errors"

var (
	// ErrNotFound — запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate — нарушен уникальный индекс
	ErrDuplicate = errors.New("duplicate key")
)
