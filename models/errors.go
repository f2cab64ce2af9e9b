package models

import "errors"

var (
	ErrEmptyQuery         = errors.New("search query is empty")
	ErrInvalidLimit       = errors.New("search limit must be positive")
	ErrBackendUnavailable = errors.New("search backend unavailable")
	ErrBackendQueryFailed = errors.New("search backend query failed")
	ErrBackendIndexFailed = errors.New("search backend index failed")
	ErrInvalidPrimaryKey  = errors.New("unsupported primary key")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrNotFound           = errors.New("not found")
)
