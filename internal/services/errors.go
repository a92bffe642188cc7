package services

import "errors"

// Терминальные ошибки сервисного слоя. Контроллеры мапят их на HTTP статусы.
var (
	ErrUnknown        = errors.New("[service]: unknown error")
	ErrRecordNotFound = errors.New("[service]: record not found")
	ErrInvalidURL     = errors.New("[service]: invalid url")
	ErrRateLimited    = errors.New("[service]: rate limit exceeded")
)
