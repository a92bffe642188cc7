package repositories

import "errors"

// Общие ошибки уровня репозитория. Конкретные реализации (memstore, sql)
// конвертируют свои внутренние ошибки в эти.
var (
	ErrNotFound     = errors.New("[repository]: record not found")
	ErrDuplicateKey = errors.New("[repository]: duplicate key")
	ErrUnknown      = errors.New("[repository]: unknown error")
)
