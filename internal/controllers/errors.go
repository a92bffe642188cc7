package controllers

import "errors"

// Ошибки.
var (
	ErrRecordNotFound = errors.New("Short URL not found")                  // Код не найден
	ErrRateLimited    = errors.New("Rate limit exceeded. Try again later") // Превышен лимит запросов
	ErrInternal       = errors.New("internal error")                       // Прочая ошибка
)
