package controllers

import (
	"context"

	"github.com/fsdevblog/linkstats/internal/models"
)

// Shortener описывает сервисный слой ссылок, нужный контроллерам.
type Shortener interface {
	// Shorten возвращает полный короткий URL для rawURL.
	Shorten(ctx context.Context, rawURL, clientIP string) (string, error)
	// Redirect разрешает короткий код и записывает посещение.
	Redirect(ctx context.Context, shortCode, clientIP, userAgent string) (string, error)
	// Stats возвращает статистику посещений по коду.
	Stats(ctx context.Context, shortCode string) (*models.LinkStats, error)
}

// ConnectionChecker проверяет доступность хранилища.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}
