package memstore

import (
	"context"
	"sync"

	"github.com/fsdevblog/linkstats/internal/models"
)

// VisitRepo append-only журнал посещений в памяти, сгруппированный по
// коротким кодам. Порядок записей внутри кода равен порядку посещений;
// записи никогда не удаляются и не переставляются.
type VisitRepo struct {
	mu     sync.RWMutex
	visits map[string][]models.Visit
}

// NewVisitRepo создает новый экземпляр журнала посещений.
func NewVisitRepo() *VisitRepo {
	return &VisitRepo{
		visits: make(map[string][]models.Visit),
	}
}

// Append дописывает посещение в конец журнала ссылки.
// Существование ссылки гарантирует сервисный слой.
func (r *VisitRepo) Append(_ context.Context, link *models.Link, visit *models.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := *visit
	v.LinkID = link.ID
	r.visits[link.ShortCode] = append(r.visits[link.ShortCode], v)
	return nil
}

// ListByLink возвращает посещения ссылки в порядке добавления.
// Для ссылки без посещений возвращается пустой срез, это не ошибка.
func (r *VisitRepo) ListByLink(_ context.Context, link *models.Link) ([]models.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.visits[link.ShortCode]
	result := make([]models.Visit, len(stored))
	copy(result, stored)
	return result, nil
}
