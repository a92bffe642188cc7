package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/linkstats/internal/base62"
	"github.com/fsdevblog/linkstats/internal/models"
	"github.com/fsdevblog/linkstats/internal/repositories"
)

// LinkRepo хранилище ссылок в памяти: двунаправленное отображение
// URL <-> короткий код и монотонный счетчик идентификаторов.
//
// Инварианты:
//   - пара URL/код взаимно однозначна на протяжении жизни хранилища;
//   - счетчик стартует с 1 и увеличивается ровно один раз на каждую новую
//     запись (попадание в кеш по URL счетчик не трогает).
type LinkRepo struct {
	mu      sync.RWMutex
	byCode  map[string]*models.Link
	byURL   map[string]*models.Link
	counter uint64
	logger  *logrus.Entry
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
func NewLinkRepo(logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		byCode: make(map[string]*models.Link),
		byURL:  make(map[string]*models.Link),
		logger: logger.WithField("module", "repository/memstore/link"),
	}
}

// GetOrCreate возвращает запись для rawURL, создавая её при первом обращении.
// Проверка обратного отображения и вставка выполняются под одной блокировкой:
// два конкурентных вызова для нового URL получат один и тот же код.
func (r *LinkRepo) GetOrCreate(_ context.Context, rawURL string) (*models.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if link, ok := r.byURL[rawURL]; ok {
		return copyLink(link), nil
	}

	r.counter++
	link := &models.Link{
		ID:        r.counter,
		CreatedAt: time.Now().UTC(),
		URL:       rawURL,
		ShortCode: base62.Encode(r.counter),
	}
	r.byCode[link.ShortCode] = link
	r.byURL[rawURL] = link

	r.logger.WithField("shortCode", link.ShortCode).Debug("link created")
	return copyLink(link), nil
}

// GetByShortCode находит запись по короткому коду.
//
// Возвращает:
//   - *models.Link: найденная запись
//   - error: repositories.ErrNotFound если код никогда не выдавался
func (r *LinkRepo) GetByShortCode(_ context.Context, shortCode string) (*models.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.byCode[shortCode]
	if !ok {
		return nil, errors.Wrapf(repositories.ErrNotFound, "short code %s", shortCode)
	}
	return copyLink(link), nil
}

// copyLink отдает копию записи, чтобы вызывающий не мог менять хранимое состояние.
func copyLink(link *models.Link) *models.Link {
	c := *link
	return &c
}
