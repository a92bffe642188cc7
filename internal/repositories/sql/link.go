package sql

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/linkstats/internal/base62"
	"github.com/fsdevblog/linkstats/internal/models"
	"github.com/fsdevblog/linkstats/internal/repositories"
)

// LinkRepo репозиторий ссылок поверх gorm. Уникальные индексы по url и
// short_code дублируют инварианты in-memory хранилища на уровне БД.
type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// GetOrCreate возвращает запись для rawURL, создавая её при первом обращении.
// Короткий код выводится из автоинкрементного id, поэтому проставляется
// отдельным обновлением внутри той же транзакции.
func (r *LinkRepo) GetOrCreate(ctx context.Context, rawURL string) (*models.Link, error) {
	var link models.Link

	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("url = ?", rawURL).First(&link).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		link = models.Link{URL: rawURL}
		if createErr := tx.Create(&link).Error; createErr != nil {
			return createErr
		}
		link.ShortCode = base62.Encode(link.ID)
		return tx.Model(&link).Update("short_code", link.ShortCode).Error
	})

	if txErr != nil {
		// Конкурентная вставка того же URL упирается в уникальный индекс;
		// в этом случае запись уже существует и её достаточно перечитать.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			if retryErr := r.db.WithContext(ctx).Where("url = ?", rawURL).First(&link).Error; retryErr == nil {
				return &link, nil
			}
		}
		r.logger.WithError(txErr).Errorf("failed to get or create link for url %s", rawURL)
		return nil, ConvertErrorType(txErr)
	}
	return &link, nil
}

// GetByShortCode находит запись по короткому коду.
func (r *LinkRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	var link models.Link
	if err := r.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(repositories.ErrNotFound, "short code %s", shortCode)
		}
		r.logger.WithError(err).Errorf("failed to get link by short code %s", shortCode)
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}
