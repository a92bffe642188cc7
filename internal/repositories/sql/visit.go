package sql

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/linkstats/internal/models"
)

// VisitRepo журнал посещений поверх gorm. Таблица visits связана со
// ссылками через link_id; порядок посещений восстанавливается по
// автоинкрементному id.
type VisitRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewVisitRepo(db *gorm.DB, logger *logrus.Logger) *VisitRepo {
	return &VisitRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/visit"),
	}
}

// Append дописывает посещение в журнал ссылки.
func (r *VisitRepo) Append(ctx context.Context, link *models.Link, visit *models.Visit) error {
	v := *visit
	v.LinkID = link.ID
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		r.logger.WithError(err).Errorf("failed to append visit for link %s", link.ShortCode)
		return ConvertErrorType(err)
	}
	return nil
}

// ListByLink возвращает посещения ссылки в порядке добавления.
func (r *VisitRepo) ListByLink(ctx context.Context, link *models.Link) ([]models.Visit, error) {
	visits := make([]models.Visit, 0)
	err := r.db.WithContext(ctx).
		Where("link_id = ?", link.ID).
		Order("id ASC").
		Find(&visits).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to list visits for link %s", link.ShortCode)
		return nil, ConvertErrorType(err)
	}
	return visits, nil
}
