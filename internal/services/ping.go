package services

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PingService проверяет доступность хранилища.
type PingService struct {
	db *gorm.DB // nil для in-memory хранилища
}

func NewPingService(db *gorm.DB) *PingService {
	return &PingService{db: db}
}

// CheckConnection пингует базу данных. Для in-memory хранилища соединения
// нет и проверка всегда успешна.
func (p *PingService) CheckConnection(ctx context.Context) error {
	if p.db == nil {
		return nil
	}
	sqlDB, err := p.db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping db")
}
