package services

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fsdevblog/linkstats/internal/repositories/memstore"
	"github.com/fsdevblog/linkstats/internal/repositories/sql"
)

// ServiceType тип хранилища за сервисным слоем.
type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

// Services сервисный слой приложения.
type Services struct {
	LinkService *LinkService
	PingService *PingService
}

// Deps внешние зависимости сервисного слоя, не зависящие от типа хранилища.
type Deps struct {
	Limiter    RateLimiter
	Classifier Classifier
	Locator    Locator
	BaseURL    *url.URL
	GeoTimeout time.Duration
	Logger     *logrus.Logger
}

// Factory собирает сервисный слой поверх выбранного хранилища.
// Для sqlite ожидает в conn живое соединение *gorm.DB.
func Factory(conn any, sType ServiceType, deps Deps) (*Services, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return newServices(
			sql.NewLinkRepo(gormDB, deps.Logger),
			sql.NewVisitRepo(gormDB, deps.Logger),
			gormDB,
			deps,
		), nil
	case ServiceTypeInMemory:
		return newServices(
			memstore.NewLinkRepo(deps.Logger),
			memstore.NewVisitRepo(),
			nil,
			deps,
		), nil
	default:
		return nil, errors.Errorf("unknown service type: %s", sType)
	}
}

func newServices(linkRepo LinkRepository, visitRepo VisitRepository, db *gorm.DB, deps Deps) *Services {
	return &Services{
		LinkService: NewLinkService(LinkServiceParams{
			LinkRepo:   linkRepo,
			VisitRepo:  visitRepo,
			Limiter:    deps.Limiter,
			Classifier: deps.Classifier,
			Locator:    deps.Locator,
			BaseURL:    deps.BaseURL,
			GeoTimeout: deps.GeoTimeout,
			Logger:     deps.Logger,
		}),
		PingService: NewPingService(db),
	}
}
