package services

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/linkstats/internal/models"
	"github.com/fsdevblog/linkstats/internal/repositories"
)

// unknownLocation подставляется в запись посещения когда геолокация не удалась.
const unknownLocation = "Unknown"

// LinkRepository описывает хранилище ссылок.
type LinkRepository interface {
	// GetOrCreate возвращает запись для rawURL, создавая её при первом
	// обращении. Обязан быть атомарным: конкурентные вызовы для одного
	// нового URL получают один код.
	GetOrCreate(ctx context.Context, rawURL string) (*models.Link, error)
	// GetByShortCode находит запись по короткому коду или возвращает
	// repositories.ErrNotFound.
	GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error)
}

// VisitRepository описывает append-only журнал посещений.
type VisitRepository interface {
	Append(ctx context.Context, link *models.Link, visit *models.Visit) error
	ListByLink(ctx context.Context, link *models.Link) ([]models.Visit, error)
}

// RateLimiter решает, пропускать ли запрос от key в момент now.
type RateLimiter interface {
	Allow(key string, now time.Time) bool
}

// Classifier определяет класс устройства и браузер по User-Agent.
type Classifier interface {
	Classify(userAgent string) (models.DeviceClass, string)
}

// Locator определяет примерное местоположение по IP. Вызов обязан
// укладываться в таймаут контекста; ошибка здесь никогда не фатальна.
type Locator interface {
	Locate(ctx context.Context, ip string) (string, error)
}

// LinkService реализует сценарии сокращения, редиректа и статистики.
// Все входящие вызовы кроме статистики сперва проходят через лимитер.
type LinkService struct {
	linkRepo   LinkRepository
	visitRepo  VisitRepository
	limiter    RateLimiter
	classifier Classifier
	locator    Locator
	baseURL    *url.URL
	geoTimeout time.Duration
	nowFunc    func() time.Time
	logger     *logrus.Entry
}

// LinkServiceParams зависимости LinkService.
type LinkServiceParams struct {
	LinkRepo   LinkRepository
	VisitRepo  VisitRepository
	Limiter    RateLimiter
	Classifier Classifier
	Locator    Locator
	BaseURL    *url.URL
	GeoTimeout time.Duration
	Logger     *logrus.Logger
}

func NewLinkService(params LinkServiceParams) *LinkService {
	return &LinkService{
		linkRepo:   params.LinkRepo,
		visitRepo:  params.VisitRepo,
		limiter:    params.Limiter,
		classifier: params.Classifier,
		locator:    params.Locator,
		baseURL:    params.BaseURL,
		geoTimeout: params.GeoTimeout,
		nowFunc:    time.Now,
		logger:     params.Logger.WithField("module", "services/link"),
	}
}

// Shorten проверяет лимит запросов, валидирует ссылку и возвращает короткий URL.
// Повторное сокращение того же URL возвращает тот же код.
func (s *LinkService) Shorten(ctx context.Context, rawURL, clientIP string) (string, error) {
	if !s.limiter.Allow(clientIP, s.nowFunc()) {
		return "", errors.Wrapf(ErrRateLimited, "client %s", clientIP)
	}

	parsed, parseErr := validateURL(rawURL)
	if parseErr != nil {
		return "", errors.Wrap(ErrInvalidURL, parseErr.Error())
	}

	link, createErr := s.linkRepo.GetOrCreate(ctx, parsed.String())
	if createErr != nil {
		s.logger.WithError(createErr).Errorf("failed to get or create link for %s", parsed)
		return "", ErrUnknown
	}

	return s.shortURL(link.ShortCode), nil
}

// Redirect разрешает короткий код в оригинальный URL и записывает посещение.
func (s *LinkService) Redirect(ctx context.Context, shortCode, clientIP, userAgent string) (string, error) {
	if !s.limiter.Allow(clientIP, s.nowFunc()) {
		return "", errors.Wrapf(ErrRateLimited, "client %s", clientIP)
	}

	link, err := s.linkRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		s.logger.WithError(err).Errorf("failed to resolve short code %s", shortCode)
		return "", ErrUnknown
	}

	visit := s.buildVisit(ctx, clientIP, userAgent)
	if appendErr := s.visitRepo.Append(ctx, link, visit); appendErr != nil {
		// Потеря записи посещения не должна ломать редирект.
		s.logger.WithError(appendErr).Errorf("failed to log visit for %s", shortCode)
	}

	return link.URL, nil
}

// Stats возвращает агрегированную статистику посещений короткого кода.
// Эндпоинт статистики лимитером не ограничивается.
func (s *LinkService) Stats(ctx context.Context, shortCode string) (*models.LinkStats, error) {
	link, err := s.linkRepo.GetByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		s.logger.WithError(err).Errorf("failed to resolve short code %s", shortCode)
		return nil, ErrUnknown
	}

	visits, listErr := s.visitRepo.ListByLink(ctx, link)
	if listErr != nil {
		s.logger.WithError(listErr).Errorf("failed to list visits for %s", shortCode)
		return nil, ErrUnknown
	}

	return &models.LinkStats{
		ShortCode:   link.ShortCode,
		OriginalURL: link.URL,
		VisitCount:  len(visits),
		Visitors:    visits,
	}, nil
}

// buildVisit собирает запись посещения. Классификация и геолокация
// best-effort: отказ геосервиса только понижает поле location до Unknown.
func (s *LinkService) buildVisit(ctx context.Context, clientIP, userAgent string) *models.Visit {
	device, browser := s.classifier.Classify(userAgent)

	location := unknownLocation
	geoCtx, cancel := context.WithTimeout(ctx, s.geoTimeout)
	defer cancel()
	if loc, geoErr := s.locator.Locate(geoCtx, clientIP); geoErr != nil {
		s.logger.WithError(geoErr).Debugf("geo lookup failed for %s", clientIP)
	} else {
		location = loc
	}

	return &models.Visit{
		IP:        clientIP,
		Device:    device,
		Browser:   browser,
		Location:  location,
		Timestamp: s.nowFunc().UTC().Format(time.RFC3339),
	}
}

func (s *LinkService) shortURL(shortCode string) string {
	return strings.TrimRight(s.baseURL.String(), "/") + "/" + shortCode
}

// validateURL проверяет что строка является абсолютным http/https URL.
func validateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, errors.New("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}
	if parsed.Host == "" {
		return nil, errors.New("URL must have a host")
	}
	return parsed, nil
}
