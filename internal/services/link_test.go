package services

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/linkstats/internal/models"
	"github.com/fsdevblog/linkstats/internal/rate"
	"github.com/fsdevblog/linkstats/internal/repositories/memstore"
)

// stubClassifier всегда возвращает фиксированную классификацию.
type stubClassifier struct {
	device  models.DeviceClass
	browser string
}

func (s *stubClassifier) Classify(string) (models.DeviceClass, string) {
	return s.device, s.browser
}

// stubLocator отдает заданное местоположение либо ошибку.
type stubLocator struct {
	location string
	err      error
}

func (s *stubLocator) Locate(context.Context, string) (string, error) {
	return s.location, s.err
}

type LinkServiceSuite struct {
	suite.Suite
	service    *LinkService
	locator    *stubLocator
	classifier *stubClassifier
	now        time.Time
}

func (s *LinkServiceSuite) SetupTest() {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.locator = &stubLocator{location: "Berlin, Germany"}
	s.classifier = &stubClassifier{device: models.DeviceMobile, browser: "Chrome 126.0"}

	baseURL, _ := url.Parse("http://short.test")
	s.service = NewLinkService(LinkServiceParams{
		LinkRepo:   memstore.NewLinkRepo(logger),
		VisitRepo:  memstore.NewVisitRepo(),
		Limiter:    rate.NewLimiter(60*time.Second, 5),
		Classifier: s.classifier,
		Locator:    s.locator,
		BaseURL:    baseURL,
		GeoTimeout: 100 * time.Millisecond,
		Logger:     logger,
	})
	s.service.nowFunc = func() time.Time { return s.now }
}

func (s *LinkServiceSuite) TestShorten() {
	shortURL, err := s.service.Shorten(context.Background(), "https://example.com", "1.2.3.4")
	s.Require().NoError(err)
	s.Equal("http://short.test/1", shortURL)
}

func (s *LinkServiceSuite) TestShorten_Idempotent() {
	ctx := context.Background()

	first, err := s.service.Shorten(ctx, "https://example.com", "1.2.3.4")
	s.Require().NoError(err)

	second, err := s.service.Shorten(ctx, "https://example.com", "5.6.7.8")
	s.Require().NoError(err)
	s.Equal(first, second)

	// Следующий новый URL получает код "2": кеш-попадания счетчик не трогали.
	third, err := s.service.Shorten(ctx, "https://example.com/other", "5.6.7.8")
	s.Require().NoError(err)
	s.Equal("http://short.test/2", third)
}

func (s *LinkServiceSuite) TestShorten_InvalidURL() {
	tests := []struct {
		name   string
		rawURL string
	}{
		{name: "empty", rawURL: ""},
		{name: "no scheme", rawURL: "example.com"},
		{name: "ftp scheme", rawURL: "ftp://example.com"},
		{name: "no host", rawURL: "https://"},
		{name: "just text", rawURL: "не ссылка"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Shorten(context.Background(), tt.rawURL, "1.2.3.4")
			s.ErrorIs(err, ErrInvalidURL)
		})
	}
}

func (s *LinkServiceSuite) TestShorten_RateLimited() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.service.Shorten(ctx, fmt.Sprintf("https://example.com/%d", i), "1.2.3.4")
		s.Require().NoError(err)
	}

	_, err := s.service.Shorten(ctx, "https://example.com/6", "1.2.3.4")
	s.ErrorIs(err, ErrRateLimited)

	// Для другого клиента лимит свой.
	_, err = s.service.Shorten(ctx, "https://example.com/6", "5.6.7.8")
	s.NoError(err)

	// Спустя окно лимит сбрасывается.
	s.now = s.now.Add(61 * time.Second)
	_, err = s.service.Shorten(ctx, "https://example.com/7", "1.2.3.4")
	s.NoError(err)
}

func (s *LinkServiceSuite) TestRedirect() {
	ctx := context.Background()
	_, err := s.service.Shorten(ctx, "https://example.com", "9.9.9.9")
	s.Require().NoError(err)

	longURL, err := s.service.Redirect(ctx, "1", "1.2.3.4", "Mozilla/5.0")
	s.Require().NoError(err)
	s.Equal("https://example.com", longURL)

	stats, err := s.service.Stats(ctx, "1")
	s.Require().NoError(err)
	s.Require().Equal(1, stats.VisitCount)

	visit := stats.Visitors[0]
	s.Equal("1.2.3.4", visit.IP)
	s.Equal(models.DeviceMobile, visit.Device)
	s.Equal("Chrome 126.0", visit.Browser)
	s.Equal("Berlin, Germany", visit.Location)
	s.Equal(s.now.Format(time.RFC3339), visit.Timestamp)
}

func (s *LinkServiceSuite) TestRedirect_NotFound() {
	_, err := s.service.Redirect(context.Background(), "doesnotexist", "1.2.3.4", "")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *LinkServiceSuite) TestRedirect_RateLimited() {
	ctx := context.Background()
	_, err := s.service.Shorten(ctx, "https://example.com", "9.9.9.9")
	s.Require().NoError(err)

	for i := 0; i < 5; i++ {
		_, redirectErr := s.service.Redirect(ctx, "1", "1.2.3.4", "")
		s.Require().NoError(redirectErr)
	}
	_, err = s.service.Redirect(ctx, "1", "1.2.3.4", "")
	s.ErrorIs(err, ErrRateLimited)
}

func (s *LinkServiceSuite) TestRedirect_GeoFailureDegradesLocation() {
	ctx := context.Background()
	_, err := s.service.Shorten(ctx, "https://example.com", "9.9.9.9")
	s.Require().NoError(err)

	s.locator.err = errors.New("geo service unavailable")

	longURL, err := s.service.Redirect(ctx, "1", "1.2.3.4", "Mozilla/5.0")
	s.Require().NoError(err, "geo failure must not fail the redirect")
	s.Equal("https://example.com", longURL)

	stats, err := s.service.Stats(ctx, "1")
	s.Require().NoError(err)
	s.Require().Equal(1, stats.VisitCount)
	s.Equal("Unknown", stats.Visitors[0].Location)
}

func (s *LinkServiceSuite) TestStats_CountsInOrder() {
	ctx := context.Background()
	_, err := s.service.Shorten(ctx, "https://example.com", "9.9.9.9")
	s.Require().NoError(err)

	const visits = 3
	for i := 0; i < visits; i++ {
		_, redirectErr := s.service.Redirect(ctx, "1", fmt.Sprintf("10.0.0.%d", i), "")
		s.Require().NoError(redirectErr)
	}

	stats, err := s.service.Stats(ctx, "1")
	s.Require().NoError(err)
	s.Equal("1", stats.ShortCode)
	s.Equal("https://example.com", stats.OriginalURL)
	s.Equal(visits, stats.VisitCount)
	s.Require().Len(stats.Visitors, visits)
	for i, v := range stats.Visitors {
		s.Equal(fmt.Sprintf("10.0.0.%d", i), v.IP)
	}
}

func (s *LinkServiceSuite) TestStats_NotFound() {
	_, err := s.service.Stats(context.Background(), "doesnotexist")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *LinkServiceSuite) TestStats_NotRateLimited() {
	ctx := context.Background()
	_, err := s.service.Shorten(ctx, "https://example.com", "1.2.3.4")
	s.Require().NoError(err)

	// Полностью выбираем лимит клиента.
	for {
		if _, redirectErr := s.service.Redirect(ctx, "1", "1.2.3.4", ""); redirectErr != nil {
			s.Require().ErrorIs(redirectErr, ErrRateLimited)
			break
		}
	}

	// Статистика при этом остается доступной.
	for i := 0; i < 10; i++ {
		_, statsErr := s.service.Stats(ctx, "1")
		s.Require().NoError(statsErr)
	}
}

func TestLinkServiceSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceSuite))
}
