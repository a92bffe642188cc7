package visitors

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UnknownLocation заглушка для случаев когда геолокация недоступна.
const UnknownLocation = "Unknown"

// Locator клиент сервиса геолокации в стиле ip-api.com:
// GET {base}/{ip} отвечает JSON-ом с полями city и country.
type Locator struct {
	client  *http.Client
	baseURL string
	logger  *logrus.Entry
}

// NewLocator создает клиент с собственным таймаутом: внешний сервис на
// горячем пути редиректа не должен блокировать запрос дольше timeout.
func NewLocator(baseURL string, timeout time.Duration, logger *logrus.Logger) *Locator {
	return &Locator{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.WithField("module", "visitors/geo"),
	}
}

type geoResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Locate возвращает строку вида "Город, Страна" для ip.
// Любая ошибка сети, статуса или декодирования возвращается вызывающему;
// подстановка UnknownLocation остается на его стороне.
func (l *Locator) Locate(ctx context.Context, ip string) (string, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+ip, nil)
	if reqErr != nil {
		return "", errors.Wrap(reqErr, "build geo request")
	}

	resp, doErr := l.client.Do(req)
	if doErr != nil {
		return "", errors.Wrapf(doErr, "geo lookup for %s", ip)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			l.logger.WithError(closeErr).Warn("failed to close geo response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("geo service returned status %d", resp.StatusCode)
	}

	var data geoResponse
	if decErr := json.NewDecoder(resp.Body).Decode(&data); decErr != nil {
		return "", errors.Wrap(decErr, "decode geo response")
	}

	// Частично заполненный ответ не ошибка, недостающие поля гасим заглушкой.
	if data.City == "" {
		data.City = UnknownLocation
	}
	if data.Country == "" {
		data.Country = UnknownLocation
	}
	return data.City + ", " + data.Country, nil
}
