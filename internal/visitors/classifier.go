// Package visitors собирает best-effort сведения о посетителе: класс
// устройства и браузер из User-Agent, примерное местоположение по IP.
package visitors

import (
	"strings"

	"github.com/fsdevblog/linkstats/internal/models"
)

// Classifier определяет устройство и браузер по строке User-Agent.
// Точная таксономия не требуется: эвристики по подстрокам покрывают
// подавляющее большинство реальных агентов, остальное уходит в PC/Other.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify возвращает класс устройства и метку браузера вида "Chrome 126.0".
func (c *Classifier) Classify(userAgent string) (models.DeviceClass, string) {
	return classifyDevice(userAgent), classifyBrowser(userAgent)
}

func classifyDevice(userAgent string) models.DeviceClass {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		// Android без маркера Mobile означает планшет.
		return models.DeviceTablet
	case strings.Contains(ua, "mobi"), strings.Contains(ua, "iphone"), strings.Contains(ua, "android"):
		return models.DeviceMobile
	default:
		return models.DevicePC
	}
}

// classifyBrowser проверяет маркеры в порядке специфичности: Chrome
// присутствует в агентах Edge и Opera, а Safari почти во всех на WebKit.
func classifyBrowser(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Edg/"):
		return browserLabel("Edge", versionAfter(userAgent, "Edg/"))
	case strings.Contains(userAgent, "OPR/"):
		return browserLabel("Opera", versionAfter(userAgent, "OPR/"))
	case strings.Contains(userAgent, "Firefox/"):
		return browserLabel("Firefox", versionAfter(userAgent, "Firefox/"))
	case strings.Contains(userAgent, "Chrome/"):
		return browserLabel("Chrome", versionAfter(userAgent, "Chrome/"))
	case strings.Contains(userAgent, "Version/") && strings.Contains(userAgent, "Safari/"):
		return browserLabel("Safari", versionAfter(userAgent, "Version/"))
	case strings.Contains(userAgent, "MSIE "):
		return browserLabel("IE", versionAfter(userAgent, "MSIE "))
	default:
		return "Other"
	}
}

func browserLabel(family, version string) string {
	return strings.TrimSpace(family + " " + version)
}

// versionAfter вырезает номер версии, идущий сразу за маркером.
func versionAfter(userAgent, marker string) string {
	rest := userAgent[strings.Index(userAgent, marker)+len(marker):]
	end := strings.IndexFunc(rest, func(r rune) bool {
		return r != '.' && (r < '0' || r > '9')
	})
	if end == -1 {
		return rest
	}
	return rest[:end]
}
