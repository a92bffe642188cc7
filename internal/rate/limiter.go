// Package rate реализует ограничитель запросов по алгоритму sliding window log:
// для каждого ключа хранится список таймстемпов принятых запросов внутри
// скользящего окна.
package rate

import (
	"sync"
	"time"
)

// DefaultWindow и DefaultMax значения по умолчанию: не более 5 запросов
// за последние 60 секунд.
const (
	DefaultWindow = 60 * time.Second
	DefaultMax    = 5
)

// Limiter ограничитель запросов с общим состоянием для всех ключей.
// Безопасен для конкурентного использования.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewLimiter создает ограничитель с заданным окном и лимитом.
// Неположительные значения заменяются значениями по умолчанию.
func NewLimiter(window time.Duration, maxRequests int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMax
	}
	return &Limiter{
		window: window,
		max:    maxRequests,
		hits:   make(map[string][]time.Time),
	}
}

// Allow проверяет можно ли пропустить запрос от key в момент now.
// Сначала из истории ключа выбрасываются истекшие таймстемпы, затем, если
// лимит не исчерпан, now дописывается в историю. Отклоненные запросы в
// историю не попадают.
func (l *Limiter) Allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		// Таймстемп ровно на границе окна считается истекшим (строгое сравнение).
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}

// TrackedKeys возвращает количество ключей с непустой историей.
func (l *Limiter) TrackedKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}
