package rate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("admits up to limit within window", func(t *testing.T) {
		l := NewLimiter(60*time.Second, 5)
		for i := 0; i < 5; i++ {
			assert.True(t, l.Allow("1.2.3.4", base.Add(time.Duration(i)*time.Second)), "request %d", i+1)
		}
		assert.False(t, l.Allow("1.2.3.4", base.Add(5*time.Second)), "6th request must be rejected")
	})

	t.Run("admits again after window slides past first request", func(t *testing.T) {
		l := NewLimiter(60*time.Second, 5)
		for i := 0; i < 5; i++ {
			l.Allow("1.2.3.4", base)
		}
		assert.False(t, l.Allow("1.2.3.4", base.Add(30*time.Second)))
		assert.True(t, l.Allow("1.2.3.4", base.Add(61*time.Second)))
	})

	t.Run("boundary timestamp is expired", func(t *testing.T) {
		// Запрос ровно windowSize назад не учитывается в лимите.
		l := NewLimiter(60*time.Second, 1)
		assert.True(t, l.Allow("1.2.3.4", base))
		assert.True(t, l.Allow("1.2.3.4", base.Add(60*time.Second)))
	})

	t.Run("rejected requests are not recorded", func(t *testing.T) {
		l := NewLimiter(60*time.Second, 5)
		for i := 0; i < 5; i++ {
			l.Allow("1.2.3.4", base)
		}
		// Десяток отказов не должен продлевать блокировку.
		for i := 0; i < 10; i++ {
			assert.False(t, l.Allow("1.2.3.4", base.Add(59*time.Second)))
		}
		assert.True(t, l.Allow("1.2.3.4", base.Add(61*time.Second)))
	})

	t.Run("keys do not affect each other", func(t *testing.T) {
		l := NewLimiter(60*time.Second, 1)
		assert.True(t, l.Allow("1.2.3.4", base))
		assert.False(t, l.Allow("1.2.3.4", base))
		assert.True(t, l.Allow("5.6.7.8", base))
	})

	t.Run("unknown key starts with empty history", func(t *testing.T) {
		l := NewLimiter(60*time.Second, 5)
		assert.True(t, l.Allow("никогда не виденный ключ", base))
		assert.Equal(t, 1, l.TrackedKeys())
	})
}

func TestLimiter_AllowConcurrent(t *testing.T) {
	const workers = 50

	l := NewLimiter(60*time.Second, 5)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var admitted int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared", base) {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, admitted, "exactly maxRequests must be admitted")
}
