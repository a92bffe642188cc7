package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/linkstats/internal/repositories"
)

func newTestLinkRepo() *LinkRepo {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewLinkRepo(logger)
}

func TestLinkRepo_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := newTestLinkRepo()

	first, err := repo.GetOrCreate(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, "1", first.ShortCode)

	// Повторное сокращение того же URL не трогает счетчик.
	again, err := repo.GetOrCreate(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ShortCode, again.ShortCode)
	assert.Equal(t, first.ID, again.ID)

	second, err := repo.GetOrCreate(ctx, "https://example.com/other")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.ID)
	assert.Equal(t, "2", second.ShortCode)
}

func TestLinkRepo_GetOrCreate_Uniqueness(t *testing.T) {
	const n = 500

	ctx := context.Background()
	repo := newTestLinkRepo()

	codes := make(map[string]string, n)
	for i := 0; i < n; i++ {
		rawURL := fmt.Sprintf("%s/%d", gofakeit.URL(), i)
		link, err := repo.GetOrCreate(ctx, rawURL)
		require.NoError(t, err)

		prev, ok := codes[link.ShortCode]
		require.False(t, ok, "code %s already issued for %s", link.ShortCode, prev)
		codes[link.ShortCode] = rawURL
	}
	assert.Len(t, codes, n)
}

func TestLinkRepo_GetOrCreate_Concurrent(t *testing.T) {
	const workers = 64

	ctx := context.Background()
	repo := newTestLinkRepo()

	// Конкурентные вызовы для одного нового URL обязаны вернуть один код.
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			link, err := repo.GetOrCreate(ctx, "https://example.com/race")
			assert.NoError(t, err)
			results[i] = link.ShortCode
		}(i)
	}
	wg.Wait()

	for _, code := range results {
		assert.Equal(t, results[0], code)
	}

	// И счетчик при этом увеличился ровно один раз.
	next, err := repo.GetOrCreate(ctx, "https://example.com/next")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.ID)
}

func TestLinkRepo_GetByShortCode(t *testing.T) {
	ctx := context.Background()
	repo := newTestLinkRepo()

	created, err := repo.GetOrCreate(ctx, "https://example.com")
	require.NoError(t, err)

	found, err := repo.GetByShortCode(ctx, created.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", found.URL)

	_, err = repo.GetByShortCode(ctx, "doesnotexist")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
