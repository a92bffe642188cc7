package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/linkstats/internal/models"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Shorten(ctx context.Context, rawURL, clientIP string) (string, error) {
	args := l.Called(ctx, rawURL, clientIP)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (l *LinkMock) Redirect(ctx context.Context, shortCode, clientIP, userAgent string) (string, error) {
	args := l.Called(ctx, shortCode, clientIP, userAgent)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (l *LinkMock) Stats(ctx context.Context, shortCode string) (*models.LinkStats, error) {
	args := l.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.LinkStats), args.Error(1) //nolint:wrapcheck,errcheck
}

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(ctx context.Context) error {
	args := p.Called(ctx)
	return args.Error(0) //nolint:wrapcheck
}
