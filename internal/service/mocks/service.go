package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/kmullins/linkgen/internal/domain"
)

// LinkService is a mock implementation of the service's LinkService interface
type LinkService struct {
	mock.Mock
}

func (m *LinkService) CreateLink(ctx context.Context, targetURL string) (*domain.LinkEntry, error) {
	args := m.Called(ctx, targetURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkEntry), args.Error(1)
}

func (m *LinkService) CreateLinkQR(ctx context.Context, targetURL string) (*domain.LinkEntry, []byte, error) {
	args := m.Called(ctx, targetURL)
	var entry *domain.LinkEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LinkEntry)
	}
	var png []byte
	if args.Get(1) != nil {
		png = args.Get(1).([]byte)
	}
	return entry, png, args.Error(2)
}

func (m *LinkService) ResolveLink(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *LinkService) GetLinkInfo(ctx context.Context, key string) (*domain.LinkEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkEntry), args.Error(1)
}

func (m *LinkService) DeleteLink(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *LinkService) GetAllLinks(ctx context.Context) ([]*domain.LinkEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LinkEntry), args.Error(1)
}

func (m *LinkService) RenderKeyQR(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *LinkService) ShortURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *LinkService) InitializeCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *LinkService) StartCacheSync(ctx context.Context, interval time.Duration) error {
	args := m.Called(ctx, interval)
	return args.Error(0)
}

func (m *LinkService) StopCacheSync() error {
	args := m.Called()
	return args.Error(0)
}

func (m *LinkService) Close() error {
	args := m.Called()
	return args.Error(0)
}
