package mocks

import (
	"context"

	"jarvis/internal/models"
)

// CacheMock reports a miss and accepts every write unless a func is set.
type CacheMock struct {
	GetFunc    func(ctx context.Context, key string) (models.Fields, bool, error)
	SetFunc    func(ctx context.Context, key string, fields models.Fields) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *CacheMock) Name() string {
	return "mock"
}

func (m *CacheMock) Get(ctx context.Context, key string) (models.Fields, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, false, nil
}

func (m *CacheMock) Set(ctx context.Context, key string, fields models.Fields) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, fields)
	}
	return nil
}

func (m *CacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *CacheMock) Close() error {
	return nil
}
