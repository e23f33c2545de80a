package mocks

import (
	"context"

	"jarvis/internal/models"
)

type ContextRepositoryMock struct {
	GetFunc    func(ctx context.Context, key string) (models.Fields, bool, error)
	RecordFunc func(ctx context.Context, key string) (*models.ContextRecord, error)
	SetFunc    func(ctx context.Context, key string, data models.Payload) error
	DeleteFunc func(ctx context.Context, key string) error
}

func (m *ContextRepositoryMock) Get(ctx context.Context, key string) (models.Fields, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, false, nil
}

func (m *ContextRepositoryMock) Record(ctx context.Context, key string) (*models.ContextRecord, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, key)
	}
	return nil, nil
}

func (m *ContextRepositoryMock) Set(ctx context.Context, key string, data models.Payload) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, data)
	}
	return nil
}

func (m *ContextRepositoryMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}
