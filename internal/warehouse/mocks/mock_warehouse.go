package mocks

import (
	"context"

	"meterportal/internal/warehouse"

	"github.com/stretchr/testify/mock"
)

type MockWarehouse struct {
	mock.Mock
}

func (m *MockWarehouse) Query(ctx context.Context, project string, q warehouse.Query) ([]warehouse.Row, error) {
	args := m.Called(ctx, project, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]warehouse.Row), args.Error(1)
}
