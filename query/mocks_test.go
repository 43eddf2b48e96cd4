package query

import (
	"context"

	"github.com/jonascoder/surf-shop/models"
	"github.com/stretchr/testify/mock"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Forward(ctx context.Context, place string) ([2]float64, error) {
	args := m.Called(ctx, place)
	return args.Get(0).([2]float64), args.Error(1)
}

type MockPaginator struct {
	mock.Mock
}

func (m *MockPaginator) Paginate(ctx context.Context, f Filter, p Pagination) (models.PostPage, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(models.PostPage), args.Error(1)
}
