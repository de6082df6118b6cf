package mocks

import (
	"context"
	"iter"

	"github.com/0x0FACED/northwind/internal/customer"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockStore) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) All(ctx context.Context) iter.Seq2[customer.Customer, error] {
	return m.Called(ctx).Get(0).(iter.Seq2[customer.Customer, error])
}

func (m *MockStore) Page(ctx context.Context, offset, limit int) ([]customer.Customer, error) {
	args := m.Called(ctx, offset, limit)
	if c := args.Get(0); c != nil {
		return c.([]customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) DeleteSingle(ctx context.Context, id string) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*customer.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Replace(ctx context.Context, c customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}
