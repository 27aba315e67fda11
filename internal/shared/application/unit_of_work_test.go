package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type txKey struct{}

func TestWithUnitOfWork(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, txKey{}, "tx")

	t.Run("commits after success", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)

		var got context.Context
		err := WithUnitOfWork(ctx, uow, func(inner context.Context) error {
			got = inner
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, txCtx, got)
		uow.AssertExpectations(t)
	})

	t.Run("rolls back and keeps the work error", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		workErr := errors.New("reset failed")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(errors.New("rollback failed"))

		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return workErr })

		assert.Equal(t, workErr, err)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("skips work when begin fails", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		beginErr := errors.New("database locked")
		uow.On("Begin", ctx).Return(ctx, beginErr)

		executed := false
		err := WithUnitOfWork(ctx, uow, func(context.Context) error {
			executed = true
			return nil
		})

		assert.Equal(t, beginErr, err)
		assert.False(t, executed)
	})

	t.Run("returns commit error", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		commitErr := errors.New("commit failed")
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(commitErr)

		err := WithUnitOfWork(ctx, uow, func(context.Context) error { return nil })

		assert.Equal(t, commitErr, err)
	})
}

func TestNoopUnitOfWork(t *testing.T) {
	ctx := context.Background()
	calls := 0

	err := WithUnitOfWork(ctx, NoopUnitOfWork{}, func(inner context.Context) error {
		calls++
		assert.Equal(t, ctx, inner)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
