package commands_test

import (
	"errors"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoredOrder(t *testing.T, id int64, status order.Status) *order.Order {
	t.Helper()
	created := fixedNow.Add(-time.Hour)
	o, err := order.RestoreOrder(id, "Widget", "Alice", kernel.MustNewMoney("12.34", ""), status, created, created)
	require.NoError(t, err)
	return o
}

func newUpdateCommand(t *testing.T, id int64, code int) commands.UpdateOrderStatusCommand {
	t.Helper()
	cmd, err := commands.NewUpdateOrderStatusCommand(id, code)
	require.NoError(t, err)
	return cmd
}

type updateFixture struct {
	repo      *MockOrderRepository
	uow       *MockOrderUoW
	factory   *MockOrderUoWFactory
	publisher *MockEventPublisher
	handler   commands.UpdateOrderStatusCommandHandler
}

func newUpdateFixture() updateFixture {
	f := updateFixture{
		repo:      new(MockOrderRepository),
		uow:       new(MockOrderUoW),
		factory:   new(MockOrderUoWFactory),
		publisher: new(MockEventPublisher),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.handler = commands.NewUpdateOrderStatusCommandHandler(f.factory, f.publisher, fixedClock, discardLogger())
	return f
}

func (f updateFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	existing := restoredOrder(t, 5, order.Created)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, int64(5)).Return(existing, nil).Once(),
		f.repo.On("Update", ctx, existing).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(e order.Event) bool {
			changed, ok := e.(order.OrderStatusChanged)
			return ok && changed.OldStatus == 1 && changed.NewStatus == 2 && changed.Order().ID == 5
		})).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 5, order.Completed.Code()))

	require.NoError(t, err)
	assert.Equal(t, commands.UpdateSucceeded, result)
	assert.Equal(t, order.Completed, existing.Status())
	assert.Equal(t, fixedNow, existing.UpdateTime())
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, int64(9)).Return(nil, errs.NewObjectNotFoundError("id", int64(9))).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 9, order.Completed.Code()))

	require.NoError(t, err)
	assert.Equal(t, commands.UpdateNotFound, result)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_NotAllowed(t *testing.T) {
	tests := []struct {
		name    string
		current order.Status
		code    int
	}{
		{name: "completed to cancelled", current: order.Completed, code: 3},
		{name: "cancelled to completed", current: order.Cancelled, code: 2},
		{name: "created to created", current: order.Created, code: 1},
		{name: "created to unknown code", current: order.Created, code: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newUpdateFixture()
			existing := restoredOrder(t, 3, tt.current)
			before := existing.Snapshot()

			mock.InOrder(
				f.uow.On("Begin", ctx).Return(nil).Once(),
				f.uow.On("OrderRepository").Return(f.repo).Once(),
				f.repo.On("GetForUpdate", ctx, int64(3)).Return(existing, nil).Once(),
				f.uow.On("Rollback", ctx).Return(nil).Once(),
			)

			result, err := f.handler.Handle(ctx, newUpdateCommand(t, 3, tt.code))

			require.NoError(t, err)
			assert.Equal(t, commands.UpdateNotAllowed, result)
			assert.Equal(t, before, existing.Snapshot())
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestUpdateOrderStatusCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 1, 2))

	require.Error(t, err)
	assert.Equal(t, commands.UpdateFailed, result)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_LoadError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, int64(1)).Return(nil, errors.New("connection reset")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 1, 2))

	require.Error(t, err)
	assert.Equal(t, commands.UpdateFailed, result)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	existing := restoredOrder(t, 2, order.Created)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, int64(2)).Return(existing, nil).Once(),
		f.repo.On("Update", ctx, existing).Return(errors.New("update error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 2, 3))

	require.Error(t, err)
	assert.Equal(t, commands.UpdateFailed, result)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	existing := restoredOrder(t, 2, order.Created)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, int64(2)).Return(existing, nil).Once(),
		f.repo.On("Update", ctx, existing).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	result, err := f.handler.Handle(ctx, newUpdateCommand(t, 2, 3))

	require.Error(t, err)
	assert.Equal(t, commands.UpdateFailed, result)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}
