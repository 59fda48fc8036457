package usecase

import (
	"context"

	"burgerhub/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockOrderNotificationUsecase is a mock type for the OrderNotificationUsecase type
type MockOrderNotificationUsecase struct {
	mock.Mock
}

type MockOrderNotificationUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOrderNotificationUsecase) EXPECT() *MockOrderNotificationUsecase_Expecter {
	return &MockOrderNotificationUsecase_Expecter{mock: &_m.Mock}
}

// HandleOrderEvent provides a mock function with given fields: ctx, event
func (_m *MockOrderNotificationUsecase) HandleOrderEvent(ctx context.Context, event *service.OrderEventMessage) error {
	ret := _m.Called(ctx, event)

	r0 := ret.Error(0)

	return r0
}

// MockOrderNotificationUsecase_HandleOrderEvent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'HandleOrderEvent'
type MockOrderNotificationUsecase_HandleOrderEvent_Call struct {
	*mock.Call
}

// HandleOrderEvent is a helper method to define mock.On call
func (_e *MockOrderNotificationUsecase_Expecter) HandleOrderEvent(ctx interface{}, event interface{}) *MockOrderNotificationUsecase_HandleOrderEvent_Call {
	return &MockOrderNotificationUsecase_HandleOrderEvent_Call{Call: _e.mock.On("HandleOrderEvent", ctx, event)}
}

func (_c *MockOrderNotificationUsecase_HandleOrderEvent_Call) Run(run func(ctx context.Context, event *service.OrderEventMessage)) *MockOrderNotificationUsecase_HandleOrderEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*service.OrderEventMessage))
	})
	return _c
}

func (_c *MockOrderNotificationUsecase_HandleOrderEvent_Call) Return(_a0 error) *MockOrderNotificationUsecase_HandleOrderEvent_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockOrderNotificationUsecase creates a new instance of MockOrderNotificationUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockOrderNotificationUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderNotificationUsecase {
	m := &MockOrderNotificationUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
