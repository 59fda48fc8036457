package service

import (
	"context"

	"burgerhub/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// PublishOrderEvent provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEventMessage) error {
	ret := _m.Called(ctx, event)

	r0 := ret.Error(0)

	return r0
}

// MockEventPublisher_PublishOrderEvent_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishOrderEvent'
type MockEventPublisher_PublishOrderEvent_Call struct {
	*mock.Call
}

// PublishOrderEvent is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) PublishOrderEvent(ctx interface{}, event interface{}) *MockEventPublisher_PublishOrderEvent_Call {
	return &MockEventPublisher_PublishOrderEvent_Call{Call: _e.mock.On("PublishOrderEvent", ctx, event)}
}

func (_c *MockEventPublisher_PublishOrderEvent_Call) Run(run func(ctx context.Context, event *service.OrderEventMessage)) *MockEventPublisher_PublishOrderEvent_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*service.OrderEventMessage))
	})
	return _c
}

func (_c *MockEventPublisher_PublishOrderEvent_Call) Return(_a0 error) *MockEventPublisher_PublishOrderEvent_Call {
	_c.Call.Return(_a0)
	return _c
}

// Close provides a mock function with given fields:
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	r0 := ret.Error(0)

	return r0
}

// MockEventPublisher_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockEventPublisher_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) Close() *MockEventPublisher_Close_Call {
	return &MockEventPublisher_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockEventPublisher_Close_Call) Run(run func()) *MockEventPublisher_Close_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockEventPublisher_Close_Call) Return(_a0 error) *MockEventPublisher_Close_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
