package service

import (
	"github.com/stretchr/testify/mock"
)

// MockOrderMetrics is a mock type for the OrderMetrics type
type MockOrderMetrics struct {
	mock.Mock
}

type MockOrderMetrics_Expecter struct {
	mock *mock.Mock
}

func (_m *MockOrderMetrics) EXPECT() *MockOrderMetrics_Expecter {
	return &MockOrderMetrics_Expecter{mock: &_m.Mock}
}

// OrderCreated provides a mock function with given fields:
func (_m *MockOrderMetrics) OrderCreated() {
	_m.Called()
}

// MockOrderMetrics_OrderCreated_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'OrderCreated'
type MockOrderMetrics_OrderCreated_Call struct {
	*mock.Call
}

// OrderCreated is a helper method to define mock.On call
func (_e *MockOrderMetrics_Expecter) OrderCreated() *MockOrderMetrics_OrderCreated_Call {
	return &MockOrderMetrics_OrderCreated_Call{Call: _e.mock.On("OrderCreated")}
}

func (_c *MockOrderMetrics_OrderCreated_Call) Run(run func()) *MockOrderMetrics_OrderCreated_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockOrderMetrics_OrderCreated_Call) Return() *MockOrderMetrics_OrderCreated_Call {
	_c.Call.Return()
	return _c
}

// StatusChanged provides a mock function with given fields: status
func (_m *MockOrderMetrics) StatusChanged(status string) {
	_m.Called(status)
}

// MockOrderMetrics_StatusChanged_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'StatusChanged'
type MockOrderMetrics_StatusChanged_Call struct {
	*mock.Call
}

// StatusChanged is a helper method to define mock.On call
func (_e *MockOrderMetrics_Expecter) StatusChanged(status interface{}) *MockOrderMetrics_StatusChanged_Call {
	return &MockOrderMetrics_StatusChanged_Call{Call: _e.mock.On("StatusChanged", status)}
}

func (_c *MockOrderMetrics_StatusChanged_Call) Run(run func(status string)) *MockOrderMetrics_StatusChanged_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(string))
	})
	return _c
}

func (_c *MockOrderMetrics_StatusChanged_Call) Return() *MockOrderMetrics_StatusChanged_Call {
	_c.Call.Return()
	return _c
}

// NewMockOrderMetrics creates a new instance of MockOrderMetrics. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockOrderMetrics(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrderMetrics {
	m := &MockOrderMetrics{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
