package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockImageStorage is a mock type for the ImageStorage type
type MockImageStorage struct {
	mock.Mock
}

type MockImageStorage_Expecter struct {
	mock *mock.Mock
}

func (_m *MockImageStorage) EXPECT() *MockImageStorage_Expecter {
	return &MockImageStorage_Expecter{mock: &_m.Mock}
}

// Upload provides a mock function with given fields: ctx, key, body, contentType
func (_m *MockImageStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	ret := _m.Called(ctx, key, body, contentType)

	r0 := ret.Error(0)

	return r0
}

// MockImageStorage_Upload_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Upload'
type MockImageStorage_Upload_Call struct {
	*mock.Call
}

// Upload is a helper method to define mock.On call
func (_e *MockImageStorage_Expecter) Upload(ctx interface{}, key interface{}, body interface{}, contentType interface{}) *MockImageStorage_Upload_Call {
	return &MockImageStorage_Upload_Call{Call: _e.mock.On("Upload", ctx, key, body, contentType)}
}

func (_c *MockImageStorage_Upload_Call) Run(run func(ctx context.Context, key string, body io.Reader, contentType string)) *MockImageStorage_Upload_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(io.Reader), args[3].(string))
	})
	return _c
}

func (_c *MockImageStorage_Upload_Call) Return(_a0 error) *MockImageStorage_Upload_Call {
	_c.Call.Return(_a0)
	return _c
}

// Delete provides a mock function with given fields: ctx, key
func (_m *MockImageStorage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)

	r0 := ret.Error(0)

	return r0
}

// MockImageStorage_Delete_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Delete'
type MockImageStorage_Delete_Call struct {
	*mock.Call
}

// Delete is a helper method to define mock.On call
func (_e *MockImageStorage_Expecter) Delete(ctx interface{}, key interface{}) *MockImageStorage_Delete_Call {
	return &MockImageStorage_Delete_Call{Call: _e.mock.On("Delete", ctx, key)}
}

func (_c *MockImageStorage_Delete_Call) Run(run func(ctx context.Context, key string)) *MockImageStorage_Delete_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockImageStorage_Delete_Call) Return(_a0 error) *MockImageStorage_Delete_Call {
	_c.Call.Return(_a0)
	return _c
}

// URL provides a mock function with given fields: ctx, key, ttl
func (_m *MockImageStorage) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	ret := _m.Called(ctx, key, ttl)

	r0 := ret.String(0)
	r1 := ret.Error(1)

	return r0, r1
}

// MockImageStorage_URL_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'URL'
type MockImageStorage_URL_Call struct {
	*mock.Call
}

// URL is a helper method to define mock.On call
func (_e *MockImageStorage_Expecter) URL(ctx interface{}, key interface{}, ttl interface{}) *MockImageStorage_URL_Call {
	return &MockImageStorage_URL_Call{Call: _e.mock.On("URL", ctx, key, ttl)}
}

func (_c *MockImageStorage_URL_Call) Run(run func(ctx context.Context, key string, ttl time.Duration)) *MockImageStorage_URL_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(time.Duration))
	})
	return _c
}

func (_c *MockImageStorage_URL_Call) Return(_a0 string, _a1 error) *MockImageStorage_URL_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Close provides a mock function with given fields:
func (_m *MockImageStorage) Close() error {
	ret := _m.Called()

	r0 := ret.Error(0)

	return r0
}

// MockImageStorage_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockImageStorage_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockImageStorage_Expecter) Close() *MockImageStorage_Close_Call {
	return &MockImageStorage_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockImageStorage_Close_Call) Run(run func()) *MockImageStorage_Close_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run()
	})
	return _c
}

func (_c *MockImageStorage_Close_Call) Return(_a0 error) *MockImageStorage_Close_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockImageStorage creates a new instance of MockImageStorage. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockImageStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageStorage {
	m := &MockImageStorage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
