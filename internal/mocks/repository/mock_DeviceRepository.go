package repository

import (
	"context"

	"burgerhub/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDeviceRepository is a mock type for the DeviceRepository type
type MockDeviceRepository struct {
	mock.Mock
}

type MockDeviceRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockDeviceRepository) EXPECT() *MockDeviceRepository_Expecter {
	return &MockDeviceRepository_Expecter{mock: &_m.Mock}
}

// CreateDevice provides a mock function with given fields: ctx, device
func (_m *MockDeviceRepository) CreateDevice(ctx context.Context, device *entity.CustomerDevice) error {
	ret := _m.Called(ctx, device)

	r0 := ret.Error(0)

	return r0
}

// MockDeviceRepository_CreateDevice_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'CreateDevice'
type MockDeviceRepository_CreateDevice_Call struct {
	*mock.Call
}

// CreateDevice is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) CreateDevice(ctx interface{}, device interface{}) *MockDeviceRepository_CreateDevice_Call {
	return &MockDeviceRepository_CreateDevice_Call{Call: _e.mock.On("CreateDevice", ctx, device)}
}

func (_c *MockDeviceRepository_CreateDevice_Call) Run(run func(ctx context.Context, device *entity.CustomerDevice)) *MockDeviceRepository_CreateDevice_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.CustomerDevice))
	})
	return _c
}

func (_c *MockDeviceRepository_CreateDevice_Call) Return(_a0 error) *MockDeviceRepository_CreateDevice_Call {
	_c.Call.Return(_a0)
	return _c
}

// FindDeviceByID provides a mock function with given fields: ctx, id
func (_m *MockDeviceRepository) FindDeviceByID(ctx context.Context, id uuid.UUID) (*entity.CustomerDevice, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.CustomerDevice
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.CustomerDevice)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockDeviceRepository_FindDeviceByID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindDeviceByID'
type MockDeviceRepository_FindDeviceByID_Call struct {
	*mock.Call
}

// FindDeviceByID is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) FindDeviceByID(ctx interface{}, id interface{}) *MockDeviceRepository_FindDeviceByID_Call {
	return &MockDeviceRepository_FindDeviceByID_Call{Call: _e.mock.On("FindDeviceByID", ctx, id)}
}

func (_c *MockDeviceRepository_FindDeviceByID_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockDeviceRepository_FindDeviceByID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockDeviceRepository_FindDeviceByID_Call) Return(_a0 *entity.CustomerDevice, _a1 error) *MockDeviceRepository_FindDeviceByID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// FindDeviceByCustomerAndDeviceID provides a mock function with given fields: ctx, customerID, deviceID
func (_m *MockDeviceRepository) FindDeviceByCustomerAndDeviceID(ctx context.Context, customerID uuid.UUID, deviceID string) (*entity.CustomerDevice, error) {
	ret := _m.Called(ctx, customerID, deviceID)

	var r0 *entity.CustomerDevice
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.CustomerDevice)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindDeviceByCustomerAndDeviceID'
type MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call struct {
	*mock.Call
}

// FindDeviceByCustomerAndDeviceID is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) FindDeviceByCustomerAndDeviceID(ctx interface{}, customerID interface{}, deviceID interface{}) *MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call {
	return &MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call{Call: _e.mock.On("FindDeviceByCustomerAndDeviceID", ctx, customerID, deviceID)}
}

func (_c *MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call) Run(run func(ctx context.Context, customerID uuid.UUID, deviceID string)) *MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(string))
	})
	return _c
}

func (_c *MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call) Return(_a0 *entity.CustomerDevice, _a1 error) *MockDeviceRepository_FindDeviceByCustomerAndDeviceID_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// FindDevicesByCustomer provides a mock function with given fields: ctx, customerID
func (_m *MockDeviceRepository) FindDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*entity.CustomerDevice
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.CustomerDevice)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockDeviceRepository_FindDevicesByCustomer_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindDevicesByCustomer'
type MockDeviceRepository_FindDevicesByCustomer_Call struct {
	*mock.Call
}

// FindDevicesByCustomer is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) FindDevicesByCustomer(ctx interface{}, customerID interface{}) *MockDeviceRepository_FindDevicesByCustomer_Call {
	return &MockDeviceRepository_FindDevicesByCustomer_Call{Call: _e.mock.On("FindDevicesByCustomer", ctx, customerID)}
}

func (_c *MockDeviceRepository_FindDevicesByCustomer_Call) Run(run func(ctx context.Context, customerID uuid.UUID)) *MockDeviceRepository_FindDevicesByCustomer_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockDeviceRepository_FindDevicesByCustomer_Call) Return(_a0 []*entity.CustomerDevice, _a1 error) *MockDeviceRepository_FindDevicesByCustomer_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// FindActiveDevicesByCustomer provides a mock function with given fields: ctx, customerID
func (_m *MockDeviceRepository) FindActiveDevicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.CustomerDevice, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*entity.CustomerDevice
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.CustomerDevice)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockDeviceRepository_FindActiveDevicesByCustomer_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'FindActiveDevicesByCustomer'
type MockDeviceRepository_FindActiveDevicesByCustomer_Call struct {
	*mock.Call
}

// FindActiveDevicesByCustomer is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) FindActiveDevicesByCustomer(ctx interface{}, customerID interface{}) *MockDeviceRepository_FindActiveDevicesByCustomer_Call {
	return &MockDeviceRepository_FindActiveDevicesByCustomer_Call{Call: _e.mock.On("FindActiveDevicesByCustomer", ctx, customerID)}
}

func (_c *MockDeviceRepository_FindActiveDevicesByCustomer_Call) Run(run func(ctx context.Context, customerID uuid.UUID)) *MockDeviceRepository_FindActiveDevicesByCustomer_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockDeviceRepository_FindActiveDevicesByCustomer_Call) Return(_a0 []*entity.CustomerDevice, _a1 error) *MockDeviceRepository_FindActiveDevicesByCustomer_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// UpdateDevice provides a mock function with given fields: ctx, device
func (_m *MockDeviceRepository) UpdateDevice(ctx context.Context, device *entity.CustomerDevice) error {
	ret := _m.Called(ctx, device)

	r0 := ret.Error(0)

	return r0
}

// MockDeviceRepository_UpdateDevice_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateDevice'
type MockDeviceRepository_UpdateDevice_Call struct {
	*mock.Call
}

// UpdateDevice is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) UpdateDevice(ctx interface{}, device interface{}) *MockDeviceRepository_UpdateDevice_Call {
	return &MockDeviceRepository_UpdateDevice_Call{Call: _e.mock.On("UpdateDevice", ctx, device)}
}

func (_c *MockDeviceRepository_UpdateDevice_Call) Run(run func(ctx context.Context, device *entity.CustomerDevice)) *MockDeviceRepository_UpdateDevice_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.CustomerDevice))
	})
	return _c
}

func (_c *MockDeviceRepository_UpdateDevice_Call) Return(_a0 error) *MockDeviceRepository_UpdateDevice_Call {
	_c.Call.Return(_a0)
	return _c
}

// DeactivateByTokens provides a mock function with given fields: ctx, tokens
func (_m *MockDeviceRepository) DeactivateByTokens(ctx context.Context, tokens []string) error {
	ret := _m.Called(ctx, tokens)

	r0 := ret.Error(0)

	return r0
}

// MockDeviceRepository_DeactivateByTokens_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeactivateByTokens'
type MockDeviceRepository_DeactivateByTokens_Call struct {
	*mock.Call
}

// DeactivateByTokens is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) DeactivateByTokens(ctx interface{}, tokens interface{}) *MockDeviceRepository_DeactivateByTokens_Call {
	return &MockDeviceRepository_DeactivateByTokens_Call{Call: _e.mock.On("DeactivateByTokens", ctx, tokens)}
}

func (_c *MockDeviceRepository_DeactivateByTokens_Call) Run(run func(ctx context.Context, tokens []string)) *MockDeviceRepository_DeactivateByTokens_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].([]string))
	})
	return _c
}

func (_c *MockDeviceRepository_DeactivateByTokens_Call) Return(_a0 error) *MockDeviceRepository_DeactivateByTokens_Call {
	_c.Call.Return(_a0)
	return _c
}

// DeleteDevice provides a mock function with given fields: ctx, id
func (_m *MockDeviceRepository) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)

	r0 := ret.Error(0)

	return r0
}

// MockDeviceRepository_DeleteDevice_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'DeleteDevice'
type MockDeviceRepository_DeleteDevice_Call struct {
	*mock.Call
}

// DeleteDevice is a helper method to define mock.On call
func (_e *MockDeviceRepository_Expecter) DeleteDevice(ctx interface{}, id interface{}) *MockDeviceRepository_DeleteDevice_Call {
	return &MockDeviceRepository_DeleteDevice_Call{Call: _e.mock.On("DeleteDevice", ctx, id)}
}

func (_c *MockDeviceRepository_DeleteDevice_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockDeviceRepository_DeleteDevice_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockDeviceRepository_DeleteDevice_Call) Return(_a0 error) *MockDeviceRepository_DeleteDevice_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockDeviceRepository creates a new instance of MockDeviceRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDeviceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeviceRepository {
	m := &MockDeviceRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
