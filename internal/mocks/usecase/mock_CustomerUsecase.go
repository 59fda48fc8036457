package usecase

import (
	"context"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCustomerUsecase is a mock type for the CustomerUsecase type
type MockCustomerUsecase struct {
	mock.Mock
}

type MockCustomerUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCustomerUsecase) EXPECT() *MockCustomerUsecase_Expecter {
	return &MockCustomerUsecase_Expecter{mock: &_m.Mock}
}

// Register provides a mock function with given fields: ctx, input
func (_m *MockCustomerUsecase) Register(ctx context.Context, input usecase.RegisterCustomerInput) (*entity.Customer, error) {
	ret := _m.Called(ctx, input)

	var r0 *entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_Register_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Register'
type MockCustomerUsecase_Register_Call struct {
	*mock.Call
}

// Register is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) Register(ctx interface{}, input interface{}) *MockCustomerUsecase_Register_Call {
	return &MockCustomerUsecase_Register_Call{Call: _e.mock.On("Register", ctx, input)}
}

func (_c *MockCustomerUsecase_Register_Call) Run(run func(ctx context.Context, input usecase.RegisterCustomerInput)) *MockCustomerUsecase_Register_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(usecase.RegisterCustomerInput))
	})
	return _c
}

func (_c *MockCustomerUsecase_Register_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerUsecase_Register_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Login provides a mock function with given fields: ctx, email, password
func (_m *MockCustomerUsecase) Login(ctx context.Context, email string, password string) (*usecase.LoginOutput, error) {
	ret := _m.Called(ctx, email, password)

	var r0 *usecase.LoginOutput
	if v := ret.Get(0); v != nil {
		r0 = v.(*usecase.LoginOutput)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_Login_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Login'
type MockCustomerUsecase_Login_Call struct {
	*mock.Call
}

// Login is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) Login(ctx interface{}, email interface{}, password interface{}) *MockCustomerUsecase_Login_Call {
	return &MockCustomerUsecase_Login_Call{Call: _e.mock.On("Login", ctx, email, password)}
}

func (_c *MockCustomerUsecase_Login_Call) Run(run func(ctx context.Context, email string, password string)) *MockCustomerUsecase_Login_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})
	return _c
}

func (_c *MockCustomerUsecase_Login_Call) Return(_a0 *usecase.LoginOutput, _a1 error) *MockCustomerUsecase_Login_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// Authenticate provides a mock function with given fields: ctx, token
func (_m *MockCustomerUsecase) Authenticate(ctx context.Context, token string) (*entity.Customer, error) {
	ret := _m.Called(ctx, token)

	var r0 *entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_Authenticate_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Authenticate'
type MockCustomerUsecase_Authenticate_Call struct {
	*mock.Call
}

// Authenticate is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) Authenticate(ctx interface{}, token interface{}) *MockCustomerUsecase_Authenticate_Call {
	return &MockCustomerUsecase_Authenticate_Call{Call: _e.mock.On("Authenticate", ctx, token)}
}

func (_c *MockCustomerUsecase_Authenticate_Call) Run(run func(ctx context.Context, token string)) *MockCustomerUsecase_Authenticate_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

func (_c *MockCustomerUsecase_Authenticate_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerUsecase_Authenticate_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// GetProfile provides a mock function with given fields: ctx, id
func (_m *MockCustomerUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_GetProfile_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'GetProfile'
type MockCustomerUsecase_GetProfile_Call struct {
	*mock.Call
}

// GetProfile is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) GetProfile(ctx interface{}, id interface{}) *MockCustomerUsecase_GetProfile_Call {
	return &MockCustomerUsecase_GetProfile_Call{Call: _e.mock.On("GetProfile", ctx, id)}
}

func (_c *MockCustomerUsecase_GetProfile_Call) Run(run func(ctx context.Context, id uuid.UUID)) *MockCustomerUsecase_GetProfile_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID))
	})
	return _c
}

func (_c *MockCustomerUsecase_GetProfile_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerUsecase_GetProfile_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// UpdateProfile provides a mock function with given fields: ctx, id, input
func (_m *MockCustomerUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input usecase.UpdateCustomerInput) (*entity.Customer, error) {
	ret := _m.Called(ctx, id, input)

	var r0 *entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_UpdateProfile_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'UpdateProfile'
type MockCustomerUsecase_UpdateProfile_Call struct {
	*mock.Call
}

// UpdateProfile is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) UpdateProfile(ctx interface{}, id interface{}, input interface{}) *MockCustomerUsecase_UpdateProfile_Call {
	return &MockCustomerUsecase_UpdateProfile_Call{Call: _e.mock.On("UpdateProfile", ctx, id, input)}
}

func (_c *MockCustomerUsecase_UpdateProfile_Call) Run(run func(ctx context.Context, id uuid.UUID, input usecase.UpdateCustomerInput)) *MockCustomerUsecase_UpdateProfile_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(usecase.UpdateCustomerInput))
	})
	return _c
}

func (_c *MockCustomerUsecase_UpdateProfile_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerUsecase_UpdateProfile_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// SetActive provides a mock function with given fields: ctx, id, active
func (_m *MockCustomerUsecase) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Customer, error) {
	ret := _m.Called(ctx, id, active)

	var r0 *entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.(*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_SetActive_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'SetActive'
type MockCustomerUsecase_SetActive_Call struct {
	*mock.Call
}

// SetActive is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) SetActive(ctx interface{}, id interface{}, active interface{}) *MockCustomerUsecase_SetActive_Call {
	return &MockCustomerUsecase_SetActive_Call{Call: _e.mock.On("SetActive", ctx, id, active)}
}

func (_c *MockCustomerUsecase_SetActive_Call) Run(run func(ctx context.Context, id uuid.UUID, active bool)) *MockCustomerUsecase_SetActive_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(uuid.UUID), args[2].(bool))
	})
	return _c
}

func (_c *MockCustomerUsecase_SetActive_Call) Return(_a0 *entity.Customer, _a1 error) *MockCustomerUsecase_SetActive_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// ListCustomers provides a mock function with given fields: ctx
func (_m *MockCustomerUsecase) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []*entity.Customer
	if v := ret.Get(0); v != nil {
		r0 = v.([]*entity.Customer)
	}
	r1 := ret.Error(1)

	return r0, r1
}

// MockCustomerUsecase_ListCustomers_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ListCustomers'
type MockCustomerUsecase_ListCustomers_Call struct {
	*mock.Call
}

// ListCustomers is a helper method to define mock.On call
func (_e *MockCustomerUsecase_Expecter) ListCustomers(ctx interface{}) *MockCustomerUsecase_ListCustomers_Call {
	return &MockCustomerUsecase_ListCustomers_Call{Call: _e.mock.On("ListCustomers", ctx)}
}

func (_c *MockCustomerUsecase_ListCustomers_Call) Run(run func(ctx context.Context)) *MockCustomerUsecase_ListCustomers_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context))
	})
	return _c
}

func (_c *MockCustomerUsecase_ListCustomers_Call) Return(_a0 []*entity.Customer, _a1 error) *MockCustomerUsecase_ListCustomers_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// NewMockCustomerUsecase creates a new instance of MockCustomerUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCustomerUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCustomerUsecase {
	m := &MockCustomerUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
