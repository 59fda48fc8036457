package errors

import (
	"net/http"

	"burgerhub/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// Kind groups business errors by how the caller got it wrong.
type Kind string

const (
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindInvalidState    Kind = "INVALID_STATE"
	KindNotFound        Kind = "NOT_FOUND"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindInternal        Kind = "INTERNAL"
)

// HTTPCode returns the status code every error of the kind is reported with.
func (k Kind) HTTPCode() int {
	switch k {
	case KindInvalidArgument, KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors with the same business code. A kind sentinel such as
// ErrInvalidState matches every error of that kind.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	if t.errorCode == string(t.kind) {
		return e.kind == t.kind
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error kind
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.kind.HTTPCode()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Kind sentinels
var (
	ErrInvalidArgument = NewBaseError(KindInvalidArgument, string(KindInvalidArgument), "Datos de entrada inválidos")
	ErrInvalidState    = NewBaseError(KindInvalidState, string(KindInvalidState), "Operación no permitida en el estado actual")
	ErrNotFound        = NewBaseError(KindNotFound, string(KindNotFound), "Recurso no encontrado")
	ErrUnauthorized    = NewBaseError(KindUnauthorized, string(KindUnauthorized), "No autenticado")
	ErrForbidden       = NewBaseError(KindForbidden, string(KindForbidden), "Acceso denegado")
	ErrInternalError   = NewBaseError(KindInternal, string(KindInternal), "Error interno del sistema")
)

// Predefined error types
var (
	// Validation
	ErrValidationFailed = NewBaseError(KindInvalidArgument, "VALIDATION_FAILED", "Los datos enviados no son válidos")
	ErrInvalidID        = NewBaseError(KindInvalidArgument, "INVALID_ID", "Identificador inválido")

	// Catalog
	ErrProductNotFound     = NewBaseError(KindNotFound, "PRODUCT_NOT_FOUND", "Producto no encontrado")
	ErrUnknownProduct      = NewBaseError(KindInvalidArgument, "UNKNOWN_PRODUCT", "El producto no existe")
	ErrProductUnavailable  = NewBaseError(KindInvalidArgument, "PRODUCT_UNAVAILABLE", "El producto no está disponible")
	ErrInvalidCategory     = NewBaseError(KindInvalidArgument, "INVALID_CATEGORY", "Categoría no reconocida")
	ErrInvalidPrice        = NewBaseError(KindInvalidArgument, "INVALID_PRICE", "Precio fuera de rango")
	ErrInvalidStock        = NewBaseError(KindInvalidArgument, "INVALID_STOCK", "El stock no puede ser negativo")
	ErrInvalidImage        = NewBaseError(KindInvalidArgument, "INVALID_IMAGE", "Imagen inválida")
	ErrAddOnNotFound       = NewBaseError(KindNotFound, "ADDON_NOT_FOUND", "Adicional no encontrado")
	ErrUnknownAddOn        = NewBaseError(KindInvalidArgument, "UNKNOWN_ADDON", "El adicional no existe")
	ErrAddOnNotApplicable  = NewBaseError(KindInvalidArgument, "ADDON_NOT_APPLICABLE", "El adicional no aplica a la categoría del producto")
	ErrAddOnNameDuplicated = NewBaseError(KindInvalidArgument, "ADDON_NAME_DUPLICATED", "Ya existe un adicional con ese nombre")
	ErrStorageUnavailable  = NewBaseError(KindInternal, "STORAGE_UNAVAILABLE", "Almacenamiento de imágenes no configurado")

	// Customer
	ErrCustomerNotFound     = NewBaseError(KindNotFound, "CUSTOMER_NOT_FOUND", "Cliente no encontrado")
	ErrUnknownCustomer      = NewBaseError(KindInvalidArgument, "UNKNOWN_CUSTOMER", "El cliente no existe")
	ErrEmailAlreadyExists   = NewBaseError(KindInvalidArgument, "EMAIL_ALREADY_REGISTERED", "El correo ya está registrado")
	ErrInvalidEmail         = NewBaseError(KindInvalidArgument, "INVALID_EMAIL", "Correo electrónico inválido")
	ErrInvalidPhone         = NewBaseError(KindInvalidArgument, "INVALID_PHONE", "Teléfono inválido")
	ErrPasswordTooShort     = NewBaseError(KindInvalidArgument, "PASSWORD_TOO_SHORT", "La contraseña es demasiado corta")
	ErrPasswordTooLong      = NewBaseError(KindInvalidArgument, "PASSWORD_TOO_LONG", "La contraseña es demasiado larga")
	ErrInvalidCredentials   = NewBaseError(KindUnauthorized, "INVALID_CREDENTIALS", "Correo o contraseña incorrectos")
	ErrInvalidToken         = NewBaseError(KindUnauthorized, "INVALID_TOKEN", "Token inválido o expirado")
	ErrPasswordHashFailed   = NewBaseError(KindInternal, "PASSWORD_HASH_FAILED", "Error procesando la contraseña")
	ErrCustomerInactive     = NewBaseError(KindUnauthorized, "CUSTOMER_INACTIVE", "La cuenta está desactivada")
	ErrDeviceNotFound       = NewBaseError(KindNotFound, "DEVICE_NOT_FOUND", "Dispositivo no encontrado")
	ErrDeviceOwnership      = NewBaseError(KindForbidden, "DEVICE_OWNERSHIP_VIOLATION", "El dispositivo no pertenece al cliente")
	ErrCustomerCreateFailed = NewBaseError(KindInternal, "CUSTOMER_CREATION_FAILED", "No se pudo crear el cliente")

	// Cart
	ErrCartNotFound        = NewBaseError(KindNotFound, "CART_NOT_FOUND", "Carrito no encontrado")
	ErrUnknownCart         = NewBaseError(KindInvalidArgument, "UNKNOWN_CART", "El carrito no existe")
	ErrInvalidQuantity     = NewBaseError(KindInvalidArgument, "INVALID_QUANTITY", "La cantidad debe ser mayor que cero")
	ErrCartClosed          = NewBaseError(KindInvalidState, "CART_CLOSED", "El carrito ya está cerrado")
	ErrCartEmpty           = NewBaseError(KindInvalidState, "CART_EMPTY", "El carrito no tiene productos")
	ErrCartOwnerMismatch   = NewBaseError(KindInvalidArgument, "CART_OWNER_MISMATCH", "El carrito pertenece a otro cliente")
	ErrCartItemNotInCart   = NewBaseError(KindInvalidArgument, "CART_ITEM_NOT_IN_CART", "El producto no pertenece al carrito")
	ErrNoClosedCart        = NewBaseError(KindInvalidArgument, "NO_CLOSED_CART", "No hay carritos cerrados sin pedido")
	ErrCartAccessForbidden = NewBaseError(KindForbidden, "CART_ACCESS_FORBIDDEN", "No tiene acceso a este carrito")
	ErrNoOpenCart          = NewBaseError(KindInvalidState, "NO_OPEN_CART", "No hay un carrito activo")
	ErrUnitPriceTooLarge   = NewBaseError(KindInvalidArgument, "UNIT_PRICE_TOO_LARGE", "El precio del producto con adicionales supera el máximo permitido")
	ErrCartTotalTooLarge   = NewBaseError(KindInvalidArgument, "CART_TOTAL_TOO_LARGE", "El total del carrito supera el máximo permitido")

	// Order
	ErrOrderNotFound        = NewBaseError(KindNotFound, "ORDER_NOT_FOUND", "Pedido no encontrado")
	ErrOrderCartEmpty       = NewBaseError(KindInvalidArgument, "ORDER_CART_EMPTY", "No se puede crear un pedido de un carrito vacío")
	ErrOrderCartOpen        = NewBaseError(KindInvalidArgument, "ORDER_CART_OPEN", "El carrito debe estar cerrado antes de crear el pedido")
	ErrOrderAlreadyExists   = NewBaseError(KindInvalidState, "ORDER_ALREADY_EXISTS", "El carrito ya tiene un pedido")
	ErrOrderStatusEmpty     = NewBaseError(KindInvalidArgument, "ORDER_STATUS_EMPTY", "El estado del pedido es obligatorio")
	ErrOrderStatusTooLong   = NewBaseError(KindInvalidArgument, "ORDER_STATUS_TOO_LONG", "El estado del pedido es demasiado largo")
	ErrOrderAccessForbidden = NewBaseError(KindForbidden, "ORDER_ACCESS_FORBIDDEN", "No tiene acceso a este pedido")

	// Staff
	ErrCourierNotFound     = NewBaseError(KindNotFound, "COURIER_NOT_FOUND", "Domiciliario no encontrado")
	ErrCourierUnavailable  = NewBaseError(KindInvalidState, "COURIER_UNAVAILABLE", "El domiciliario no está disponible")
	ErrOperatorNotFound    = NewBaseError(KindNotFound, "OPERATOR_NOT_FOUND", "Operador no encontrado")
	ErrIDNumberDuplicated  = NewBaseError(KindInvalidArgument, "ID_NUMBER_DUPLICATED", "Ya existe una persona con ese documento")
	ErrUnknownOperator     = NewBaseError(KindInvalidArgument, "UNKNOWN_OPERATOR", "El operador no existe")
	ErrOperatorUnavailable = NewBaseError(KindInvalidState, "OPERATOR_UNAVAILABLE", "El operador no está disponible")
	ErrStaffKeyInvalid     = NewBaseError(KindUnauthorized, "STAFF_KEY_INVALID", "Clave de administración inválida")
	ErrTransactionFailed   = NewBaseError(KindInternal, "TRANSACTION_FAILED", "Falló la transacción de base de datos")
	ErrEventPublishFailed  = NewBaseError(KindInternal, "EVENT_PUBLISH_FAILED", "No se pudo publicar el evento")
	ErrNotificationFailure = NewBaseError(KindInternal, "NOTIFICATION_FAILED", "No se pudo enviar la notificación")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Is lets callers match database failures against ErrInternalError
func (e *DatabaseExecuteError) Is(target error) bool {
	return target == ErrInternalError
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Error ejecutando la consulta en la base de datos"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
