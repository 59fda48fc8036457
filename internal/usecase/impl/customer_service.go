package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const maxAddressLength = 200

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// customerService implements the CustomerUsecase interface.
type customerService struct {
	txManager         repository.TransactionManager
	customerRepo      repository.CustomerRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	minPasswordLength int
	// decoyHash is compared against on unknown emails so both login paths pay for a hash check.
	decoyHash string
	logger    *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CustomerRepo repository.CustomerRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	minPasswordLength := 8
	if params.Config != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	var decoyHash string
	if params.Hasher != nil {
		decoyHash, _ = params.Hasher.Hash(uuid.NewString())
	}

	return &customerService{
		txManager:         params.TxManager,
		customerRepo:      params.CustomerRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		minPasswordLength: minPasswordLength,
		decoyHash:         decoyHash,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, hashes the password and stores the customer.
func (srv *customerService) Register(ctx context.Context, input usecase.RegisterCustomerInput) (*entity.Customer, error) {
	customer := &entity.Customer{
		Name:    strings.TrimSpace(input.Name),
		Surname: strings.TrimSpace(input.Surname),
		Email:   normalizeEmail(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Active:  true,
	}
	if err := srv.validateProfile(customer); err != nil {
		return nil, err
	}
	if err := srv.validatePassword(input.Password); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", customer.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	customer.PasswordHash = hash

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		customerRepo := factory.NewCustomerRepository()

		_, err := customerRepo.FindCustomerByEmail(ctx, customer.Email)
		if err == nil {
			return domainerrors.ErrEmailAlreadyExists
		}
		if !errors.Is(err, repository.ErrCustomerNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		if err := customerRepo.CreateCustomer(ctx, customer); err != nil {
			// A concurrent registration can still win the unique index.
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailAlreadyExists
			}

			return domainerrors.ErrCustomerCreateFailed.WrapMessage(err.Error())
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", customer.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute customer registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("customerID", customer.ID))

	return customer, nil
}

// Login checks the credentials and issues an access token.
func (srv *customerService) Login(ctx context.Context, email, password string) (*usecase.LoginOutput, error) {
	customer, err := srv.customerRepo.FindCustomerByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			srv.hasher.Matches(password, srv.decoyHash)
			srv.log(ctx).Debug("Login attempt for unknown email")

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	if !srv.hasher.Matches(password, customer.PasswordHash) {
		srv.log(ctx).Debug("Login attempt with wrong password", slog.Any("customerID", customer.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !customer.Active {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(customer.ID, []string{constants.RoleCustomer})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Info("Customer logged in", slog.Any("customerID", customer.ID))

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresIn:   srv.tokenService.TokenDuration(),
		Customer:    customer,
	}, nil
}

func (srv *customerService) Authenticate(ctx context.Context, token string) (*entity.Customer, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}

	customer, err := srv.customerRepo.FindCustomerByID(ctx, claims.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}
	if !customer.Active {
		return nil, domainerrors.ErrCustomerInactive
	}

	return customer, nil
}

func (srv *customerService) GetProfile(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	customer, err := srv.customerRepo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	return customer, nil
}

func (srv *customerService) UpdateProfile(ctx context.Context, id uuid.UUID, input usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := srv.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Surname = strings.TrimSpace(input.Surname)
	customer.Email = normalizeEmail(input.Email)
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Address = strings.TrimSpace(input.Address)
	if err := srv.validateProfile(customer); err != nil {
		return nil, err
	}

	if input.Password != "" {
		if err := srv.validatePassword(input.Password); err != nil {
			return nil, err
		}
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}
		customer.PasswordHash = hash
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		customerRepo := factory.NewCustomerRepository()

		other, err := customerRepo.FindCustomerByEmail(ctx, customer.Email)
		if err == nil && other.ID != customer.ID {
			return domainerrors.ErrEmailAlreadyExists
		}
		if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		if err := customerRepo.UpdateCustomer(ctx, customer); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrEmailAlreadyExists
			}
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return domainerrors.ErrCustomerNotFound
			}

			return err
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}

	srv.log(ctx).Info("Customer profile updated", slog.Any("customerID", customer.ID))

	return customer, nil
}

func (srv *customerService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Customer, error) {
	customer, err := srv.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Active = active
	if err := srv.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to update customer status")
	}

	srv.log(ctx).Info("Customer status changed", slog.Any("customerID", id), slog.Bool("active", active))

	return customer, nil
}

func (srv *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := srv.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return customers, nil
}

func (srv *customerService) validateProfile(customer *entity.Customer) error {
	if customer.Name == "" || customer.Surname == "" {
		return domainerrors.ErrValidationFailed.WithDetails("nombre y apellido son obligatorios")
	}
	if utf8.RuneCountInString(customer.Name) > entity.MaxPersonNameLength ||
		utf8.RuneCountInString(customer.Surname) > entity.MaxPersonNameLength {
		return domainerrors.ErrValidationFailed.WithDetails("nombre y apellido admiten hasta 100 caracteres")
	}
	if len(customer.Email) > entity.MaxEmailLength || !emailPattern.MatchString(customer.Email) {
		return domainerrors.ErrInvalidEmail.WithDetails(customer.Email)
	}
	if customer.Phone != "" && !phonePattern.MatchString(customer.Phone) {
		return domainerrors.ErrInvalidPhone.WithDetails(customer.Phone)
	}
	if utf8.RuneCountInString(customer.Address) > maxAddressLength {
		return domainerrors.ErrValidationFailed.WithDetails("la dirección supera los 200 caracteres")
	}

	return nil
}

func (srv *customerService) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < srv.minPasswordLength {
		return domainerrors.ErrPasswordTooShort
	}
	if len(password) > entity.MaxPasswordBytes {
		return domainerrors.ErrPasswordTooLong
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
