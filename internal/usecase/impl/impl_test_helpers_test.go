package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"burgerhub/config"
	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"
	"burgerhub/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(pricing string) *config.Config {
	cfg := &config.Config{}
	cfg.Cart.Pricing = pricing
	cfg.Auth.BcryptCost = 4
	cfg.Auth.MinPasswordLength = 8
	cfg.SecretKey.Access = "test-access-secret"

	return cfg
}

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := postgres.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db))

	return db
}

// storeFixtures wires the real repositories over one test database.
type storeFixtures struct {
	db           *gorm.DB
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	addOnRepo    repository.AddOnRepository
	customerRepo repository.CustomerRepository
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	courierRepo  repository.CourierRepository
	operatorRepo repository.OperatorRepository
}

func newStoreFixtures(t *testing.T) *storeFixtures {
	db := newTestDB(t)

	return &storeFixtures{
		db:           db,
		txManager:    postgres.NewTransactionManager(db),
		productRepo:  postgres.NewProductRepository(db),
		addOnRepo:    postgres.NewAddOnRepository(db),
		customerRepo: postgres.NewCustomerRepository(db),
		cartRepo:     postgres.NewCartRepository(db),
		orderRepo:    postgres.NewOrderRepository(db),
		courierRepo:  postgres.NewCourierRepository(db),
		operatorRepo: postgres.NewOperatorRepository(db),
	}
}

func (s *storeFixtures) newCartService(pricing string) *cartService {
	return NewCartService(CartServiceParams{
		TxManager:    s.txManager,
		CartRepo:     s.cartRepo,
		CustomerRepo: s.customerRepo,
		ProductRepo:  s.productRepo,
		AddOnRepo:    s.addOnRepo,
		Config:       newTestConfig(pricing),
		Logger:       newDiscardLogger(),
	}).(*cartService)
}

func (s *storeFixtures) createCustomer(t *testing.T, email string) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{
		Name:         "Ana",
		Surname:      "Gómez",
		Email:        email,
		PasswordHash: "hash",
		Active:       true,
	}
	require.NoError(t, s.customerRepo.CreateCustomer(context.Background(), customer))

	return customer
}

func (s *storeFixtures) createProduct(t *testing.T, name string, price int64, category entity.Category) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: category,
		Stock:    10,
		Active:   true,
	}
	require.NoError(t, s.productRepo.CreateProduct(context.Background(), product))

	return product
}

func (s *storeFixtures) createAddOn(t *testing.T, name string, price int64, categories ...entity.Category) *entity.AddOn {
	t.Helper()

	addOn := &entity.AddOn{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Active:     true,
		Categories: categories,
	}
	require.NoError(t, s.addOnRepo.CreateAddOn(context.Background(), addOn))

	return addOn
}
