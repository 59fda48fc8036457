package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"burgerhub/internal/domain/entity"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, model.AutoMigrate(db))

	return db
}

func createCustomer(t *testing.T, db *gorm.DB, email string) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{Name: "Ana", Surname: "Gómez", Email: email, PasswordHash: "hash", Active: true}
	require.NoError(t, NewCustomerRepository(db).CreateCustomer(context.Background(), customer))

	return customer
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	first := createCustomer(t, db, "ana@example.com")
	assert.NotEqual(t, uuid.Nil, first.ID)

	err := repo.CreateCustomer(ctx, &entity.Customer{Name: "Otra", Surname: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail), "got %v", err)

	found, err := repo.FindCustomerByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindCustomerByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrCustomerNotFound))

	count, err := repo.CountCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCartRepository_SingleOpenCartPerCustomer(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()
	customer := createCustomer(t, db, "ana@example.com")

	open := &entity.Cart{CustomerID: customer.ID, State: true, TotalPrice: decimal.Zero}
	require.NoError(t, repo.CreateCart(ctx, open))

	err := repo.CreateCart(ctx, &entity.Cart{CustomerID: customer.ID, State: true})
	assert.True(t, errors.Is(err, repository.ErrOpenCartExists), "got %v", err)

	// Closed carts do not count against the open cart index.
	require.NoError(t, repo.UpdateCartState(ctx, open.ID, false))
	second := &entity.Cart{CustomerID: customer.ID, State: true}
	require.NoError(t, repo.CreateCart(ctx, second))

	// Reopening the first cart would leave two open carts.
	err = repo.UpdateCartState(ctx, open.ID, true)
	assert.True(t, errors.Is(err, repository.ErrOpenCartExists), "got %v", err)

	found, err := repo.FindOpenCartByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	closed, err := repo.FindLatestClosedCartWithoutOrder(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, open.ID, closed.ID)

	count, err := repo.CountOpenCarts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCartRepository_UnknownCustomer(t *testing.T) {
	db := newTestDB(t)

	err := NewCartRepository(db).CreateCart(context.Background(), &entity.Cart{CustomerID: uuid.New(), State: true})
	assert.True(t, errors.Is(err, repository.ErrCustomerNotFound), "got %v", err)
}

func TestDeviceRepository_DeactivateByTokens(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()
	customer := createCustomer(t, db, "ana@example.com")

	for _, token := range []string{"tok-a", "tok-b", "tok-c"} {
		require.NoError(t, repo.CreateDevice(ctx, &entity.CustomerDevice{
			CustomerID: customer.ID,
			FCMToken:   token,
			DeviceID:   "device-" + token,
			Platform:   entity.PlatformAndroid,
			IsActive:   true,
		}))
	}

	require.NoError(t, repo.DeactivateByTokens(ctx, []string{"tok-a", "tok-c", "unknown"}))
	require.NoError(t, repo.DeactivateByTokens(ctx, nil))

	active, err := repo.FindActiveDevicesByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "tok-b", active[0].FCMToken)

	all, err := repo.FindDevicesByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	device, err := repo.FindDeviceByCustomerAndDeviceID(ctx, customer.ID, "device-tok-b")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteDevice(ctx, device.ID))
	assert.True(t, errors.Is(repo.DeleteDevice(ctx, device.ID), repository.ErrDeviceNotFound))
}

func TestTransactionManager_RollsBack(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()
	sentinel := errors.New("abort")

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		customer := &entity.Customer{Name: "Ana", Surname: "Gómez", Email: "ana@example.com", PasswordHash: "hash"}
		if err := factory.NewCustomerRepository().CreateCustomer(ctx, customer); err != nil {
			return err
		}

		return sentinel
	})
	assert.True(t, errors.Is(err, sentinel))

	_, err = NewCustomerRepository(db).FindCustomerByEmail(ctx, "ana@example.com")
	assert.True(t, errors.Is(err, repository.ErrCustomerNotFound))
}

func TestTransactionManager_RollsBackCartItem(t *testing.T) {
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	carts := NewCartRepository(db)
	ctx := context.Background()
	customer := createCustomer(t, db, "ana@example.com")

	product := &entity.Product{Name: "Clásica", Price: decimal.NewFromInt(18000), Category: entity.CategoryBurger, Stock: 5, Active: true}
	require.NoError(t, NewProductRepository(db).CreateProduct(ctx, product))
	addOn := &entity.AddOn{Name: "Queso Extra", Price: decimal.NewFromInt(3000), Active: true, Categories: []entity.Category{entity.CategoryBurger}}
	require.NoError(t, NewAddOnRepository(db).CreateAddOn(ctx, addOn))

	cart := &entity.Cart{CustomerID: customer.ID, State: true, TotalPrice: decimal.Zero}
	require.NoError(t, carts.CreateCart(ctx, cart))

	sentinel := errors.New("abort")
	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		txCarts := factory.NewCartRepository()
		item := &entity.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(21000),
			AddOns:    []*entity.CartItemAddOn{{AddOnID: addOn.ID}},
		}
		if err := txCarts.CreateItem(ctx, item); err != nil {
			return err
		}
		if err := txCarts.UpdateCartTotal(ctx, cart.ID, decimal.NewFromInt(42000)); err != nil {
			return err
		}

		return sentinel
	})
	assert.True(t, errors.Is(err, sentinel))

	reloaded, err := carts.FindCartByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)
	assert.True(t, reloaded.TotalPrice.IsZero(), "total %s", reloaded.TotalPrice)

	var selections int64
	require.NoError(t, db.Model(&model.CartItemAddOnModel{}).Count(&selections).Error)
	assert.Zero(t, selections)
}

func TestQueryLogger_SkipsMissingRows(t *testing.T) {
	var buf bytes.Buffer
	db := newTestDB(t).Session(&gorm.Session{
		Logger: newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), nil),
	})
	ctx := context.Background()

	_, err := NewCustomerRepository(db).FindCustomerByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, repository.ErrCustomerNotFound))
	assert.Empty(t, buf.String())

	err = db.WithContext(ctx).Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "query failed")
	assert.Contains(t, buf.String(), "no_such_table")
}
