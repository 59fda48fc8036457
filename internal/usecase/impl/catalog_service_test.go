package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/service"
	mockSvc "burgerhub/internal/mocks/service"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func createTestCatalogService(t *testing.T, storage service.ImageStorage) (usecase.CatalogUsecase, *storeFixtures) {
	store := newStoreFixtures(t)

	return NewCatalogService(CatalogServiceParams{
		TxManager:   store.txManager,
		ProductRepo: store.productRepo,
		AddOnRepo:   store.addOnRepo,
		Storage:     storage,
		Config:      newTestConfig(""),
		Logger:      newDiscardLogger(),
	}), store
}

func burgerInput(name string) usecase.ProductInput {
	return usecase.ProductInput{
		Name:        name,
		Price:       decimal.NewFromInt(18000),
		Description: "Carne de res a la parrilla",
		Category:    "Hamburguesa",
		Ingredients: []string{"pan", " queso ", ""},
		Stock:       5,
		Active:      true,
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)

	product, err := service.CreateProduct(context.Background(), burgerInput(" Clásica "))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Clásica", product.Name)
	assert.Equal(t, entity.CategoryBurger, product.Category)
	assert.Equal(t, []string{"pan", "queso"}, product.Ingredients)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)

	tests := []struct {
		name   string
		mutate func(*usecase.ProductInput)
		want   error
	}{
		{"blank name", func(in *usecase.ProductInput) { in.Name = " " }, domainerrors.ErrValidationFailed},
		{"zero price", func(in *usecase.ProductInput) { in.Price = decimal.Zero }, domainerrors.ErrInvalidPrice},
		{"sub-cent price", func(in *usecase.ProductInput) { in.Price = decimal.RequireFromString("0.004") }, domainerrors.ErrInvalidPrice},
		{"price above column", func(in *usecase.ProductInput) { in.Price = entity.MaxPrice.Add(decimal.NewFromInt(1)) }, domainerrors.ErrInvalidPrice},
		{"long name", func(in *usecase.ProductInput) { in.Name = strings.Repeat("a", entity.MaxNameLength+1) }, domainerrors.ErrValidationFailed},
		{"negative stock", func(in *usecase.ProductInput) { in.Stock = -1 }, domainerrors.ErrInvalidStock},
		{"unknown category", func(in *usecase.ProductInput) { in.Category = "pizza" }, domainerrors.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := burgerInput("Clásica")
			tt.mutate(&input)

			product, err := service.CreateProduct(context.Background(), input)
			assert.Nil(t, product)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))
		})
	}

	cents := burgerInput("Centavos")
	cents.Price = decimal.RequireFromString("18000.50")
	product, err := service.CreateProduct(context.Background(), cents)
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(cents.Price))
}

func TestCatalogService_AddOnValidation(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.AddOnInput
		want  error
	}{
		{"zero price", usecase.AddOnInput{Name: "Queso", Price: decimal.Zero, Categories: []string{"hamburguesa"}}, domainerrors.ErrInvalidPrice},
		{"too expensive", usecase.AddOnInput{Name: "Queso", Price: decimal.NewFromInt(500001), Categories: []string{"hamburguesa"}}, domainerrors.ErrInvalidPrice},
		{"sub-cent price", usecase.AddOnInput{Name: "Queso", Price: decimal.RequireFromString("2999.999"), Categories: []string{"hamburguesa"}}, domainerrors.ErrInvalidPrice},
		{"long name", usecase.AddOnInput{Name: strings.Repeat("q", entity.MaxNameLength+1), Price: decimal.NewFromInt(3000), Categories: []string{"hamburguesa"}}, domainerrors.ErrValidationFailed},
		{"no categories", usecase.AddOnInput{Name: "Queso", Price: decimal.NewFromInt(3000)}, domainerrors.ErrInvalidCategory},
		{"unknown category", usecase.AddOnInput{Name: "Queso", Price: decimal.NewFromInt(3000), Categories: []string{"pizza"}}, domainerrors.ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateAddOn(ctx, tt.input)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	maxPrice, err := service.CreateAddOn(ctx, usecase.AddOnInput{Name: "Trufa", Price: entity.MaxAddOnPrice, Active: true, Categories: []string{"hamburguesa", "HAMBURGUESA"}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{entity.CategoryBurger}, maxPrice.Categories)

	_, err = service.CreateAddOn(ctx, usecase.AddOnInput{Name: "Trufa", Price: decimal.NewFromInt(1000), Categories: []string{"bebida"}})
	assert.True(t, errors.Is(err, domainerrors.ErrAddOnNameDuplicated))
}

func TestCatalogService_AddOnsFollowCategories(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)
	ctx := context.Background()

	burger, err := service.CreateProduct(ctx, burgerInput("Clásica"))
	require.NoError(t, err)
	cheese, err := service.CreateAddOn(ctx, usecase.AddOnInput{Name: "Queso", Price: decimal.NewFromInt(3000), Active: true, Categories: []string{"hamburguesa"}})
	require.NoError(t, err)

	addOns, err := service.ListAddOnsForProduct(ctx, burger.ID)
	require.NoError(t, err)
	require.Len(t, addOns, 1)
	assert.Equal(t, cheese.ID, addOns[0].ID)

	// Moving the product to another category drops the link.
	moved := burgerInput("Clásica")
	moved.Category = "perro caliente"
	_, err = service.UpdateProduct(ctx, burger.ID, moved)
	require.NoError(t, err)

	addOns, err = service.ListAddOnsForProduct(ctx, burger.ID)
	require.NoError(t, err)
	assert.Empty(t, addOns)
}

func TestCatalogService_SearchAndMenu(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, burgerInput("Clásica"))
	require.NoError(t, err)

	soda := burgerInput("Gaseosa")
	soda.Category = "bebida"
	soda.Description = "Bebida fría"
	soda.Ingredients = nil
	_, err = service.CreateProduct(ctx, soda)
	require.NoError(t, err)

	hidden := burgerInput("Secreta")
	hidden.Active = false
	_, err = service.CreateProduct(ctx, hidden)
	require.NoError(t, err)

	_, err = service.CreateAddOn(ctx, usecase.AddOnInput{Name: "Tocineta", Price: decimal.NewFromInt(4000), Active: true, Categories: []string{"hamburguesa"}})
	require.NoError(t, err)
	_, err = service.CreateAddOn(ctx, usecase.AddOnInput{Name: "Jalapeños", Price: decimal.NewFromInt(2000), Active: false, Categories: []string{"hamburguesa"}})
	require.NoError(t, err)

	found, err := service.SearchProducts(ctx, "QUESO")
	require.NoError(t, err)
	assert.Len(t, found, 2) // Clásica and Secreta carry the ingredient

	found, err = service.SearchProducts(ctx, "fría")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Gaseosa", found[0].Name)

	menu, err := service.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, entity.CategoryBurger, menu[0].Category)
	require.Len(t, menu[0].Products, 1)
	assert.Equal(t, "Clásica", menu[0].Products[0].Name)
	require.Len(t, menu[0].Products[0].AddOns, 1)
	assert.Equal(t, "Tocineta", menu[0].Products[0].AddOns[0].Name)

	assert.Equal(t, entity.CategoryDrink, menu[1].Category)
	assert.Empty(t, menu[1].Products[0].AddOns)
}

func TestCatalogService_AdjustStock(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, burgerInput("Clásica"))
	require.NoError(t, err)

	product, err = service.AdjustStock(ctx, product.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)

	_, err = service.AdjustStock(ctx, product.ID, -3)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidStock))

	_, err = service.AdjustStock(ctx, uuid.New(), 1)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_UploadProductImage(t *testing.T) {
	storage := mockSvc.NewMockImageStorage(t)
	service, _ := createTestCatalogService(t, storage)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, burgerInput("Clásica"))
	require.NoError(t, err)

	var firstKey string
	storage.EXPECT().
		Upload(mock.Anything, mock.AnythingOfType("string"), mock.Anything, "image/png").
		Run(func(_ context.Context, key string, body io.Reader, _ string) {
			firstKey = key
			data, _ := io.ReadAll(body)
			assert.Equal(t, pngHeader, data)
		}).
		Return(nil).
		Once()
	storage.EXPECT().URL(mock.Anything, mock.Anything, 15*time.Minute).Return("https://cdn.burgerhub.test/img.png", nil)

	updated, err := service.UploadProductImage(ctx, product.ID, usecase.ImageUpload{
		Filename:    "foto.txt",
		ContentType: "text/plain",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(firstKey, "products/"+product.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(firstKey, ".png"))
	assert.Equal(t, firstKey, updated.ImageKey)
	assert.Equal(t, "https://cdn.burgerhub.test/img.png", updated.ImageURL)

	// A second upload replaces and removes the first object.
	storage.EXPECT().Upload(mock.Anything, mock.Anything, mock.Anything, "image/png").Return(nil).Once()
	storage.EXPECT().Delete(mock.Anything, firstKey).Return(nil).Once()

	updated, err = service.UploadProductImage(ctx, product.ID, usecase.ImageUpload{Size: int64(len(pngHeader)), Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.NotEqual(t, firstKey, updated.ImageKey)
}

func TestCatalogService_UploadProductImage_Rejected(t *testing.T) {
	storage := mockSvc.NewMockImageStorage(t)
	service, _ := createTestCatalogService(t, storage)
	ctx := context.Background()

	product, err := service.CreateProduct(ctx, burgerInput("Clásica"))
	require.NoError(t, err)

	_, err = service.UploadProductImage(ctx, product.ID, usecase.ImageUpload{
		ContentType: "image/png",
		Size:        11,
		Body:        strings.NewReader("hola mundo!"),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))

	_, err = service.UploadProductImage(ctx, product.ID, usecase.ImageUpload{Size: MaxImageSize + 1, Body: bytes.NewReader(pngHeader)})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidImage))

	_, err = service.UploadProductImage(ctx, uuid.New(), usecase.ImageUpload{Size: int64(len(pngHeader)), Body: bytes.NewReader(pngHeader)})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_UploadProductImage_NoStorage(t *testing.T) {
	service, _ := createTestCatalogService(t, nil)

	_, err := service.UploadProductImage(context.Background(), uuid.New(), usecase.ImageUpload{Body: bytes.NewReader(pngHeader)})
	assert.True(t, errors.Is(err, domainerrors.ErrStorageUnavailable))
}
