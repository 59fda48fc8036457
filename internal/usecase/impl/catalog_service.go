// Package impl contains the implementation of the application's business logic.
package impl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/domain/service"
	"burgerhub/internal/usecase"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MaxImageSize is the largest product picture accepted, in bytes.
const MaxImageSize = 10 << 20

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

type catalogService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	addOnRepo   repository.AddOnRepository
	storage     service.ImageStorage
	presignTTL  time.Duration
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	AddOnRepo   repository.AddOnRepository
	Storage     service.ImageStorage `optional:"true"`
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCatalogService creates the catalog use case.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	presignTTL := 15 * time.Minute
	if params.Config != nil && params.Config.Storage != nil && params.Config.Storage.PresignTTL > 0 {
		presignTTL = params.Config.Storage.PresignTTL
	}

	return &catalogService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		addOnRepo:   params.AddOnRepo,
		storage:     params.Storage,
		presignTTL:  presignTTL,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Products ---

func (srv *catalogService) CreateProduct(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewProductRepository().CreateProduct(ctx, product); err != nil {
			return err
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("category", string(product.Category)))

	return product, nil
}

func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	existing, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	product.ImageKey = existing.ImageKey
	product.CreatedAt = existing.CreatedAt

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewProductRepository().UpdateProduct(ctx, product); err != nil {
			return translateProductError(err)
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return srv.GetProduct(ctx, id)
}

func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domainerrors.ErrInvalidID
	}

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewProductRepository().DeleteProduct(ctx, id); err != nil {
			return translateProductError(err)
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	srv.resolveImageURLs(ctx, product)

	return product, nil
}

func (srv *catalogService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	if filter.Category != "" {
		category, ok := entity.ParseCategory(string(filter.Category))
		if !ok {
			return nil, domainerrors.ErrInvalidCategory.WithDetails(string(filter.Category))
		}
		filter.Category = category
	}

	products, err := srv.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	srv.resolveImageURLs(ctx, products...)

	return products, nil
}

func (srv *catalogService) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListProducts(ctx, entity.ProductFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	matches := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Matches(query) {
			matches = append(matches, p)
		}
	}
	srv.resolveImageURLs(ctx, matches...)

	return matches, nil
}

func (srv *catalogService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	stock, err := srv.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, domainerrors.ErrInvalidStock.WithDetails(fmt.Sprintf("delta %d", delta))
		}

		return nil, translateProductError(err)
	}

	srv.log(ctx).Debug("Stock adjusted", slog.Any("productID", id), slog.Int("delta", delta), slog.Int("stock", stock))

	return srv.GetProduct(ctx, id)
}

func (srv *catalogService) UploadProductImage(ctx context.Context, id uuid.UUID, upload usecase.ImageUpload) (*entity.Product, error) {
	if srv.storage == nil {
		return nil, domainerrors.ErrStorageUnavailable
	}
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}
	if upload.Body == nil || upload.Size > MaxImageSize {
		return nil, domainerrors.ErrInvalidImage.WithDetails("la imagen debe pesar máximo 10MB")
	}

	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(upload.Body, MaxImageSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read image")
	}
	if len(data) == 0 || len(data) > MaxImageSize {
		return nil, domainerrors.ErrInvalidImage.WithDetails("la imagen debe pesar máximo 10MB")
	}

	// Trust the bytes, not the client supplied content type.
	contentType := mimetype.Detect(data).String()
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, domainerrors.ErrInvalidImage.WithDetails("formatos permitidos: png, jpeg")
	}

	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New(), ext)
	if err := srv.storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, errors.Wrap(err, "failed to upload image")
	}

	previousKey := product.ImageKey
	product.ImageKey = key
	if err := srv.productRepo.UpdateProduct(ctx, product); err != nil {
		// Do not leave an orphan object behind.
		if delErr := srv.storage.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to delete orphan image", slog.String("key", key), slog.Any("error", delErr))
		}

		return nil, translateProductError(err)
	}

	if previousKey != "" {
		if err := srv.storage.Delete(ctx, previousKey); err != nil {
			srv.log(ctx).Warn("Failed to delete previous image", slog.String("key", previousKey), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Product image uploaded", slog.Any("productID", id), slog.String("key", key), slog.Int("size", len(data)))

	return srv.GetProduct(ctx, id)
}

// --- Add-ons ---

func (srv *catalogService) CreateAddOn(ctx context.Context, input usecase.AddOnInput) (*entity.AddOn, error) {
	addOn, err := buildAddOn(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		addOnRepo := factory.NewAddOnRepository()
		if err := ensureAddOnNameFree(ctx, addOnRepo, addOn.Name, uuid.Nil); err != nil {
			return err
		}
		if err := addOnRepo.CreateAddOn(ctx, addOn); err != nil {
			return err
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create add-on")
	}

	srv.log(ctx).Info("Add-on created", slog.Any("addOnID", addOn.ID))

	return addOn, nil
}

func (srv *catalogService) UpdateAddOn(ctx context.Context, id uuid.UUID, input usecase.AddOnInput) (*entity.AddOn, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	existing, err := srv.GetAddOn(ctx, id)
	if err != nil {
		return nil, err
	}

	addOn, err := buildAddOn(input)
	if err != nil {
		return nil, err
	}
	addOn.ID = existing.ID
	addOn.CreatedAt = existing.CreatedAt

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		addOnRepo := factory.NewAddOnRepository()
		if err := ensureAddOnNameFree(ctx, addOnRepo, addOn.Name, addOn.ID); err != nil {
			return err
		}
		if err := addOnRepo.UpdateAddOn(ctx, addOn); err != nil {
			return translateAddOnError(err)
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update add-on")
	}

	return srv.GetAddOn(ctx, id)
}

func (srv *catalogService) DeleteAddOn(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domainerrors.ErrInvalidID
	}

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.NewAddOnRepository().DeleteAddOn(ctx, id); err != nil {
			return translateAddOnError(err)
		}

		return rebuildAllowedAddOns(ctx, factory)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete add-on")
	}

	return nil
}

func (srv *catalogService) GetAddOn(ctx context.Context, id uuid.UUID) (*entity.AddOn, error) {
	if id == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	addOn, err := srv.addOnRepo.FindAddOnByID(ctx, id)
	if err != nil {
		return nil, translateAddOnError(err)
	}

	return addOn, nil
}

func (srv *catalogService) SearchAddOns(ctx context.Context, name string) ([]*entity.AddOn, error) {
	addOns, err := srv.addOnRepo.SearchAddOns(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search add-ons")
	}

	return addOns, nil
}

func (srv *catalogService) ListAddOnsForProduct(ctx context.Context, productID uuid.UUID) ([]*entity.AddOn, error) {
	if productID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}
	if _, err := srv.findProduct(ctx, productID); err != nil {
		return nil, err
	}

	addOns, err := srv.addOnRepo.ListAddOnsForProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list add-ons for product")
	}

	return addOns, nil
}

func (srv *catalogService) Menu(ctx context.Context) ([]*usecase.MenuSection, error) {
	products, err := srv.productRepo.ListProducts(ctx, entity.ProductFilter{ActiveOnly: true})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu products")
	}
	addOns, err := srv.addOnRepo.ListAddOns(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu add-ons")
	}
	srv.resolveImageURLs(ctx, products...)

	byCategory := make(map[entity.Category][]*usecase.MenuProduct)
	for _, p := range products {
		offered := make([]*entity.AddOn, 0)
		for _, a := range addOns {
			if a.Active && a.AppliesTo(p.Category) {
				offered = append(offered, a)
			}
		}
		byCategory[p.Category] = append(byCategory[p.Category], &usecase.MenuProduct{Product: p, AddOns: offered})
	}

	sections := make([]*usecase.MenuSection, 0, len(byCategory))
	for _, category := range entity.Categories {
		if items, ok := byCategory[category]; ok {
			sections = append(sections, &usecase.MenuSection{Category: category, Products: items})
		}
	}

	return sections, nil
}

// --- Helpers ---

func (srv *catalogService) findProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductByID(ctx, id)
	if err != nil {
		return nil, translateProductError(err)
	}

	return product, nil
}

// resolveImageURLs fills ImageURL from the storage. Failures only drop the URL.
func (srv *catalogService) resolveImageURLs(ctx context.Context, products ...*entity.Product) {
	if srv.storage == nil {
		return
	}
	for _, p := range products {
		if p.ImageKey == "" {
			continue
		}
		url, err := srv.storage.URL(ctx, p.ImageKey, srv.presignTTL)
		if err != nil {
			srv.log(ctx).Warn("Failed to resolve image URL", slog.String("key", p.ImageKey), slog.Any("error", err))

			continue
		}
		p.ImageURL = url
	}
}

// rebuildAllowedAddOns recomputes every product/add-on link from the current
// categories. It must run inside the transaction of the write that changed them.
func rebuildAllowedAddOns(ctx context.Context, factory repository.RepositoryFactory) error {
	products, err := factory.NewProductRepository().ListProducts(ctx, entity.ProductFilter{})
	if err != nil {
		return errors.Wrap(err, "failed to list products")
	}
	addOnRepo := factory.NewAddOnRepository()
	addOns, err := addOnRepo.ListAddOns(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list add-ons")
	}

	links := make([]*entity.AllowedAddOn, 0)
	for _, p := range products {
		for _, a := range addOns {
			if a.AppliesTo(p.Category) {
				links = append(links, &entity.AllowedAddOn{ProductID: p.ID, AddOnID: a.ID})
			}
		}
	}

	return addOnRepo.ReplaceAllowedAddOns(ctx, links)
}

func ensureAddOnNameFree(ctx context.Context, repo repository.AddOnRepository, name string, self uuid.UUID) error {
	existing, err := repo.FindAddOnByName(ctx, name)
	if errors.Is(err, repository.ErrAddOnNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check add-on name")
	}
	if existing.ID != self {
		return domainerrors.ErrAddOnNameDuplicated.WithDetails(name)
	}

	return nil
}

func buildProduct(input usecase.ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > entity.MaxNameLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("el nombre admite hasta 120 caracteres")
	}
	if !entity.ValidPrice(input.Price, entity.MaxPrice) {
		return nil, domainerrors.ErrInvalidPrice.WithDetails("el precio debe ser mayor que cero, con hasta dos decimales")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrInvalidStock
	}
	category, ok := entity.ParseCategory(input.Category)
	if !ok {
		return nil, domainerrors.ErrInvalidCategory.WithDetails(input.Category)
	}

	ingredients := make([]string, 0, len(input.Ingredients))
	for _, ingredient := range input.Ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}

	return &entity.Product{
		Name:        name,
		Price:       input.Price,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Ingredients: ingredients,
		Stock:       input.Stock,
		Active:      input.Active,
		New:         input.New,
		Popular:     input.Popular,
	}, nil
}

func buildAddOn(input usecase.AddOnInput) (*entity.AddOn, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("el nombre es obligatorio")
	}
	if utf8.RuneCountInString(name) > entity.MaxNameLength {
		return nil, domainerrors.ErrValidationFailed.WithDetails("el nombre admite hasta 120 caracteres")
	}
	if !entity.ValidPrice(input.Price, entity.MaxAddOnPrice) {
		return nil, domainerrors.ErrInvalidPrice.WithDetails("el precio debe estar entre 0 y 500000")
	}
	if len(input.Categories) == 0 {
		return nil, domainerrors.ErrInvalidCategory.WithDetails("se requiere al menos una categoría")
	}

	categories := make([]entity.Category, 0, len(input.Categories))
	seen := make(map[entity.Category]bool, len(input.Categories))
	for _, raw := range input.Categories {
		category, ok := entity.ParseCategory(raw)
		if !ok {
			return nil, domainerrors.ErrInvalidCategory.WithDetails(raw)
		}
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}

	return &entity.AddOn{
		Name:       name,
		Price:      input.Price,
		Active:     input.Active,
		Categories: categories,
	}, nil
}

func translateProductError(err error) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound
	}

	return err
}

func translateAddOnError(err error) error {
	if errors.Is(err, repository.ErrAddOnNotFound) {
		return domainerrors.ErrAddOnNotFound
	}

	return err
}
