package impl

import (
	"context"
	"log/slog"

	"burgerhub/config"
	deliverycontext "burgerhub/internal/delivery/context"
	"burgerhub/internal/domain/entity"
	domainerrors "burgerhub/internal/domain/errors"
	"burgerhub/internal/domain/repository"
	"burgerhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type cartService struct {
	txManager    repository.TransactionManager
	cartRepo     repository.CartRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	addOnRepo    repository.AddOnRepository
	pricing      cartPricing
	logger       *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CartRepo     repository.CartRepository
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository
	AddOnRepo    repository.AddOnRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCartService creates the cart use case.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	mode := ""
	if params.Config != nil {
		mode = params.Config.Cart.Pricing
	}

	return &cartService{
		txManager:    params.TxManager,
		cartRepo:     params.CartRepo,
		customerRepo: params.CustomerRepo,
		productRepo:  params.ProductRepo,
		addOnRepo:    params.AddOnRepo,
		pricing:      newCartPricing(mode),
		logger:       params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *cartService) GetOrCreateActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("clienteId")
	}

	if _, err := srv.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrUnknownCustomer
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	cart, err := srv.cartRepo.FindOpenCartByCustomer(ctx, customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrCartNotFound) {
		return nil, errors.Wrap(err, "failed to find open cart")
	}

	cart = &entity.Cart{
		State:      true,
		TotalPrice: decimal.Zero,
		CustomerID: customerID,
	}
	if err := srv.cartRepo.CreateCart(ctx, cart); err != nil {
		switch {
		case errors.Is(err, repository.ErrOpenCartExists):
			// Another request created it first; the open cart is unique.
			srv.log(ctx).Debug("Open cart created concurrently", slog.Any("customerID", customerID))

			existing, findErr := srv.cartRepo.FindOpenCartByCustomer(ctx, customerID)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to re-read open cart")
			}

			return existing, nil
		case errors.Is(err, repository.ErrCustomerNotFound):
			return nil, domainerrors.ErrUnknownCustomer
		default:
			return nil, errors.Wrap(err, "failed to create cart")
		}
	}

	srv.log(ctx).Info("Cart created", slog.Any("cartID", cart.ID), slog.Any("customerID", customerID))

	return cart, nil
}

func (srv *cartService) FindActiveCart(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("clienteId")
	}

	cart, err := srv.cartRepo.FindOpenCartByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrNoOpenCart
		}

		return nil, errors.Wrap(err, "failed to find open cart")
	}

	return cart, nil
}

func (srv *cartService) AddItem(ctx context.Context, input usecase.AddItemInput) (*entity.Cart, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrInvalidQuantity
	}
	if input.CustomerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("clienteId")
	}

	product, err := srv.productRepo.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrUnknownProduct
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if !product.Active {
		return nil, domainerrors.ErrProductUnavailable.WithDetails(product.Name)
	}

	addOns, err := srv.resolveAddOns(ctx, product, input.AddOnIDs)
	if err != nil {
		return nil, err
	}

	cart, err := srv.resolveCart(ctx, input)
	if err != nil {
		return nil, err
	}
	if !cart.IsOpen() {
		return nil, domainerrors.ErrCartClosed
	}
	if cart.CustomerID != input.CustomerID {
		return nil, domainerrors.ErrCartOwnerMismatch
	}

	unitPrice := product.Price
	selections := make([]*entity.CartItemAddOn, 0, len(addOns))
	for _, a := range addOns {
		unitPrice = unitPrice.Add(a.Price)
		selections = append(selections, &entity.CartItemAddOn{AddOnID: a.ID})
	}
	if unitPrice.GreaterThan(entity.MaxPrice) {
		return nil, domainerrors.ErrUnitPriceTooLarge
	}

	item := &entity.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  input.Quantity,
		UnitPrice: unitPrice,
		AddOns:    selections,
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		current, err := cartRepo.FindCartByID(ctx, cart.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload cart")
		}
		if !current.IsOpen() {
			return domainerrors.ErrCartClosed
		}

		total := srv.pricing.afterAdd(current.TotalPrice, unitPrice, input.Quantity)
		if total.GreaterThan(entity.MaxCartTotal) {
			return domainerrors.ErrCartTotalTooLarge
		}

		if err := cartRepo.CreateItem(ctx, item); err != nil {
			return errors.Wrap(err, "failed to create cart item")
		}

		return cartRepo.UpdateCartTotal(ctx, cart.ID, total)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to add item", slog.Any("cartID", cart.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add item to cart")
	}

	srv.log(ctx).Info("Item added to cart",
		slog.Any("cartID", cart.ID),
		slog.Any("productID", product.ID),
		slog.Int("quantity", input.Quantity),
		slog.Int("addOns", len(addOns)),
	)

	return srv.reload(ctx, cart.ID)
}

func (srv *cartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*entity.Cart, error) {
	if cartID == uuid.Nil || itemID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	cart, err := srv.findExisting(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.HasItem(itemID) {
		return nil, domainerrors.ErrCartItemNotInCart
	}
	if !cart.IsOpen() {
		return nil, domainerrors.ErrCartClosed
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		if err := cartRepo.DeleteItem(ctx, cartID, itemID); err != nil {
			if errors.Is(err, repository.ErrCartItemNotFound) {
				return domainerrors.ErrCartItemNotInCart
			}

			return err
		}

		remaining, err := cartRepo.FindCartByID(ctx, cartID)
		if err != nil {
			return errors.Wrap(err, "failed to reload cart")
		}
		if total, changed := srv.pricing.afterRemove(remaining); changed {
			return cartRepo.UpdateCartTotal(ctx, cartID, total)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove cart item")
	}

	srv.log(ctx).Info("Item removed from cart", slog.Any("cartID", cartID), slog.Any("itemID", itemID))

	return srv.reload(ctx, cartID)
}

func (srv *cartService) EmptyCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	if cartID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	cart, err := srv.findExisting(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.IsOpen() {
		return nil, domainerrors.ErrCartClosed
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartRepo := factory.NewCartRepository()

		if err := cartRepo.DeleteItems(ctx, cartID); err != nil {
			return err
		}
		if total, changed := srv.pricing.afterEmpty(cart); changed {
			return cartRepo.UpdateCartTotal(ctx, cartID, total)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to empty cart")
	}

	srv.log(ctx).Info("Cart emptied", slog.Any("cartID", cartID), slog.Int("items", len(cart.Items)))

	return srv.reload(ctx, cartID)
}

func (srv *cartService) CloseCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	if cartID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	cart, err := srv.findExisting(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := closeCart(ctx, srv.cartRepo, cart); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Cart closed", slog.Any("cartID", cartID), slog.String("total", cart.TotalPrice.String()))

	return srv.reload(ctx, cartID)
}

func (srv *cartService) MostRecentClosedCartWithoutOrder(ctx context.Context, customerID uuid.UUID) (*entity.Cart, error) {
	if customerID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID.WithDetails("clienteId")
	}

	cart, err := srv.cartRepo.FindLatestClosedCartWithoutOrder(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrNoClosedCart
		}

		return nil, errors.Wrap(err, "failed to find closed cart")
	}

	return cart, nil
}

func (srv *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	if cartID == uuid.Nil {
		return nil, domainerrors.ErrInvalidID
	}

	cart, err := srv.cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

// resolveAddOns loads the requested add-ons once each, in request order, and
// checks they can be sold with the product.
func (srv *cartService) resolveAddOns(ctx context.Context, product *entity.Product, ids []uuid.UUID) ([]*entity.AddOn, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	found, err := srv.addOnRepo.FindAddOnsByIDs(ctx, unique)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find add-ons")
	}
	byID := make(map[uuid.UUID]*entity.AddOn, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	addOns := make([]*entity.AddOn, 0, len(unique))
	for _, id := range unique {
		addOn, ok := byID[id]
		if !ok {
			return nil, domainerrors.ErrUnknownAddOn.WithDetails(id.String())
		}
		if !addOn.Active || !addOn.AppliesTo(product.Category) {
			return nil, domainerrors.ErrAddOnNotApplicable.WithDetails(addOn.Name)
		}
		addOns = append(addOns, addOn)
	}

	return addOns, nil
}

func (srv *cartService) resolveCart(ctx context.Context, input usecase.AddItemInput) (*entity.Cart, error) {
	if input.CartID == nil {
		return srv.GetOrCreateActiveCart(ctx, input.CustomerID)
	}

	return srv.findExisting(ctx, *input.CartID)
}

// findExisting loads a cart named by the caller. A missing cart is a bad argument.
func (srv *cartService) findExisting(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrUnknownCart
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return cart, nil
}

func (srv *cartService) reload(ctx context.Context, cartID uuid.UUID) (*entity.Cart, error) {
	cart, err := srv.cartRepo.FindCartByID(ctx, cartID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload cart")
	}

	return cart, nil
}

// closeCart applies the close preconditions and marks the cart closed.
func closeCart(ctx context.Context, cartRepo repository.CartRepository, cart *entity.Cart) error {
	if !cart.IsOpen() {
		return domainerrors.ErrCartClosed
	}
	if len(cart.Items) == 0 {
		return domainerrors.ErrCartEmpty
	}
	if err := cartRepo.UpdateCartState(ctx, cart.ID, false); err != nil {
		return errors.Wrap(err, "failed to close cart")
	}
	cart.State = false

	return nil
}
