package impl

import (
	"burgerhub/internal/domain/constants"
	"burgerhub/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// cartPricing decides how the stored cart total follows item changes.
type cartPricing interface {
	// afterAdd returns the total once quantity units at unitPrice were added.
	afterAdd(total, unitPrice decimal.Decimal, quantity int) decimal.Decimal
	// afterRemove returns the total for the remaining items and whether it changed.
	afterRemove(cart *entity.Cart) (decimal.Decimal, bool)
	// afterEmpty returns the total of a cart with no items and whether it changed.
	afterEmpty(cart *entity.Cart) (decimal.Decimal, bool)
}

func newCartPricing(mode string) cartPricing {
	if mode == constants.CartPricingLineSum {
		return lineSumPricing{}
	}

	return legacyPricing{}
}

// legacyPricing multiplies the running total by the quantity of the last
// added line and never lowers the total when items go away. Existing clients
// read totals computed this way.
type legacyPricing struct{}

func (legacyPricing) afterAdd(total, unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return total.Add(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

func (legacyPricing) afterRemove(cart *entity.Cart) (decimal.Decimal, bool) {
	return cart.TotalPrice, false
}

func (legacyPricing) afterEmpty(cart *entity.Cart) (decimal.Decimal, bool) {
	return cart.TotalPrice, false
}

// lineSumPricing keeps the total equal to the sum of unit price times quantity.
type lineSumPricing struct{}

func (lineSumPricing) afterAdd(total, unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return total.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

func (lineSumPricing) afterRemove(cart *entity.Cart) (decimal.Decimal, bool) {
	return cart.LineSum(), true
}

func (lineSumPricing) afterEmpty(*entity.Cart) (decimal.Decimal, bool) {
	return decimal.Zero, true
}
