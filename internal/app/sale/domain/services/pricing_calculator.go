package services

import (
	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// PricingCalculator derives the display prices of an item from its base price
// and sale configuration.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// SalePrice returns the sale price, or false when the item is not on sale.
func (pc *PricingCalculator) SalePrice(basePrice *domain.Money, cfg domain.SaleConfig) (*domain.Money, bool) {
	return cfg.SalePrice(basePrice)
}

// CalculateSavings calculates how much money is saved while the sale is active.
func (pc *PricingCalculator) CalculateSavings(basePrice *domain.Money, cfg domain.SaleConfig) *domain.Money {
	salePrice, ok := cfg.SalePrice(basePrice)
	if !ok {
		return domain.Zero()
	}
	return basePrice.Subtract(salePrice)
}
