package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

func TestCalculateSavings(t *testing.T) {
	pc := NewPricingCalculator()
	base := domain.NewMoney(4000, 100)

	onSale, err := domain.NewSaleConfig(true, 25, "")
	require.NoError(t, err)
	assert.Equal(t, "10.00", pc.CalculateSavings(base, onSale).String())

	price, ok := pc.SalePrice(base, onSale)
	require.True(t, ok)
	assert.Equal(t, "30.00", price.String())

	offSale, err := domain.NewSaleConfig(false, 25, "")
	require.NoError(t, err)
	assert.Equal(t, "0.00", pc.CalculateSavings(base, offSale).String())
}
