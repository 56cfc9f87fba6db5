package domain

import "fmt"

// SaleConfig is the sale state of a single catalog item: whether it is on sale,
// the discount percentage and an optional promotional image.
//
// When onSale is false the percentage and image are kept as given but treated as
// inactive by every derived value.
type SaleConfig struct {
	onSale     bool
	percentOff int
	imageURL   *string
}

// NewSaleConfig creates a SaleConfig. percentOff must be within [0,100].
// An empty imageURL is stored as "no image".
func NewSaleConfig(onSale bool, percentOff int, imageURL string) (SaleConfig, error) {
	if percentOff < 0 || percentOff > 100 {
		return SaleConfig{}, ErrInvalidPercentOff
	}
	cfg := SaleConfig{onSale: onSale, percentOff: percentOff}
	if imageURL != "" {
		img := imageURL
		cfg.imageURL = &img
	}
	return cfg, nil
}

// ReconstructSaleConfig rebuilds a SaleConfig from persisted or remote state
// without validation. Out-of-range percentages are clamped.
func ReconstructSaleConfig(onSale bool, percentOff int, imageURL *string) SaleConfig {
	if percentOff < 0 {
		percentOff = 0
	}
	if percentOff > 100 {
		percentOff = 100
	}
	cfg := SaleConfig{onSale: onSale, percentOff: percentOff}
	if imageURL != nil {
		img := *imageURL
		cfg.imageURL = &img
	}
	return cfg
}

// NotOnSale returns the configuration that takes an item off sale.
func NotOnSale() SaleConfig {
	return SaleConfig{}
}

func (c SaleConfig) OnSale() bool {
	return c.onSale
}

// PercentOff returns the stored percentage, even when the item is not on sale.
func (c SaleConfig) PercentOff() int {
	return c.percentOff
}

// EffectivePercentOff returns the percentage consumers should honour: 0 unless on sale.
func (c SaleConfig) EffectivePercentOff() int {
	if !c.onSale {
		return 0
	}
	return c.percentOff
}

// ImageURL returns the promotional image and whether one is set.
func (c SaleConfig) ImageURL() (string, bool) {
	if c.imageURL == nil {
		return "", false
	}
	return *c.imageURL, true
}

// ImageURLPtr returns a copy of the image pointer, nil when unset.
func (c SaleConfig) ImageURLPtr() *string {
	if c.imageURL == nil {
		return nil
	}
	img := *c.imageURL
	return &img
}

// WithOnSale returns a copy of c with the on-sale flag replaced.
func (c SaleConfig) WithOnSale(onSale bool) SaleConfig {
	return ReconstructSaleConfig(onSale, c.percentOff, c.imageURL)
}

// SalePrice derives the sale price from basePrice. The second result is false
// when the item is not on sale; no price is produced in that case.
func (c SaleConfig) SalePrice(basePrice *Money) (*Money, bool) {
	if !c.onSale || basePrice == nil {
		return nil, false
	}
	discount := basePrice.MultiplyByFraction(int64(c.percentOff), 100)
	return basePrice.Subtract(discount), true
}

// Equal compares two configurations by value.
func (c SaleConfig) Equal(other SaleConfig) bool {
	if c.onSale != other.onSale || c.percentOff != other.percentOff {
		return false
	}
	a, aok := c.ImageURL()
	b, bok := other.ImageURL()
	return aok == bok && a == b
}

// String returns a short human-readable description.
func (c SaleConfig) String() string {
	if !c.onSale {
		return "not on sale"
	}
	if img, ok := c.ImageURL(); ok {
		return fmt.Sprintf("%d%% off (image %s)", c.percentOff, img)
	}
	return fmt.Sprintf("%d%% off", c.percentOff)
}
