package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProduct          = errors.New("pricing: product id must be positive")
	ErrNonPositiveQuantity     = errors.New("pricing: quantity must be greater than zero")
	ErrNegativeUnitPrice       = errors.New("pricing: unit price must not be negative")
	ErrNegativeDiscount        = errors.New("pricing: discount must not be negative")
	ErrNegativeTaxRate         = errors.New("pricing: tax rate must not be negative")
	ErrDiscountExceedsSubtotal = errors.New("pricing: discount exceeds line subtotal")
)

// ValidateLine rejects malformed line items before pricing. PriceLine
// itself performs no validation, so callers accepting external input
// run this first. A discount larger than the line subtotal is rejected
// here rather than clamped; the calculator would otherwise pass the
// negative taxable amount through silently.
func ValidateLine(item LineItem) error {
	if item.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if !item.Quantity.IsPositive() {
		return fmt.Errorf("product %d: %w", item.ProductID, ErrNonPositiveQuantity)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("product %d: %w", item.ProductID, ErrNegativeUnitPrice)
	}
	if item.Discount.IsNegative() {
		return fmt.Errorf("product %d: %w", item.ProductID, ErrNegativeDiscount)
	}
	if item.TaxRate.IsNegative() {
		return fmt.Errorf("product %d: %w", item.ProductID, ErrNegativeTaxRate)
	}
	if item.Discount.GreaterThan(item.UnitPrice.Mul(item.Quantity)) {
		return fmt.Errorf("product %d: discount %s against subtotal %s: %w",
			item.ProductID, item.Discount, item.UnitPrice.Mul(item.Quantity), ErrDiscountExceedsSubtotal)
	}
	return nil
}

// ValidateLines validates a whole document, reporting the first
// offending line by position.
func ValidateLines(items []LineItem) error {
	for i, item := range items {
		if err := ValidateLine(item); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}
