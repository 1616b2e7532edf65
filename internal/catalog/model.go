package catalog

import "github.com/shopspring/decimal"

// Product is the catalog record that seeds new cart lines: default unit
// price, default tax rate and the stock level at the moment of lookup.
// The engine trusts these values as given and does not re-query them
// within a cart session.
type Product struct {
	ID             int64           `json:"id" db:"id"`
	SKU            string          `json:"sku" db:"sku"`
	Name           string          `json:"name" db:"name"`
	Specification  *string         `json:"specification,omitempty" db:"specification"`
	Unit           string          `json:"unit" db:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price" db:"unit_price"`
	TaxRate        decimal.Decimal `json:"tax_rate" db:"tax_rate"`
	AvailableStock int64           `json:"available_stock" db:"available_stock"`
}
