package pricing

import "github.com/shopspring/decimal"

// LineItem is one row of a document as supplied by the upstream source
// (order form, invoice fetch, POS catalog seed). Discount is an absolute
// amount, not a percentage. The descriptive fields never participate in
// computation but must survive pricing and consolidation untouched.
type LineItem struct {
	ProductID     int64           `json:"product_id"`
	SKU           *string         `json:"sku,omitempty"`
	Specification *string         `json:"specification,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
}

// PricedLine extends a LineItem with the derived figures. It is
// recomputed from current line state on every request and never
// persisted.
type PricedLine struct {
	LineItem
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// DocumentTotals carries the document-level sums of the per-line
// figures. The zero value is the identity for aggregation.
type DocumentTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
