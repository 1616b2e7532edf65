package consol

import (
	"github.com/shopspring/decimal"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// Group is one consolidated row: every line sharing a grouping key of
// (product, unit price, tax rate) merged into a single accumulator. The
// descriptive fields come from the first line encountered for the key.
type Group struct {
	ProductID     int64           `json:"product_id"`
	SKU           *string         `json:"sku,omitempty"`
	Specification *string         `json:"specification,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Quantity      decimal.Decimal `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// Consolidation is the merged view over several documents: grouped rows
// in first-encounter order plus grand totals summed over those rows.
type Consolidation struct {
	Lines  []Group                `json:"lines"`
	Totals pricing.DocumentTotals `json:"totals"`
}

// DocumentType selects which document family a reference points at.
type DocumentType string

const (
	DocumentSalesOrder     DocumentType = "SALES_ORDER"
	DocumentPurchaseOrder  DocumentType = "PURCHASE_ORDER"
	DocumentSalesInvoice   DocumentType = "SALES_INVOICE"
	DocumentSalesReturn    DocumentType = "SALES_RETURN"
	DocumentPurchaseReturn DocumentType = "PURCHASE_RETURN"
)

// Valid reports whether the document type is one the engine understands.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentSalesOrder, DocumentPurchaseOrder, DocumentSalesInvoice,
		DocumentSalesReturn, DocumentPurchaseReturn:
		return true
	}
	return false
}

// DocumentRef identifies one source document to resolve and merge.
type DocumentRef struct {
	Type DocumentType `json:"type"`
	ID   int64        `json:"id"`
}
