package consol

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

var (
	ErrDocumentNotFound    = errors.New("consol: document not found")
	ErrUnknownDocumentType = errors.New("consol: unknown document type")
)

// Repository resolves a document reference into its raw line items.
type Repository interface {
	DocumentLines(ctx context.Context, ref DocumentRef) ([]pricing.LineItem, error)
}

type documentTables struct {
	header  string
	lines   string
	foreign string
}

var tablesByType = map[DocumentType]documentTables{
	DocumentSalesOrder:     {"sales_orders", "sales_order_lines", "sales_order_id"},
	DocumentPurchaseOrder:  {"purchase_orders", "purchase_order_lines", "purchase_order_id"},
	DocumentSalesInvoice:   {"sales_invoices", "sales_invoice_lines", "invoice_id"},
	DocumentSalesReturn:    {"sales_returns", "sales_return_lines", "sales_return_id"},
	DocumentPurchaseReturn: {"purchase_returns", "purchase_return_lines", "purchase_return_id"},
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// DocumentLines loads the line items of one document. A document that
// exists but holds no lines resolves to an empty slice, not an error.
func (r *repository) DocumentLines(ctx context.Context, ref DocumentRef) ([]pricing.LineItem, error) {
	tables, ok := tablesByType[ref.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, ref.Type)
	}

	var exists bool
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, tables.header),
		ref.ID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("consol: check %s %d: %w", ref.Type, ref.ID, err)
	}
	if !exists {
		return nil, fmt.Errorf("%s %d: %w", ref.Type, ref.ID, ErrDocumentNotFound)
	}

	query := fmt.Sprintf(`SELECT product_id, sku, specification, unit,
		quantity::text, unit_price::text, discount::text, tax_rate::text
		FROM %s WHERE %s = $1 ORDER BY line_order, id`,
		tables.lines, tables.foreign)

	rows, err := r.pool.Query(ctx, query, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("consol: load %s %d lines: %w", ref.Type, ref.ID, err)
	}
	defer rows.Close()

	items := make([]pricing.LineItem, 0)
	for rows.Next() {
		item, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("consol: scan %s %d line: %w", ref.Type, ref.ID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("consol: load %s %d lines: %w", ref.Type, ref.ID, err)
	}
	return items, nil
}

func scanLineItem(row pgx.Row) (pricing.LineItem, error) {
	var (
		item                            pricing.LineItem
		quantity, price, discount, rate string
	)
	if err := row.Scan(&item.ProductID, &item.SKU, &item.Specification,
		&item.Unit, &quantity, &price, &discount, &rate); err != nil {
		return pricing.LineItem{}, err
	}
	var err error
	if item.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return pricing.LineItem{}, fmt.Errorf("parse quantity %q: %w", quantity, err)
	}
	if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return pricing.LineItem{}, fmt.Errorf("parse unit_price %q: %w", price, err)
	}
	if item.Discount, err = decimal.NewFromString(discount); err != nil {
		return pricing.LineItem{}, fmt.Errorf("parse discount %q: %w", discount, err)
	}
	if item.TaxRate, err = decimal.NewFromString(rate); err != nil {
		return pricing.LineItem{}, fmt.Errorf("parse tax_rate %q: %w", rate, err)
	}
	return item, nil
}
