package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("catalog: product not found")
)

// Repository provides read access to the product catalog.
type Repository interface {
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, sku, name, specification, unit,
	unit_price::text, tax_rate::text, available_stock`

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: get product %d: %w", id, err)
	}
	return product, nil
}

func (r *repository) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return products, nil
}

// scanProduct decodes numeric columns through their text form so prices
// and tax rates arrive as exact decimals rather than floats.
func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p         Product
		unitPrice string
		taxRate   string
	)
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Specification, &p.Unit,
		&unitPrice, &taxRate, &p.AvailableStock); err != nil {
		return nil, err
	}
	var err error
	if p.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return nil, fmt.Errorf("parse unit_price %q: %w", unitPrice, err)
	}
	if p.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return nil, fmt.Errorf("parse tax_rate %q: %w", taxRate, err)
	}
	return &p, nil
}
