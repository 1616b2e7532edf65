package pos

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/catalog"
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

var (
	ErrLineNotFound = errors.New("pos: no cart line for product")
)

// StockError reports a rejected cart transition. It is a recoverable,
// reported condition for the cashier, never a failure of the cart: the
// cart state is untouched when one is returned.
type StockError struct {
	ProductID int64
	Available int64
	Reason    string
}

func (e *StockError) Error() string { return e.Reason }

// CartLine is one working POS line. AvailableStock is the ceiling
// snapshot captured when the product was first added; it is not
// re-validated against the catalog within the session.
type CartLine struct {
	pricing.LineItem
	Name           string `json:"name"`
	AvailableStock int64  `json:"available_stock"`
}

// Cart is the working line set of one POS session, keyed by product id.
// Every transition is a total function: invalid transitions return a
// reported reason and leave the cart unchanged.
type Cart struct {
	Lines map[int64]CartLine `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{Lines: make(map[int64]CartLine)}
}

var one = decimal.NewFromInt(1)

// Add puts a product into the cart with quantity 1, seeded from the
// catalog record. When a line for the product already exists the call
// behaves as Increment. A product with no stock is rejected.
func (c *Cart) Add(product catalog.Product) error {
	if line, ok := c.Lines[product.ID]; ok {
		return c.increment(line)
	}
	if product.AvailableStock <= 0 {
		return &StockError{
			ProductID: product.ID,
			Available: 0,
			Reason:    fmt.Sprintf("%s is out of stock", product.Name),
		}
	}
	sku := product.SKU
	c.Lines[product.ID] = CartLine{
		LineItem: pricing.LineItem{
			ProductID:     product.ID,
			SKU:           &sku,
			Specification: product.Specification,
			Unit:          product.Unit,
			Quantity:      one,
			UnitPrice:     product.UnitPrice,
			TaxRate:       product.TaxRate,
		},
		Name:           product.Name,
		AvailableStock: product.AvailableStock,
	}
	return nil
}

// Increment raises the line quantity by one, bounded by the stock
// ceiling captured at add time.
func (c *Cart) Increment(productID int64) error {
	line, ok := c.Lines[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrLineNotFound)
	}
	return c.increment(line)
}

func (c *Cart) increment(line CartLine) error {
	next := line.Quantity.Add(one)
	if next.GreaterThan(decimal.NewFromInt(line.AvailableStock)) {
		return &StockError{
			ProductID: line.ProductID,
			Available: line.AvailableStock,
			Reason:    fmt.Sprintf("cannot exceed available stock of %d", line.AvailableStock),
		}
	}
	line.Quantity = next
	c.Lines[line.ProductID] = line
	return nil
}

// Decrement lowers the line quantity by one. A decrement that would
// reach zero is rejected rather than removing the line; removal is only
// ever explicit via Remove. This asymmetry is deliberate.
func (c *Cart) Decrement(productID int64) error {
	line, ok := c.Lines[productID]
	if !ok {
		return fmt.Errorf("product %d: %w", productID, ErrLineNotFound)
	}
	if !line.Quantity.GreaterThan(one) {
		return &StockError{
			ProductID: productID,
			Available: line.AvailableStock,
			Reason:    "quantity cannot go below 1; remove the line instead",
		}
	}
	line.Quantity = line.Quantity.Sub(one)
	c.Lines[productID] = line
	return nil
}

// Remove deletes the line unconditionally. Removing an absent line is a
// no-op.
func (c *Cart) Remove(productID int64) {
	delete(c.Lines, productID)
}

// Reset clears all lines, used when starting a new transaction.
func (c *Cart) Reset() {
	c.Lines = make(map[int64]CartLine)
}

// Items returns the lines in stable product-id order for display.
func (c *Cart) Items() []CartLine {
	items := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, line)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items
}

// LineItems exposes the cart contents as plain line items for the
// aggregator and the submission payload.
func (c *Cart) LineItems() []pricing.LineItem {
	items := c.Items()
	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.LineItem)
	}
	return lines
}

// Totals recomputes the display totals over the current lines.
func (c *Cart) Totals() pricing.DocumentTotals {
	return pricing.Aggregate(c.LineItems())
}
