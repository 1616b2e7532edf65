package consol

import (
	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

// groupKey discriminates consolidation rows. Unit price and tax rate are
// part of the key on purpose: the same product sold at a different price
// or tax rate must stay a separate row. Decimal String() is canonical
// for equal values, so 50 and 50.00 land in the same group.
type groupKey struct {
	productID int64
	unitPrice string
	taxRate   string
}

func keyFor(item pricing.LineItem) groupKey {
	return groupKey{
		productID: item.ProductID,
		unitPrice: item.UnitPrice.String(),
		taxRate:   item.TaxRate.String(),
	}
}

// Consolidate flattens the documents in order, prices every line, and
// merges lines sharing a grouping key by accumulating their quantities
// and amounts. Later lines add to an existing group, never replace it.
// Grand totals are summed over the merged rows, which keeps them equal
// to pricing.Aggregate over the flattened input.
func Consolidate(documents [][]pricing.LineItem) Consolidation {
	index := make(map[groupKey]int)
	lines := make([]Group, 0)

	for _, doc := range documents {
		for _, item := range doc {
			priced := pricing.PriceLine(item)
			key := keyFor(item)
			i, ok := index[key]
			if !ok {
				index[key] = len(lines)
				lines = append(lines, Group{
					ProductID:     priced.ProductID,
					SKU:           priced.SKU,
					Specification: priced.Specification,
					Unit:          priced.Unit,
					UnitPrice:     priced.UnitPrice,
					TaxRate:       priced.TaxRate,
					Quantity:      priced.Quantity,
					Subtotal:      priced.Subtotal,
					Discount:      priced.Discount,
					TaxAmount:     priced.TaxAmount,
					LineTotal:     priced.LineTotal,
				})
				continue
			}
			group := &lines[i]
			group.Quantity = group.Quantity.Add(priced.Quantity)
			group.Subtotal = group.Subtotal.Add(priced.Subtotal)
			group.Discount = group.Discount.Add(priced.Discount)
			group.TaxAmount = group.TaxAmount.Add(priced.TaxAmount)
			group.LineTotal = group.LineTotal.Add(priced.LineTotal)
		}
	}

	var totals pricing.DocumentTotals
	for _, group := range lines {
		totals.Subtotal = totals.Subtotal.Add(group.Subtotal)
		totals.Discount = totals.Discount.Add(group.Discount)
		totals.Tax = totals.Tax.Add(group.TaxAmount)
		totals.GrandTotal = totals.GrandTotal.Add(group.LineTotal)
	}

	return Consolidation{Lines: lines, Totals: totals}
}
