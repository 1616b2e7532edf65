package pricing

// PriceLine computes the derived figures for a single line item.
// The order is fixed: gross subtotal, then the absolute discount, then
// tax on the discounted amount. Tax must never be computed on the gross
// subtotal. Intermediate values keep full decimal precision; rounding
// happens only at the presentation boundary.
func PriceLine(item LineItem) PricedLine {
	subtotal := item.UnitPrice.Mul(item.Quantity)
	taxable := subtotal.Sub(item.Discount)
	tax := taxable.Mul(item.TaxRate).Shift(-2)
	return PricedLine{
		LineItem:      item,
		Subtotal:      subtotal,
		TaxableAmount: taxable,
		TaxAmount:     tax,
		LineTotal:     taxable.Add(tax),
	}
}

// Aggregate prices every item and sums the component figures into
// document totals. Summation is componentwise and order independent;
// an empty input yields all-zero totals.
func Aggregate(items []LineItem) DocumentTotals {
	var totals DocumentTotals
	for _, item := range items {
		line := PriceLine(item)
		totals.Subtotal = totals.Subtotal.Add(line.Subtotal)
		totals.Discount = totals.Discount.Add(line.Discount)
		totals.Tax = totals.Tax.Add(line.TaxAmount)
		totals.GrandTotal = totals.GrandTotal.Add(line.LineTotal)
	}
	return totals
}
