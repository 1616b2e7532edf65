package pricing

// SubmissionItem mirrors one line of the persistence payload.
type SubmissionItem struct {
	ProductID     int64   `json:"product_id"`
	SKU           *string `json:"sku,omitempty"`
	Specification *string `json:"specification,omitempty"`
	Unit          string  `json:"unit,omitempty"`
	Quantity      string  `json:"quantity"`
	UnitPrice     string  `json:"unit_price"`
	Discount      string  `json:"discount"`
	TaxRate       string  `json:"tax_rate"`
	LineTotal     string  `json:"line_total"`
}

// SubmissionPayload is the shape the persistence API expects when a
// document is submitted. Amounts are rendered with two decimals here,
// at the boundary, never earlier.
type SubmissionPayload struct {
	TotalAmount        string           `json:"total_amount"`
	DiscountAmount     string           `json:"discount_amount"`
	TaxAmount          string           `json:"tax_amount"`
	TotalPayableAmount string           `json:"total_payable_amount"`
	Items              []SubmissionItem `json:"items"`
}

// BuildSubmissionPayload maps priced lines and their totals onto the
// persistence field names.
func BuildSubmissionPayload(items []LineItem) SubmissionPayload {
	totals := Aggregate(items)
	payload := SubmissionPayload{
		TotalAmount:        totals.Subtotal.StringFixed(2),
		DiscountAmount:     totals.Discount.StringFixed(2),
		TaxAmount:          totals.Tax.StringFixed(2),
		TotalPayableAmount: totals.GrandTotal.StringFixed(2),
		Items:              make([]SubmissionItem, 0, len(items)),
	}
	for _, item := range items {
		line := PriceLine(item)
		payload.Items = append(payload.Items, SubmissionItem{
			ProductID:     line.ProductID,
			SKU:           line.SKU,
			Specification: line.Specification,
			Unit:          line.Unit,
			Quantity:      line.Quantity.String(),
			UnitPrice:     line.UnitPrice.StringFixed(2),
			Discount:      line.Discount.StringFixed(2),
			TaxRate:       line.TaxRate.String(),
			LineTotal:     line.LineTotal.StringFixed(2),
		})
	}
	return payload
}
