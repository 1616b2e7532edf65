package consol

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/pricing"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func item(productID int64, price, qty, discount, taxRate string) pricing.LineItem {
	return pricing.LineItem{
		ProductID: productID,
		UnitPrice: dec(price),
		Quantity:  dec(qty),
		Discount:  dec(discount),
		TaxRate:   dec(taxRate),
	}
}

func TestConsolidateMergesSameKeyAcrossDocuments(t *testing.T) {
	docs := [][]pricing.LineItem{
		{item(1, "50", "3", "0", "5")},
		{item(1, "50", "4", "0", "5")},
	}

	result := Consolidate(docs)
	if got, want := len(result.Lines), 1; got != want {
		t.Fatalf("expected %d group got %d", want, got)
	}
	group := result.Lines[0]
	if !group.Quantity.Equal(dec("7")) {
		t.Fatalf("expected merged quantity 7 got %s", group.Quantity)
	}
	if !group.Subtotal.Equal(dec("350")) {
		t.Fatalf("expected subtotal 350 got %s", group.Subtotal)
	}
	if !group.TaxAmount.Equal(dec("17.5")) {
		t.Fatalf("expected tax 17.5 got %s", group.TaxAmount)
	}
	if !group.LineTotal.Equal(dec("367.5")) {
		t.Fatalf("expected total 367.5 got %s", group.LineTotal)
	}
	if !result.Totals.GrandTotal.Equal(group.LineTotal) {
		t.Fatalf("grand total must equal the single group total")
	}
}

func TestConsolidateKeepsDifferentPricesApart(t *testing.T) {
	docs := [][]pricing.LineItem{
		{item(1, "50", "1", "0", "5")},
		{item(1, "60", "1", "0", "5")},
	}
	result := Consolidate(docs)
	if len(result.Lines) != 2 {
		t.Fatalf("price change must stay visible: expected 2 rows got %d", len(result.Lines))
	}
}

func TestConsolidateKeepsDifferentTaxRatesApart(t *testing.T) {
	docs := [][]pricing.LineItem{
		{item(1, "50", "1", "0", "5"), item(1, "50", "1", "0", "10")},
	}
	result := Consolidate(docs)
	if len(result.Lines) != 2 {
		t.Fatalf("tax change must stay visible: expected 2 rows got %d", len(result.Lines))
	}
}

func TestConsolidateMergesEquivalentDecimalForms(t *testing.T) {
	// 50 and 50.00 are the same price and must land in one group.
	docs := [][]pricing.LineItem{
		{item(1, "50", "1", "0", "5")},
		{item(1, "50.00", "2", "0", "5.0")},
	}
	result := Consolidate(docs)
	if len(result.Lines) != 1 {
		t.Fatalf("expected one group got %d", len(result.Lines))
	}
	if !result.Lines[0].Quantity.Equal(dec("3")) {
		t.Fatalf("expected quantity 3 got %s", result.Lines[0].Quantity)
	}
}

func TestConsolidateGrandTotalMatchesFlatAggregate(t *testing.T) {
	docs := [][]pricing.LineItem{
		{item(1, "50", "3", "5", "5"), item(2, "12.34", "2", "0", "7.5")},
		{},
		{item(1, "50", "4", "0", "5"), item(3, "99.99", "1", "10", "15")},
	}

	result := Consolidate(docs)

	flat := make([]pricing.LineItem, 0)
	for _, doc := range docs {
		flat = append(flat, doc...)
	}
	direct := pricing.Aggregate(flat)

	if !result.Totals.Subtotal.Equal(direct.Subtotal) ||
		!result.Totals.Discount.Equal(direct.Discount) ||
		!result.Totals.Tax.Equal(direct.Tax) ||
		!result.Totals.GrandTotal.Equal(direct.GrandTotal) {
		t.Fatalf("grouping changed the grand totals: %+v vs %+v", result.Totals, direct)
	}
}

func TestConsolidateFirstLineSeedsDescriptiveFields(t *testing.T) {
	skuA := "A-1"
	skuB := "A-1-dup"
	first := item(1, "50", "1", "0", "5")
	first.SKU = &skuA
	first.Unit = "box"
	second := item(1, "50", "2", "0", "5")
	second.SKU = &skuB

	result := Consolidate([][]pricing.LineItem{{first}, {second}})
	if len(result.Lines) != 1 {
		t.Fatalf("expected one group got %d", len(result.Lines))
	}
	if result.Lines[0].SKU == nil || *result.Lines[0].SKU != skuA {
		t.Fatalf("descriptive fields must come from the first line encountered")
	}
	if result.Lines[0].Unit != "box" {
		t.Fatalf("unit must come from the first line encountered")
	}
}

func TestConsolidatePreservesFirstEncounterOrder(t *testing.T) {
	docs := [][]pricing.LineItem{
		{item(3, "5", "1", "0", "0"), item(1, "5", "1", "0", "0")},
		{item(2, "5", "1", "0", "0"), item(3, "5", "1", "0", "0")},
	}
	result := Consolidate(docs)
	if len(result.Lines) != 3 {
		t.Fatalf("expected 3 groups got %d", len(result.Lines))
	}
	order := []int64{result.Lines[0].ProductID, result.Lines[1].ProductID, result.Lines[2].ProductID}
	if order[0] != 3 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("expected first-encounter order [3 1 2] got %v", order)
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	result := Consolidate(nil)
	if result.Lines == nil || len(result.Lines) != 0 {
		t.Fatalf("expected empty non-nil lines got %#v", result.Lines)
	}
	if !result.Totals.GrandTotal.IsZero() {
		t.Fatalf("expected zero totals got %+v", result.Totals)
	}

	withEmptyDocs := Consolidate([][]pricing.LineItem{{}, nil, {}})
	if len(withEmptyDocs.Lines) != 0 {
		t.Fatalf("empty documents must contribute nothing")
	}
}
