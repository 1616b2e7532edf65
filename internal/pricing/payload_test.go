package pricing

import (
	"testing"
)

func TestBuildSubmissionPayloadFieldRendering(t *testing.T) {
	payload := BuildSubmissionPayload([]LineItem{
		line(1, "100", "2", "20", "10"),
	})

	if payload.TotalAmount != "200.00" {
		t.Fatalf("expected total_amount 200.00 got %s", payload.TotalAmount)
	}
	if payload.DiscountAmount != "20.00" {
		t.Fatalf("expected discount_amount 20.00 got %s", payload.DiscountAmount)
	}
	if payload.TaxAmount != "18.00" {
		t.Fatalf("expected tax_amount 18.00 got %s", payload.TaxAmount)
	}
	if payload.TotalPayableAmount != "198.00" {
		t.Fatalf("expected total_payable_amount 198.00 got %s", payload.TotalPayableAmount)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(payload.Items))
	}
	if payload.Items[0].LineTotal != "198.00" {
		t.Fatalf("expected line_total 198.00 got %s", payload.Items[0].LineTotal)
	}
}

func TestBuildSubmissionPayloadRoundsOnlyAtBoundary(t *testing.T) {
	// Each line carries a third of a cent of tax; the full-precision sum
	// rounds to 0.50, while per-line rounding would have produced 0.51.
	items := []LineItem{
		line(1, "1.665", "1", "0", "10"),
		line(2, "1.665", "1", "0", "10"),
		line(3, "1.665", "1", "0", "10"),
	}
	payload := BuildSubmissionPayload(items)
	if payload.TaxAmount != "0.50" {
		t.Fatalf("expected boundary-rounded tax 0.50 got %s", payload.TaxAmount)
	}
}

func TestBuildSubmissionPayloadEmptyCart(t *testing.T) {
	payload := BuildSubmissionPayload(nil)
	if payload.TotalPayableAmount != "0.00" {
		t.Fatalf("expected 0.00 got %s", payload.TotalPayableAmount)
	}
	if len(payload.Items) != 0 {
		t.Fatalf("expected no items got %d", len(payload.Items))
	}
}

func TestFormatAmountLocaleGrouping(t *testing.T) {
	got := FormatAmount(dec("1234567.891"), "$", "en")
	if got != "$1,234,567.89" {
		t.Fatalf("expected $1,234,567.89 got %s", got)
	}
}

func TestFormatAmountFallsBackToEnglish(t *testing.T) {
	got := FormatAmount(dec("10"), "Tk ", "!!")
	if got != "Tk 10.00" {
		t.Fatalf("expected Tk 10.00 got %s", got)
	}
}
