package pricing

import (
	"errors"
	"testing"
)

func TestValidateLineAcceptsWellFormedInput(t *testing.T) {
	if err := ValidateLine(line(1, "100", "2", "20", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateLineRejections(t *testing.T) {
	cases := []struct {
		name string
		item LineItem
		want error
	}{
		{"missing product", line(0, "10", "1", "0", "0"), ErrInvalidProduct},
		{"zero quantity", line(1, "10", "0", "0", "0"), ErrNonPositiveQuantity},
		{"negative quantity", line(1, "10", "-2", "0", "0"), ErrNonPositiveQuantity},
		{"negative price", line(1, "-10", "1", "0", "0"), ErrNegativeUnitPrice},
		{"negative discount", line(1, "10", "1", "-1", "0"), ErrNegativeDiscount},
		{"negative tax rate", line(1, "10", "1", "0", "-5"), ErrNegativeTaxRate},
		{"discount above subtotal", line(1, "10", "1", "15", "0"), ErrDiscountExceedsSubtotal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLine(tc.item)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, err)
			}
		})
	}
}

func TestValidateLineAllowsDiscountEqualToSubtotal(t *testing.T) {
	if err := ValidateLine(line(1, "10", "2", "20", "5")); err != nil {
		t.Fatalf("discount equal to subtotal must pass, got %v", err)
	}
}

func TestValidateLineAllowsTaxRateAboveHundred(t *testing.T) {
	if err := ValidateLine(line(1, "10", "1", "0", "120")); err != nil {
		t.Fatalf("tax rate above 100 has no enforced upper bound, got %v", err)
	}
}

func TestValidateLinesReportsPosition(t *testing.T) {
	items := []LineItem{
		line(1, "10", "1", "0", "0"),
		line(2, "10", "0", "0", "0"),
	}
	err := ValidateLines(items)
	if !errors.Is(err, ErrNonPositiveQuantity) {
		t.Fatalf("expected quantity error got %v", err)
	}
	if got, want := err.Error()[:6], "line 2"; got != want {
		t.Fatalf("expected error to name line 2, got %q", err.Error())
	}
}
