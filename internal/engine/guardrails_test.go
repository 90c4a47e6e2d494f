package engine

import "testing"

func TestGuardrailCut(t *testing.T) {
	cases := []struct {
		dd       float64
		wantCut  float64
	}{
		{0.0, 0},
		{0.10, 0},
		{0.15, 0.50},
		{0.20, 0.50},
		{0.25, 1.00},
		{0.90, 1.00},
	}
	for _, c := range cases {
		got := guardrailCut(c.dd, 0.15, 0.25, 0.50, 1.00)
		if got != c.wantCut {
			t.Fatalf("guardrailCut(%v) got %v want %v", c.dd, got, c.wantCut)
		}
	}
}

func TestFlexFractionsClipped(t *testing.T) {
	pre, post := flexFractions(99300, 20000, 52895, 10000)
	if pre <= 0 || pre >= 1 {
		t.Fatalf("expected pre flex fraction in (0,1), got %v", pre)
	}
	if post <= 0 || post >= 1 {
		t.Fatalf("expected post flex fraction in (0,1), got %v", post)
	}

	// Zero denominator must not divide by zero.
	pre, post = flexFractions(0, 20000, 0, 10000)
	if pre != 0 || post != 0 {
		t.Fatalf("expected zero flex fractions with zero denominators, got pre=%v post=%v", pre, post)
	}

	// A flex numerator larger than its denominator clips to 1, not >1.
	pre, _ = flexFractions(1000, 5000, 1, 1)
	if pre != 1 {
		t.Fatalf("expected clipped flex fraction of 1, got %v", pre)
	}
}
