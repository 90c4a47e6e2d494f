package engine

import "testing"

func TestMedian(t *testing.T) {
	cases := []struct {
		name string
		vals []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{5, 1, 3}, 3},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := median(c.vals)
			if got != c.want {
				t.Fatalf("median(%v) = %v, want %v", c.vals, got, c.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	vals := []float64{9, 1, 5}
	_ = median(vals)
	if vals[0] != 9 || vals[1] != 1 || vals[2] != 5 {
		t.Fatalf("median mutated its input slice: %v", vals)
	}
}

func TestAggregateInfeasibleReturnsZeroValue(t *testing.T) {
	out := PathOutcome{Infeasible: true}
	result := Aggregate(out)
	if result.PSuccessDeathWeighted != 0 || result.PSuccessToAge99 != 0 {
		t.Fatalf("expected a zero-value result for an infeasible outcome, got %+v", result)
	}
}

func TestAggregateAllPathsSucceed(t *testing.T) {
	n := 10
	nYears := 5
	out := PathOutcome{
		StartAge:      60,
		NYears:        nYears,
		HomeValueReal: 500000,
		Cash:          make([]float64, n),
		BaseTreas:     make([]float64, n),
		Risky:         make([]float64, n),
		LoanBucket:    make([]float64, n),
		LoanBal:       make([]float64, n),
		RMBalance:     make([]float64, n),
		MaxDDRisky:    make([]float64, n),
		MaxDDTotal:    make([]float64, n),
		FailIdx:       make([]int, n),
		RMEverUsed:    make([]bool, n),
	}
	for i := 0; i < n; i++ {
		out.Risky[i] = 100000 + float64(i)*1000
		out.FailIdx[i] = nYears // never failed
	}

	result := Aggregate(out)

	if result.PSuccessDeathWeighted < 1-1e-9 {
		t.Fatalf("expected p_success_death_weighted near 1, got %v", result.PSuccessDeathWeighted)
	}
	if result.PSuccessToAge99 != 1 {
		t.Fatalf("expected p_success_to_age_99 = 1, got %v", result.PSuccessToAge99)
	}
	if result.PAnyRMDraw != 0 {
		t.Fatalf("no path used the RM, expected p_any_rm_draw = 0, got %v", result.PAnyRMDraw)
	}
	if result.HomeEquityRemainingMedian != out.HomeValueReal {
		t.Fatalf("with no RM balance, home equity remaining should equal home value: got %v want %v", result.HomeEquityRemainingMedian, out.HomeValueReal)
	}
}

func TestAggregatePAnyRMDrawCountsRMEverUsed(t *testing.T) {
	n := 4
	out := PathOutcome{
		StartAge:      60,
		NYears:        3,
		HomeValueReal: 300000,
		Cash:          make([]float64, n),
		BaseTreas:     make([]float64, n),
		Risky:         make([]float64, n),
		LoanBucket:    make([]float64, n),
		LoanBal:       make([]float64, n),
		RMBalance:     make([]float64, n),
		MaxDDRisky:    make([]float64, n),
		MaxDDTotal:    make([]float64, n),
		FailIdx:       []int{3, 3, 3, 3},
		RMEverUsed:    []bool{true, false, true, false},
	}

	result := Aggregate(out)

	if result.PAnyRMDraw != 0.5 {
		t.Fatalf("expected p_any_rm_draw = 0.5 with 2 of 4 paths drawing, got %v", result.PAnyRMDraw)
	}
}
