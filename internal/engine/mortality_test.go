package engine

import "testing"

func TestMortalityWeightsSumToOne(t *testing.T) {
	_, pDeath := mortalityWeights()
	var sum float64
	for _, p := range pDeath {
		if p < 0 {
			t.Fatalf("negative death probability: %v", p)
		}
		sum += p
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("death weights should sum to 1, got %v", sum)
	}
}

func TestDeathWeightedSuccessAllPathsSurvive(t *testing.T) {
	nYears := 47
	failIdx := make([]int, 200)
	for i := range failIdx {
		failIdx[i] = nYears // never failed
	}
	pDW, p99 := deathWeightedSuccess(failIdx, 53, nYears)
	if pDW < 1-1e-9 {
		t.Fatalf("expected p_dw=1 when no path fails, got %v", pDW)
	}
	if p99 != 1 {
		t.Fatalf("expected p99=1 when no path fails, got %v", p99)
	}
}

func TestDeathWeightedSuccessAllPathsFailImmediately(t *testing.T) {
	nYears := 47
	failIdx := make([]int, 200)
	for i := range failIdx {
		failIdx[i] = 0
	}
	pDW, p99 := deathWeightedSuccess(failIdx, 53, nYears)
	if pDW != 0 {
		t.Fatalf("expected p_dw=0 when every path fails at year 0, got %v", pDW)
	}
	if p99 != 0 {
		t.Fatalf("expected p99=0 when every path fails at year 0, got %v", p99)
	}
}

// TestDeathWeightedSuccessBelowTableStartAgeMapsToLastYear guards against
// attributing SSA-table ages below start_age to year 0 instead of the last
// modeled year: for a start_age above the table's base age of 53, every age
// in [53, start_age-1] must fall back to n_years-1, matching the reference
// implementation's age->t mapping.
func TestDeathWeightedSuccessBelowTableStartAgeMapsToLastYear(t *testing.T) {
	startAge := 60
	nYears := 40 // ages 60..99
	lastT := nYears - 1

	failIdx := make([]int, 100)
	for i := range failIdx {
		failIdx[i] = lastT // every path fails in the final modeled year
	}

	pDW, p99 := deathWeightedSuccess(failIdx, startAge, nYears)

	ages, pDeath := mortalityWeights()
	var want float64
	for i, age := range ages {
		t := age - startAge
		if t < 0 || t >= nYears {
			t = lastT
		}
		survival := 1.0
		if t == lastT {
			survival = 0.0
		}
		want += pDeath[i] * survival
	}

	if diff := pDW - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("p_dw = %v, want %v (ages below start_age must map to the last modeled year, not year 0)", pDW, want)
	}
	if p99 != 0 {
		t.Fatalf("expected p99=0 when every path fails, got %v", p99)
	}
}
