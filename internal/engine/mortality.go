package engine

// ssaRow is one row of the SSA male cohort life table (2022), conditional on
// being alive at age 53: age, one-year mortality probability qx, and the
// number of survivors lx out of an initial cohort. Bundled verbatim per
// SPEC_FULL.md section 4.2 — do not "clean up" these values.
type ssaRow struct {
	age int
	qx  float64
	lx  float64
}

var ssaMaleLifeTable2022 = []ssaRow{
	{53, 0.007073, 88825}, {54, 0.007675, 88196}, {55, 0.008348, 87520},
	{56, 0.009051, 86789}, {57, 0.009822, 86003}, {58, 0.010669, 85159},
	{59, 0.011548, 84250}, {60, 0.012458, 83277}, {61, 0.013403, 82240},
	{62, 0.014450, 81138}, {63, 0.015571, 79965}, {64, 0.016737, 78720},
	{65, 0.017897, 77402}, {66, 0.019017, 76017}, {67, 0.020213, 74572},
	{68, 0.021569, 73064}, {69, 0.023088, 71488}, {70, 0.024828, 69838},
	{71, 0.026705, 68104}, {72, 0.028761, 66285}, {73, 0.031116, 64379},
	{74, 0.033861, 62376}, {75, 0.037088, 60263}, {76, 0.041126, 58028},
	{77, 0.045241, 55642}, {78, 0.049793, 53125}, {79, 0.054768, 50479},
	{80, 0.060660, 47715}, {81, 0.067027, 44820}, {82, 0.073999, 41816},
	{83, 0.081737, 38722}, {84, 0.090458, 35557}, {85, 0.100525, 32340},
	{86, 0.111793, 29089}, {87, 0.124494, 25837}, {88, 0.138398, 22621},
	{89, 0.153207, 19490}, {90, 0.169704, 16504}, {91, 0.187963, 13703},
	{92, 0.208395, 11128}, {93, 0.230808, 8809}, {94, 0.253914, 6776},
	{95, 0.277402, 5055}, {96, 0.300882, 3653}, {97, 0.324326, 2554},
	{98, 0.347332, 1726}, {99, 0.369430, 1126},
}

// mortalityWeights returns, for each age in the table, the unconditional
// probability of dying at that age given alive at the table's base age,
// normalized to sum to 1 over the closed horizon (ages 53-99).
func mortalityWeights() (ages []int, pDeath []float64) {
	ages = make([]int, len(ssaMaleLifeTable2022))
	dx := make([]float64, len(ssaMaleLifeTable2022))
	l0 := ssaMaleLifeTable2022[0].lx
	var total float64
	for i, row := range ssaMaleLifeTable2022 {
		ages[i] = row.age
		dx[i] = row.lx * row.qx
		total += dx[i] / l0
	}
	pDeath = make([]float64, len(dx))
	for i, d := range dx {
		pDeath[i] = (d / l0) / total
	}
	return ages, pDeath
}

// deathWeightedSuccess computes (p_success_death_weighted, p_success_to_age_99)
// from each path's failure index (n_years means "never failed") and the
// simulated horizon (start age and number of years).
//
// failIdx[i] == nYears is the "never failed within the horizon" convention.
func deathWeightedSuccess(failIdx []int, startAge, nYears int) (pDW, p99 float64) {
	ruinByT := make([]float64, nYears)
	n := float64(len(failIdx))
	for t := 0; t < nYears; t++ {
		var ruined float64
		for _, f := range failIdx {
			if f <= t {
				ruined++
			}
		}
		ruinByT[t] = ruined / n
	}

	ages, pDeath := mortalityWeights()
	var sum float64
	for i, age := range ages {
		t := age - startAge
		if t < 0 || t >= nYears {
			t = nYears - 1
		}
		survivalThroughAge := 1.0 - ruinByT[t]
		sum += pDeath[i] * survivalThroughAge
	}

	var neverFailed float64
	for _, f := range failIdx {
		if f >= nYears {
			neverFailed++
		}
	}
	return sum, neverFailed / n
}
