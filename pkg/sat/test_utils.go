package sat

import "math/rand/v2"

// GenerateFormula builds a random formula with the given number of variables and clauses. Every clause is non-empty.
func GenerateFormula(rng *rand.Rand, variables uint64, clauses int) Formula {
	formula := Formula{
		Variables: variables,
		Clauses:   make([][]int64, clauses),
	}

	randomSign := func() int64 {
		if rng.Float32() < 0.5 {
			return -1
		}
		return 1
	}

	for i := range clauses {
		formula.Clauses[i] = make([]int64, 0, variables)
		for j := range variables {
			if rng.Float32() < 0.5 {
				formula.Clauses[i] = append(formula.Clauses[i], randomSign()*(1+int64(j)))
			}
		}

		if len(formula.Clauses[i]) == 0 {
			formula.Clauses[i] = append(formula.Clauses[i], randomSign()*(1+rng.Int64N(int64(variables))))
		}
	}

	return formula
}

// Satisfies checks that model is a consistent assignment which makes every clause of formula true
func Satisfies(formula Formula, model Model) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range model {
		if literal == 0 || literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range formula.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
