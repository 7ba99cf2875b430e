package vpa

import "fmt"

// DeterminizeConfig controls subset construction's resource usage,
// following the With*/DefaultConfig/Validate builder idiom used for
// dfa/lazy.Config.
type DeterminizeConfig struct {
	// Budget caps how many distinct subsets Determinize will explore
	// before giving up with ErrBudgetExceeded. Zero means unbounded.
	Budget int
	// Memoize indexes discovered subsets by a string key, so finding an
	// already-discovered subset is a map lookup. With it off, Determinize
	// finds one by a linear scan over every discovered subset instead.
	// Both deduplicate by content, so the result is the same either way;
	// only the lookup cost differs.
	Memoize bool
}

// DefaultConfig returns the default configuration to pass to Determinize:
// unbounded budget, memoization on.
func DefaultConfig() DeterminizeConfig {
	return DeterminizeConfig{Budget: 0, Memoize: true}
}

// WithBudget returns a copy of c with Budget set.
func (c DeterminizeConfig) WithBudget(budget int) DeterminizeConfig {
	c.Budget = budget
	return c
}

// WithMemoize returns a copy of c with Memoize set.
func (c DeterminizeConfig) WithMemoize(memoize bool) DeterminizeConfig {
	c.Memoize = memoize
	return c
}

// Validate reports whether c is usable, following dfa/lazy.Config's
// Validate pattern of rejecting negative resource limits early rather
// than letting them silently behave as unbounded or zero.
func (c DeterminizeConfig) Validate() error {
	if c.Budget < 0 {
		return fmt.Errorf("vpa: DeterminizeConfig.Budget must be >= 0, got %d", c.Budget)
	}
	return nil
}
