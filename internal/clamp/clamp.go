// Package clamp provides safe modulo-clamping helpers used by Sanitize.
//
// These mirror coregex's internal/conv narrowing helpers: instead of
// narrowing integer widths, Sanitize needs to fold an arbitrary state
// index into range [0, n) without the usual footgun of Go's % operator
// on negative numbers.
package clamp

// Mod folds i into [0, n). Panics if n <= 0, the same discipline
// internal/conv uses for out-of-range narrowing: a non-positive modulus
// indicates a programming error (an automaton with zero states), not a
// recoverable condition.
func Mod(i, n int) int {
	if n <= 0 {
		panic("clamp.Mod: modulus must be positive")
	}
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}
