package vpa

import (
	"errors"
	"fmt"
)

// IllFormedKind classifies why an automaton failed [Check] or a merge.
// This is the closed taxonomy from spec §4.7; it never grows at runtime.
type IllFormedKind uint8

const (
	// OutOfBounds: some destination index or initial index is >= len(States).
	OutOfBounds IllFormedKind = iota
	// EdgeMergeConflict: attempted to fuse edges of different Kind.
	EdgeMergeConflict
	// IndexMergeConflict: attempted to fuse two unequal Single controls.
	IndexMergeConflict
	// CallMergeConflict: attempted to fuse unequal actions.
	CallMergeConflict
	// PushMergeConflict: attempted to fuse unequal push symbols on two call edges.
	PushMergeConflict
	// WildcardMergeConflict: an Any layer was merged with a non-empty Specific layer.
	WildcardMergeConflict
	// VecMergeConflict: two Specific entries have overlapping ranges.
	VecMergeConflict
	// CurryOptMergeConflict: a stack-top wildcard layer overlaps a more specific layer.
	CurryOptMergeConflict
	// MapMergeConflict: two different values collide on the same stack-top key.
	MapMergeConflict
	// InconsistentKind: a state's outgoing edge kind disagrees with its triggering token's kind.
	InconsistentKind
)

// String names an IllFormedKind, following coregex's ErrorKind.String pattern.
func (k IllFormedKind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case EdgeMergeConflict:
		return "EdgeMergeConflict"
	case IndexMergeConflict:
		return "IndexMergeConflict"
	case CallMergeConflict:
		return "CallMergeConflict"
	case PushMergeConflict:
		return "PushMergeConflict"
	case WildcardMergeConflict:
		return "WildcardMergeConflict"
	case VecMergeConflict:
		return "VecMergeConflict"
	case CurryOptMergeConflict:
		return "CurryOptMergeConflict"
	case MapMergeConflict:
		return "MapMergeConflict"
	case InconsistentKind:
		return "InconsistentKind"
	default:
		return fmt.Sprintf("IllFormedKind(%d)", uint8(k))
	}
}

// IllFormed reports a structural violation detected by [Check] or by a
// merge, following the same Kind+payload+Error()/Unwrap()/Is() shape as
// coregex's dfa/lazy.DFAError. The payload fields are populated according
// to Kind; fields irrelevant to the reported Kind are left zero.
type IllFormed struct {
	Kind IllFormedKind

	// OutOfBounds
	Index int

	// EdgeMergeConflict
	EdgeA, EdgeB Kind

	// IndexMergeConflict
	A, B int

	// PushMergeConflict — typed as any since the stack-symbol type S is
	// generic and IllFormed itself is not (a non-generic error type is
	// simpler to use with errors.Is/As across every instantiation of
	// Automaton).
	PushA, PushB any

	// WildcardMergeConflict / VecMergeConflict / CurryOptMergeConflict —
	// human-readable description of the offending range(s), each written
	// as "[first, last]".
	RangeDesc string

	// CurryOptMergeConflict
	StackTop any // the conflicting optional stack-top symbol, if Some

	// MapMergeConflict
	MapKey any

	// InconsistentKind
	State               int
	TokenKind, FoundKind Kind

	// Cause, if non-nil, is wrapped for errors.Unwrap/errors.Is/As chains.
	Cause error
}

// Error implements error.
func (e *IllFormed) Error() string {
	switch e.Kind {
	case OutOfBounds:
		return fmt.Sprintf("ill-formed automaton: state index %d out of bounds", e.Index)
	case EdgeMergeConflict:
		return fmt.Sprintf("ill-formed automaton: cannot merge %s edge with %s edge", e.EdgeA, e.EdgeB)
	case IndexMergeConflict:
		return fmt.Sprintf("ill-formed automaton: cannot merge distinct single states %d and %d", e.A, e.B)
	case CallMergeConflict:
		return "ill-formed automaton: cannot merge edges with unequal actions"
	case PushMergeConflict:
		return fmt.Sprintf("ill-formed automaton: cannot merge call edges pushing %v and %v", e.PushA, e.PushB)
	case WildcardMergeConflict:
		return fmt.Sprintf("ill-formed automaton: wildcard conflicts with specific range(s) %s", e.RangeDesc)
	case VecMergeConflict:
		return fmt.Sprintf("ill-formed automaton: overlapping ranges %s", e.RangeDesc)
	case CurryOptMergeConflict:
		return fmt.Sprintf("ill-formed automaton: stack-top wildcard conflicts with entry for %v on %s", e.StackTop, e.RangeDesc)
	case MapMergeConflict:
		return fmt.Sprintf("ill-formed automaton: conflicting values for stack-top key %v", e.MapKey)
	case InconsistentKind:
		return fmt.Sprintf("ill-formed automaton: state %d has a %s edge triggered by a %s token", e.State, e.FoundKind, e.TokenKind)
	default:
		return fmt.Sprintf("ill-formed automaton: %s", e.Kind)
	}
}

// Unwrap supports errors.Is/errors.As chains through Cause.
func (e *IllFormed) Unwrap() error { return e.Cause }

// Is reports whether target is an *IllFormed with the same Kind, so
// callers can write errors.Is(err, &IllFormed{Kind: vpa.VecMergeConflict}).
func (e *IllFormed) Is(target error) bool {
	var t *IllFormed
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// ErrEmptyControl is returned by CollectSingle/CollectSet when no indices
// are supplied.
var ErrEmptyControl = errors.New("vpa: cannot collect control from an empty set of indices")

// ErrNotSingle is returned by CollectSingle when more than one distinct
// index is supplied.
var ErrNotSingle = errors.New("vpa: cannot collect more than one index into a Single control")

// ErrBudgetExceeded is returned by Determinize when the worklist explores
// more subsets than DeterminizeConfig.Budget allows. It is distinct from
// *IllFormed: it means "gave up", not "structurally invalid".
var ErrBudgetExceeded = errors.New("vpa: determinize exceeded its subset exploration budget")
