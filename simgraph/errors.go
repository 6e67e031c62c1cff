package simgraph

import "errors"

// Sentinel errors returned by this package. Callers branch on these with
// errors.Is; call sites wrap them with fmt.Errorf("...: %w", err) to attach
// the failing operation's context.
var (
	// ErrNumericDomain indicates a Poisson rate parameter that is negative,
	// NaN, or infinite — it can only arise from a degenerate group-count
	// configuration (e.g. maxGroups small enough to drive the denominator
	// of lambda to zero or negative).
	ErrNumericDomain = errors.New("simgraph: poisson rate is not a valid non-negative finite number")

	// ErrNegativeCount indicates a caller asked to create a negative number
	// of nodes.
	ErrNegativeCount = errors.New("simgraph: node count must be non-negative")

	// ErrEmptyBounds indicates an edge-count range whose lower bound exceeds
	// its upper bound.
	ErrEmptyBounds = errors.New("simgraph: bounds lower limit exceeds upper limit")
)
