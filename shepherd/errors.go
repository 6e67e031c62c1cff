package shepherd

import "errors"

// ErrIO marks a failure spawning the child or reading/writing/flushing its
// pipes. Always fatal to the run that observed it.
var ErrIO = errors.New("shepherd: io error")

// ErrProtocol marks a child that violated the wire contract: it emitted a
// value that doesn't parse as the expected shape, or it closed its output
// before the simulation closed its input. Always fatal to the run that
// observed it.
var ErrProtocol = errors.New("shepherd: protocol error")
