// Package shepherd implements the bidirectional JSON event channel between
// the simulation and one external shepherd (recommender) subprocess.
//
// A Channel spawns the child with its stdin and stdout piped and keeps both
// open for the run's lifetime. Every outgoing event is encoded as a single
// JSON value and the write side is flushed immediately afterward, so the
// child can make progress without waiting on buffering. The read side
// decodes with a streaming decoder that tolerates whitespace between values
// instead of requiring newline-delimited framing, since a well-behaved child
// may emit either.
//
// A shepherd that closes its stdout before the simulation closes its stdin,
// or that emits a value that doesn't parse as the expected shape, is
// protocol-faulty: Channel reports this as ErrProtocol rather than silently
// treating it as end of input.
package shepherd
