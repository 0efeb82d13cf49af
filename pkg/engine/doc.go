// Package engine implements the conversational state machine that collects a
// cyber-crime complaint one field per turn: state dispatch, validation-gated
// transitions, the repeated transaction loop, the path-addressed edit state,
// and finalization into an immutable record.
package engine
