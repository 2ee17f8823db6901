package coach

import "errors"

// Error taxonomy of the coaching engine. Gateway-side failures
// (llm.ErrNotConfigured, llm.ErrUpstream) propagate from internal/llm.
var (
	// ErrValidation marks bad caller input, rejected before any external
	// call is made.
	ErrValidation = errors.New("invalid request")

	// ErrGeneration means the upstream answered but its output could not
	// be reduced to a usable artifact after all fallbacks. Nothing is
	// persisted in that case.
	ErrGeneration = errors.New("generated output could not be parsed")

	// ErrNotFound marks a missing required entity, e.g. the user's
	// health profile.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by stores when an insert loses a
	// duplicate-key race. Orchestrators recover by re-reading the row
	// the winner persisted.
	ErrConflict = errors.New("already exists")
)
