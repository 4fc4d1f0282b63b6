package spell

import "context"

// Oracle is the capability boundary to a word correctness and suggestion
// service. Inputs are case-insensitive; callers lower-case before calling.
// Implementations may be remote: CheckWord and Suggestions take a context
// and may fail, and the engine treats a failed check as correct (fail-open).
type Oracle interface {
	// CheckWord reports whether word is spelled correctly.
	CheckWord(ctx context.Context, word string) (bool, error)
	// Suggestions returns replacement candidates ranked best-first.
	Suggestions(ctx context.Context, word string) ([]string, error)
	// AddWord records word as correct for the lifetime of the oracle.
	// Idempotent.
	AddWord(word string) error
}
