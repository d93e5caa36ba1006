package port

import "context"

// WordListSource streams a lowercase dictionary word list. Scan calls fn for
// each word until fn returns false or the list is exhausted; every call to
// Scan restarts from the beginning. Implementations must not require the
// whole list in memory.
type WordListSource interface {
	Scan(ctx context.Context, fn func(word string) bool) error
}

// BreachedHashSource answers membership queries against the corpus of legacy
// digests of previously breached passwords.
type BreachedHashSource interface {
	Contains(ctx context.Context, digest string) (bool, error)
}
