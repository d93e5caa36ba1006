package security

import (
	"context"
	"fmt"
	"strings"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
)

// DefaultContextWords are the brand terms no password may contain.
var DefaultContextWords = []string{"grocify"}

// PasswordRuleEngine evaluates candidate passwords against lexical and
// structural rules. Checks run cheapest first and stop at the first
// violation, so the surfaced reason is always the earliest failing rule.
// The engine holds no mutable state and is safe for concurrent use.
type PasswordRuleEngine struct {
	contextWords []string
	words        port.WordListSource
	breaches     port.BreachedHashSource
}

// NewPasswordRuleEngine constructs an engine over the given word list and
// breach corpus. When contextWords is empty the default brand terms apply.
func NewPasswordRuleEngine(words port.WordListSource, breaches port.BreachedHashSource, contextWords ...string) *PasswordRuleEngine {
	if len(contextWords) == 0 {
		contextWords = DefaultContextWords
	}
	lowered := make([]string, len(contextWords))
	for i, w := range contextWords {
		lowered[i] = strings.ToLower(w)
	}
	return &PasswordRuleEngine{contextWords: lowered, words: words, breaches: breaches}
}

// Evaluate runs the candidate through every rule in order. A returned error
// means a collaborator failed, not that the password was rejected.
func (e *PasswordRuleEngine) Evaluate(ctx context.Context, candidate string) (domain.PasswordEvaluation, error) {
	lowered := strings.ToLower(candidate)

	for _, word := range e.contextWords {
		if strings.Contains(lowered, word) {
			return domain.RejectedPassword(domain.RejectionContextWord), nil
		}
	}

	// The stored list is lowercase, so the lowered candidate makes the
	// substring match effectively case-insensitive.
	found := false
	err := e.words.Scan(ctx, func(word string) bool {
		if word != "" && strings.Contains(lowered, word) {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return domain.PasswordEvaluation{}, fmt.Errorf("scan word list: %w", err)
	}
	if found {
		return domain.RejectedPassword(domain.RejectionDictionaryWord), nil
	}

	breached, err := e.breaches.Contains(ctx, LegacyDigest(candidate))
	if err != nil {
		return domain.PasswordEvaluation{}, fmt.Errorf("check breach corpus: %w", err)
	}
	if breached {
		return domain.RejectedPassword(domain.RejectionBreachedHash), nil
	}

	if containsRun(candidate) {
		return domain.RejectedPassword(domain.RejectionSequenceOrRepetition), nil
	}

	return domain.AcceptedPassword(), nil
}
