package domain

// RejectionReason identifies which password rule rejected a candidate.
type RejectionReason string

const (
	RejectionNone                 RejectionReason = ""
	RejectionContextWord          RejectionReason = "context_word"
	RejectionDictionaryWord       RejectionReason = "dictionary_word"
	RejectionBreachedHash         RejectionReason = "breached_hash"
	RejectionSequenceOrRepetition RejectionReason = "sequence_or_repetition"
)

// PasswordEvaluation is the transient outcome of running a candidate password
// through the rule engine. It is never persisted.
type PasswordEvaluation struct {
	Accepted bool
	Reason   RejectionReason
}

// AcceptedPassword returns an evaluation with no rejection reason.
func AcceptedPassword() PasswordEvaluation {
	return PasswordEvaluation{Accepted: true}
}

// RejectedPassword returns an evaluation carrying the given reason.
func RejectedPassword(reason RejectionReason) PasswordEvaluation {
	return PasswordEvaluation{Reason: reason}
}
