package domain

// VerifyOutcome is the typed result of validating a one-time code.
type VerifyOutcome string

const (
	VerifyAccepted           VerifyOutcome = "accepted"
	VerifyWrongCode          VerifyOutcome = "wrong_code"
	VerifyExpired            VerifyOutcome = "expired"
	VerifyMaxAttemptsReached VerifyOutcome = "max_attempts_reached"
)

// VerifyStatus is what a third-party phone verification gateway reports for a
// code check. Pending means the code has not matched yet but is still
// awaitable, which is distinct from an outright failure.
type VerifyStatus string

const (
	VerifyStatusApproved VerifyStatus = "approved"
	VerifyStatusPending  VerifyStatus = "pending"
	VerifyStatusFailed   VerifyStatus = "failed"
)
