package domain

// Result carries a user-facing outcome together with the retry bookkeeping
// used by the coordinator escalation policy. IsSystemError true implies Value
// is a safe default and Message is the generic system-error text; the raw
// fault never reaches the caller.
type Result[T any] struct {
	Message       string
	Value         T
	IsSystemError bool
	RetryCount    int
}

// Succeed builds a successful domain result, preserving the caller's retry count.
func Succeed[T any](message string, value T, retries int) Result[T] {
	return Result[T]{Message: message, Value: value, RetryCount: retries}
}

// Reject builds a domain-failure result. Domain failures are not
// infrastructure retries, so the retry count passes through unchanged.
func Reject[T any](message string, retries int) Result[T] {
	return Result[T]{Message: message, RetryCount: retries}
}

// SystemFailure builds an infrastructure-failure result with the retry count
// already incremented by the caller.
func SystemFailure[T any](message string, retries int) Result[T] {
	return Result[T]{Message: message, IsSystemError: true, RetryCount: retries}
}
