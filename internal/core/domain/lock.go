package domain

// IdentityLock is the per-identity failure record used for rate limiting.
// An identity is a username or an IP address, prefixed by the caller.
// Records are created on first failure and only removed by Clear or
// administrative cleanup; lock status is derived, never stored.
type IdentityLock struct {
	FailureCount    int
	LastFailureUnix int64
}
