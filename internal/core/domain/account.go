package domain

import "time"

// AccountStatus enumerates possible account states.
type AccountStatus string

const (
	// AccountStatusPendingEmail marks a freshly registered account awaiting email verification.
	AccountStatusPendingEmail AccountStatus = "pending_email"
	// AccountStatusPendingPhone marks an account whose email is verified but phone is not.
	AccountStatusPendingPhone AccountStatus = "pending_phone"
	AccountStatusActive       AccountStatus = "active"
	AccountStatusDisabled     AccountStatus = "disabled"
)

// VerificationChannel identifies the delivery medium for a one-time code.
type VerificationChannel string

const (
	ChannelEmail VerificationChannel = "email"
	ChannelPhone VerificationChannel = "phone"
)

// Account mirrors the persisted representation in the accounts table.
// Failure timestamps are unix seconds; zero means the counter is clear.
type Account struct {
	Username          string
	Email             string
	Phone             string
	PasswordDigest    string
	Status            AccountStatus
	LoginFailures     int
	LastLoginFailure  int64
	EmailCodeFailures int
	PhoneCodeFailures int
	VerificationCode  string
	CodeIssuedAt      int64
	CreatedAt         time.Time
}

// Disabled reports whether the account has been administratively disabled.
func (a Account) Disabled() bool {
	return a.Status == AccountStatusDisabled
}

// Pending reports whether the account has not completed verification yet.
func (a Account) Pending() bool {
	return a.Status == AccountStatusPendingEmail || a.Status == AccountStatusPendingPhone
}

// AccountPatch is an explicit partial update: only non-nil fields are written.
// This replaces any sentinel-value convention for "do not touch this column".
type AccountPatch struct {
	Email             *string
	Phone             *string
	PasswordDigest    *string
	Status            *AccountStatus
	LoginFailures     *int
	LastLoginFailure  *int64
	EmailCodeFailures *int
	PhoneCodeFailures *int
	VerificationCode  *string
	CodeIssuedAt      *int64
}

// IsEmpty reports whether the patch carries no fields at all.
func (p AccountPatch) IsEmpty() bool {
	return p.Email == nil &&
		p.Phone == nil &&
		p.PasswordDigest == nil &&
		p.Status == nil &&
		p.LoginFailures == nil &&
		p.LastLoginFailure == nil &&
		p.EmailCodeFailures == nil &&
		p.PhoneCodeFailures == nil &&
		p.VerificationCode == nil &&
		p.CodeIssuedAt == nil
}

// Ptr is a convenience for building patches from literals.
func Ptr[T any](v T) *T {
	return &v
}
