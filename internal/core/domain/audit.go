package domain

import "time"

// Operation names recorded in the audit trail.
const (
	OpRegistration   = "Registration"
	OpLogin          = "Log In"
	OpVerifyEmail    = "Verify Email Code"
	OpVerifyPhone    = "Verify Phone Code"
	OpSendEmailCode  = "Send Email Code"
	OpSendPhoneCode  = "Send Phone Code"
	OpChangePassword = "Update Password"
	OpDisableAccount = "Disable Account"
	OpEnableAccount  = "Enable Account"
)

// AnonymousIdentity labels audit entries for operations attempted before any
// account exists (for example a rejected registration).
const AnonymousIdentity = "<unregistered>"

// AuditEntry is a single append-only record of a security-relevant operation.
// Reason is empty for successful operations.
type AuditEntry struct {
	ID        string
	Timestamp time.Time
	Operation string
	Identity  string
	SourceIP  string
	Reason    string
}
