package usecase

import "time"

// Rate limiting and lifecycle policy. Note the deliberate asymmetry between
// reset windows (how long a failure history stays warm) and lock windows (how
// long a tripped identity stays locked): the two are configured
// independently even where the values coincide.
const (
	MaxLoginAttempts        = 18
	MaxRegistrationAttempts = 3
	MaxEmailCodeAttempts    = 3
	MaxPhoneCodeAttempts    = 3

	LoginTriesResetWindow        = 2 * time.Hour
	RegistrationTriesResetWindow = 15 * time.Minute
	IPLockWindow                 = 15 * time.Minute
	CodeValidityWindow           = 15 * time.Minute

	// VerificationCodeLength is the number of digits in an emailed code.
	VerificationCodeLength = 6

	// OperationRetryCeiling is the number of infrastructure faults on one
	// logical operation after which the system administrator is notified.
	OperationRetryCeiling = 3

	// PendingAccountMaxAge is how long an unverified registration reserves
	// its username before it is eligible for reclamation.
	PendingAccountMaxAge = time.Hour
)

// Identity key prefixes keep username and IP rate-limit records apart in the
// shared lock store.
func ipIdentity(ip string) string {
	return "ip:" + ip
}

func loginIdentity(username string) string {
	return "login:" + username
}
