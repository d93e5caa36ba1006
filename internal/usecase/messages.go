package usecase

import "github.com/grocify/account-guard/internal/core/domain"

// User-facing messages. Audit log messages are separate and more specific;
// the user never learns which precise rule tripped an authentication failure.
const (
	MsgRegistrationSuccess  = "Registration successful!"
	MsgLoginSuccess         = "Logged in successfully!"
	MsgVerifyEmailSuccess   = "Email verified!"
	MsgVerifyPhoneSuccess   = "Phone number verified!"
	MsgSendEmailCodeSuccess = "Email code sent!"
	MsgSendPhoneCodeSuccess = "Phone code sent!"
	MsgPasswordUpdated      = "Password updated!"
	MsgAccountDisabled      = "Your account is disabled, please contact the system administrator."
	MsgAccountEnabled       = "Account enabled."
	MsgAccountNowDisabled   = "Account disabled."

	MsgSystemError = "A system error occurred. Please try again later."

	MsgInvalidCredentials  = "Username or password was invalid"
	MsgAccountNotVerified  = "Your account has not finished verification yet."
	MsgUnknownAccount      = "No such account exists."
	MsgTooManyLogins       = "Too many failed log in attempts, try again later."
	MsgTooManyAttempts     = "Too many attempts from this address, try again later."
	MsgIdentityUnavailable = "That username, email, or phone number is unavailable."
	MsgInvalidInput        = "One or more fields were invalid."

	MsgMaxEmailTries     = "Maximum email code tries reached (3 max)"
	MsgEmailCodeExpired  = "Email code expired, request a new one."
	MsgWrongEmailCode    = "Wrong email code, please try again."
	MsgMaxPhoneTries     = "Maximum phone code tries reached (3 max)"
	MsgPhoneCodeExpired  = "Phone code expired, request a new one."
	MsgWrongPhoneCode    = "Wrong phone code, please try again."
	MsgWeakPassword      = "This password is not secure enough, please choose another."
	MsgPasswordTooCommon = "This password is too common or predictable, please choose another."
)

// Audit log reasons.
const (
	LogUsernameNotFound = "Username does not exist"
	LogInvalidPassword  = "Invalid password entered"
	LogUserDisabled     = "User disabled"
	LogAccountPending   = "Account pending verification"
	LogUsernameTaken    = "Username taken"
	LogEmailTaken       = "Email taken"
	LogPhoneTaken       = "Phone number taken"
	LogIPLockout        = "IP address locked"
	LogTooManyLogins    = "Max login attempts reached"
	LogInvalidInput     = "Invalid input"
	LogMaxEmailTries    = "Max email tries reached"
	LogEmailCodeExpired = "Email code expired"
	LogWrongEmailCode   = "Wrong email code"
	LogMaxPhoneTries    = "Max phone tries reached"
	LogWrongPhoneCode   = "Wrong phone code"
	LogPhoneCodeExpired = "Phone code expired"
	LogAlreadyDisabled  = "Username already disabled"
	LogAlreadyEnabled   = "Username already enabled"
	LogPasswordRejected = "Password rejected: "
)

// passwordRejectionLog maps a rule engine reason to its audit message.
func passwordRejectionLog(reason domain.RejectionReason) string {
	return LogPasswordRejected + string(reason)
}

// passwordRejectionMessage maps a rule engine reason to the user message.
// Lexical rejections read differently from structural ones, but none of them
// reveal the corpus or the word list.
func passwordRejectionMessage(reason domain.RejectionReason) string {
	switch reason {
	case domain.RejectionContextWord, domain.RejectionDictionaryWord, domain.RejectionSequenceOrRepetition:
		return MsgPasswordTooCommon
	default:
		return MsgWeakPassword
	}
}
