package handlers

import "time"

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OperationResponse carries the user-facing outcome of an account operation.
type OperationResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness information.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyCodeRequest is the payload for email and phone code checks.
type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
	// DuringRegistration marks a phone check that should activate the
	// account on success.
	DuringRegistration bool `json:"during_registration,omitempty"`
}

// SendCodeRequest asks for a fresh verification code.
type SendCodeRequest struct {
	Username string `json:"username"`
}

// ChangePasswordRequest is the payload for a credential change.
type ChangePasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"new_password"`
}

// AccountStatusRequest is the payload for administrative disable/enable.
type AccountStatusRequest struct {
	Username string `json:"username"`
}
