package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/usecase"
)

// AccountHandler exposes the registration, authentication, verification, and
// password endpoints.
//
// Infrastructure faults are retried in place: the coordinator hands back the
// retry count and the handler re-invokes the operation until it succeeds or
// the ceiling is reached, so one bad connection does not surface to the
// client immediately.
type AccountHandler struct {
	service *usecase.AccountCoordinator
}

// NewAccountHandler wires the handler to the coordinator.
func NewAccountHandler(service *usecase.AccountCoordinator) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes binds account endpoints.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/verify/email", h.VerifyEmail)
	r.POST("/verify/phone", h.VerifyPhone)
	r.POST("/codes/email", h.SendEmailCode)
	r.POST("/codes/phone", h.SendPhoneCode)
	r.POST("/password/change", h.ChangePassword)
	r.POST("/disable", h.Disable)
	r.POST("/enable", h.Enable)
}

// withRetries runs the operation, re-invoking it with the accumulated retry
// count while it keeps failing on infrastructure.
func withRetries(call func(retries int) domain.Result[bool]) domain.Result[bool] {
	res := call(0)
	for res.IsSystemError && res.RetryCount < usecase.OperationRetryCeiling {
		res = call(res.RetryCount)
	}
	return res
}

func respond(c *gin.Context, res domain.Result[bool], successStatus, rejectStatus int) {
	switch {
	case res.IsSystemError:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: res.Message})
	case !res.Value:
		c.JSON(rejectStatus, ErrorResponse{Error: res.Message})
	default:
		c.JSON(successStatus, OperationResponse{Message: res.Message})
	}
}

// Register creates a new account and sends the first email code.
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid registration payload"})
		return
	}

	in := usecase.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Password: req.Password,
		IP:       c.ClientIP(),
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.Register(c.Request.Context(), in, retries)
	})
	respond(c, res, http.StatusCreated, http.StatusBadRequest)
}

// Login authenticates a username/password pair.
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid login payload"})
		return
	}

	in := usecase.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		IP:       c.ClientIP(),
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.Login(c.Request.Context(), in, retries)
	})
	respond(c, res, http.StatusOK, http.StatusUnauthorized)
}

// VerifyEmail checks an emailed code.
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	req, ok := bindCodeRequest(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.VerifyEmail(c.Request.Context(), req.Username, req.Code, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusBadRequest)
}

// VerifyPhone checks a phone code through the verification gateway.
func (h *AccountHandler) VerifyPhone(c *gin.Context) {
	req, ok := bindCodeRequest(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.VerifyPhone(c.Request.Context(), req.Username, req.Code, c.ClientIP(), req.DuringRegistration, retries)
	})
	respond(c, res, http.StatusOK, http.StatusBadRequest)
}

// SendEmailCode issues a fresh email code.
func (h *AccountHandler) SendEmailCode(c *gin.Context) {
	username, ok := bindUsername(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.SendEmailCode(c.Request.Context(), username, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusBadRequest)
}

// SendPhoneCode asks the gateway to deliver a fresh phone code.
func (h *AccountHandler) SendPhoneCode(c *gin.Context) {
	username, ok := bindUsername(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.SendPhoneCode(c.Request.Context(), username, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusBadRequest)
}

// ChangePassword replaces the account's credential.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid password payload"})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.ChangePassword(c.Request.Context(), username, req.NewPassword, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusBadRequest)
}

// Disable administratively disables an account.
func (h *AccountHandler) Disable(c *gin.Context) {
	username, ok := bindStatusRequest(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.DisableAccount(c.Request.Context(), username, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusConflict)
}

// Enable re-activates a disabled account.
func (h *AccountHandler) Enable(c *gin.Context) {
	username, ok := bindStatusRequest(c)
	if !ok {
		return
	}

	res := withRetries(func(retries int) domain.Result[bool] {
		return h.service.EnableAccount(c.Request.Context(), username, c.ClientIP(), retries)
	})
	respond(c, res, http.StatusOK, http.StatusConflict)
}

func bindCodeRequest(c *gin.Context) (VerifyCodeRequest, bool) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid verification payload"})
		return req, false
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Code = strings.TrimSpace(req.Code)
	if req.Username == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username and code are required"})
		return req, false
	}

	return req, true
}

func bindUsername(c *gin.Context) (string, bool) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return "", false
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return "", false
	}

	return username, true
}

func bindStatusRequest(c *gin.Context) (string, bool) {
	var req AccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
		return "", false
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return "", false
	}

	return username, true
}
