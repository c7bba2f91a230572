package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "eventsmanager/internal/delivery/http/helpers"
	"eventsmanager/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUserRequest is the request body for POST /api/register/.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (s RegisterUserRequest) Validate() []string {
	if strings.TrimSpace(s.Username) == "" || strings.TrimSpace(s.Email) == "" || s.Password == "" {
		return []string{"all fields are required"}
	}
	if !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(s.Email))) {
		return []string{"invalid email format"}
	}
	return nil
}

// RegisterUserResponse is the data payload for POST /api/register/ (200).
type RegisterUserResponse struct {
	*domain.User
	Token string `json:"token"`
}

// RegisterUserSuccessResponse is the success response envelope for POST /api/register/ (200).
type RegisterUserSuccessResponse struct {
	Data  RegisterUserResponse `json:"data"`
	Error *h.APIError          `json:"error"`
}

// TokenRequest is the request body for POST /api/token/.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements helpers.Validator.
func (l TokenRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// TokenResponse is the data payload for POST /api/token/ (200).
type TokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenSuccessResponse is the success response envelope for POST /api/token/ (200).
type TokenSuccessResponse struct {
	Data  TokenResponse `json:"data"`
	Error *h.APIError   `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create a user with username, email, and password, and issue an authentication token bound to them. All three fields are required; username and email must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterUserRequest true "Registration data"
// @Success 200 {object} controllers.RegisterUserSuccessResponse "data contains the created user and token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/register/ [post]
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, token, err := c.Service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// Duplicate username/email surfaces as 400 like any other bad input.
		if errors.Is(err, domain.ErrDuplicateUser) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeConflict, "username or email already registered")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, RegisterUserResponse{User: user, Token: token})
}

// Token godoc
// @Summary Obtain an authentication token
// @Description Authenticate with username and password. Returns the token plus the user's id and email.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Credentials"
// @Success 200 {object} controllers.TokenSuccessResponse "data contains token, user_id, and email"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/token/ [post]
func (c *AuthController) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid credentials")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, TokenResponse{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	})
}
