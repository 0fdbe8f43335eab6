package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/model"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/utils"
	"hotelbooking/internal/validate"
)

// AuthHandler serves registration, login and the identity echo endpoint.
type AuthHandler struct {
	Users     *repository.UserRepo
	Validate  *validate.Validator
	JWTSecret string
	AccessTTL int // minutes
}

func NewAuthHandler(users *repository.UserRepo, v *validate.Validator, secret string, ttlMin int) *AuthHandler {
	if users == nil || v == nil {
		panic("nil dependency passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, Validate: v, JWTSecret: secret, AccessTTL: ttlMin}
}

type registerRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phoneNumber" validate:"max=30"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Address     string `json:"address" validate:"max=255"`
	City        string `json:"city" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
	Role        string `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

type userResponse struct {
	ID          uint64 `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}

// Register handles POST /v1/auth/register.  A duplicate email is an invalid
// argument, not a conflict, so it maps to 400.
func (h *AuthHandler) Register(c echo.Context) error {
	var body registerRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}

	role := body.Role
	if role == "" {
		role = model.RoleCustomer
	}
	u := model.User{
		FirstName:   strings.TrimSpace(body.FirstName),
		LastName:    strings.TrimSpace(body.LastName),
		Email:       strings.ToLower(strings.TrimSpace(body.Email)),
		PhoneNumber: strings.TrimSpace(body.PhoneNumber),
		Address:     strings.TrimSpace(body.Address),
		City:        strings.TrimSpace(body.City),
		Country:     strings.TrimSpace(body.Country),
		Role:        role,
	}
	if body.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", body.DateOfBirth)
		if err != nil {
			return fail(c, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
		}
		u.DateOfBirth = &dob
	}

	if err := h.Users.Create(c.Request().Context(), &u, body.Password); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusBadRequest, "email already registered")
		}
		log.Error().Err(err).Msg("register: create user failed")
		return fail(c, http.StatusInternalServerError, "could not create user")
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /v1/auth/login.  Unknown email and wrong password
// produce the same generic 401 so the endpoint does not leak which emails
// are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if verrs := h.Validate.Struct(body); verrs != nil {
		return failValidation(c, verrs)
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	u, err := h.Users.GetByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		log.Error().Err(err).Msg("login: lookup failed")
		return fail(c, http.StatusInternalServerError, "database error")
	}
	if !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Role, h.AccessTTL)
	if err != nil {
		log.Error().Err(err).Msg("login: token signing failed")
		return fail(c, http.StatusInternalServerError, "could not issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": tok.Token,
		"expiresAt":   tok.Exp.UTC().Format(time.RFC3339),
		"user":        toUserResponse(u),
	})
}

// Me handles GET /v1/me and echoes the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return fail(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}
