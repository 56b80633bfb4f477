package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/nqhuy/signup-gate/internal/auth"
	"github.com/nqhuy/signup-gate/internal/hooks"
)

var (
	MsgSignUpMissingFields = "Name, email and password are required"
	MsgSignInMissingFields = "Email and password are required"
	MsgEmailRegistered     = "Email is already registered."
	MsgWrongCredentials    = "Invalid email or password"
	MsgSignUpFailed        = "Failed to sign up"
	MsgSignInFailed        = "Failed to sign in"
)

// AuthHandler hosts the email/password lifecycle the gate hooks into.
// Before-hooks run ahead of credential evaluation and may deny the request;
// after-hooks observe the created user and cannot change the response.
type AuthHandler struct {
	authService AuthService
	hooks       *hooks.Registry
}

func NewAuthHandler(authService AuthService, registry *hooks.Registry) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		hooks:       registry,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) PostSignUp(ctx *fiber.Ctx) error {
	var req signUpRequest
	if err := ctx.BodyParser(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgSignUpMissingFields)
	}

	user, err := h.authService.SignUp(ctx.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrEmailRegistered) {
		return fiber.NewError(fiber.StatusBadRequest, MsgEmailRegistered)
	}
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, MsgSignUpFailed)
	}

	h.hooks.RunAfter(ctx.Context(), &hooks.Result{Path: hooks.PathSignUpEmail, User: user})
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) PostSignIn(ctx *fiber.Ctx) error {
	var req signInRequest
	if err := ctx.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgSignInMissingFields)
	}

	if err := h.hooks.RunBefore(ctx.Context(), &hooks.Request{Path: hooks.PathSignInEmail, Email: req.Email}); err != nil {
		return err
	}

	user, err := h.authService.SignIn(ctx.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return fiber.NewError(fiber.StatusUnauthorized, MsgWrongCredentials)
	}
	if err != nil {
		slog.Error("Failed to sign in user", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, MsgSignInFailed)
	}
	return ctx.JSON(fiber.Map{"user": user})
}
