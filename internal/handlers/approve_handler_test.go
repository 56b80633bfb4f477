package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nqhuy/signup-gate/internal/gate"
	"github.com/nqhuy/signup-gate/internal/handlers"
	"github.com/nqhuy/signup-gate/internal/hooks"
	"github.com/nqhuy/signup-gate/internal/middlewares"
	"github.com/nqhuy/signup-gate/model"
)

type mockGateService struct {
	mock.Mock
}

func (m *mockGateService) OpenApproval(ctx context.Context, user *model.User) (*model.PendingApproval, error) {
	args := m.Called(ctx, user)
	if v := args.Get(0); v != nil {
		return v.(*model.PendingApproval), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateService) Approve(ctx context.Context, token string, approvedBy string) (*gate.ApprovalResult, error) {
	args := m.Called(ctx, token, approvedBy)
	if v := args.Get(0); v != nil {
		return v.(*gate.ApprovalResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateService) PendingFor(ctx context.Context, email string) (*model.PendingApproval, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*model.PendingApproval), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateService) ListPending(ctx context.Context) ([]model.PendingApproval, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.PendingApproval), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) SignUp(ctx context.Context, name string, email string, password string) (*model.User, error) {
	args := m.Called(ctx, name, email, password)
	if v := args.Get(0); v != nil {
		return v.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthService) SignIn(ctx context.Context, email string, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if v := args.Get(0); v != nil {
		return v.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestApp(gateService handlers.GateService, authService handlers.AuthService) *fiber.App {
	registry := hooks.NewRegistry()
	handlers.RegisterGateHooks(registry, gateService)

	authHandler := handlers.NewAuthHandler(authService, registry)
	approveHandler := handlers.NewApproveHandler(gateService)
	pendingHandler := handlers.NewPendingHandler(gateService)

	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/sign-up/email", authHandler.PostSignUp)
	app.Post("/sign-in/email", authHandler.PostSignIn)
	app.Get("/admin/approve", approveHandler.GetApprove)
	app.Post("/admin/approve", approveHandler.PostApprove)
	app.Get("/admin/approval-success", approveHandler.GetApprovalSuccess)
	app.Get("/admin/pending", pendingHandler.GetPending)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func postJSON(path string, payload any) *http.Request {
	blob, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(blob))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func approvedResult(approvedBy string) *gate.ApprovalResult {
	approvedAt := time.Now()
	return &gate.ApprovalResult{
		Approval: &model.PendingApproval{
			ID:         1,
			UserID:     42,
			Token:      "tok-1",
			ApprovedAt: &approvedAt,
			ApprovedBy: approvedBy,
		},
		User: &model.User{ID: 42, Name: "Alice", Email: "alice@example.com"},
	}
}

func TestGetApproveRedirectsToSuccess(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(approvedResult("admin"), nil)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve?token=tok-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/approval-success", resp.Header.Get("Location"))
}

func TestGetApproveAlreadyApproved(t *testing.T) {
	result := approvedResult("admin")
	result.AlreadyApproved = true
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(result, nil)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve?token=tok-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/approval-success?status=already-approved", resp.Header.Get("Location"))
}

func TestGetApproveMissingToken(t *testing.T) {
	app := newTestApp(new(mockGateService), new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])
	assert.Equal(t, handlers.MsgMissingToken, body["message"])
}

func TestGetApproveUnknownToken(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "bogus", "").Return(nil, gate.ErrApprovalNotFound)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve?token=bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid or expired approval token", body["message"])
}

func TestGetApproveExpiredToken(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(nil, gate.ErrApprovalExpired)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve?token=tok-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgTokenExpiredLink, body["message"])
}

func TestGetApproveUnexpectedError(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(nil, errors.New("db gone"))
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approve?token=tok-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgApproveFailedLink, body["message"])
}

func TestPostApprove(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "admin-7").Return(approvedResult("admin-7"), nil)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(postJSON("/admin/approve", fiber.Map{"token": "tok-1", "adminId": "admin-7"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, handlers.MsgUserApproved, body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "Alice", user["name"])
	assert.NotEmpty(t, user["approvedAt"])
}

func TestPostApproveAlreadyApproved(t *testing.T) {
	result := approvedResult("admin")
	result.AlreadyApproved = true
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(result, nil)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(postJSON("/admin/approve", fiber.Map{"token": "tok-1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgAlreadyApproved, body["message"])
	assert.NotContains(t, body, "success")
}

func TestPostApproveMissingToken(t *testing.T) {
	app := newTestApp(new(mockGateService), new(mockAuthService))

	resp, err := app.Test(postJSON("/admin/approve", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgTokenRequired, body["message"])
}

func TestPostApproveUnknownToken(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "bogus", "").Return(nil, gate.ErrApprovalNotFound)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(postJSON("/admin/approve", fiber.Map{"token": "bogus"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgInvalidToken, body["message"])
}

func TestPostApproveExpiredToken(t *testing.T) {
	gateService := new(mockGateService)
	gateService.On("Approve", mock.Anything, "tok-1", "").Return(nil, gate.ErrApprovalExpired)
	app := newTestApp(gateService, new(mockAuthService))

	resp, err := app.Test(postJSON("/admin/approve", fiber.Map{"token": "tok-1"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, handlers.MsgTokenExpired, body["message"])
}

func TestGetApprovalSuccessPage(t *testing.T) {
	app := newTestApp(new(mockGateService), new(mockAuthService))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/approval-success", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, handlers.MsgUserApproved, decodeBody(t, resp)["message"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/admin/approval-success?status=already-approved", nil))
	require.NoError(t, err)
	assert.Equal(t, handlers.MsgAlreadyApproved, decodeBody(t, resp)["message"])
}
