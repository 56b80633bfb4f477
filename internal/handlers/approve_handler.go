package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/nqhuy/signup-gate/internal/gate"
)

var (
	MsgMissingToken      = "Missing approval token"
	MsgTokenRequired     = "Token is required"
	MsgInvalidOrExpired  = "Invalid or expired approval token"
	MsgInvalidToken      = "Invalid approval token"
	MsgTokenExpiredLink  = "Approval token has expired. Please contact support."
	MsgTokenExpired      = "Approval token has expired"
	MsgApproveFailedLink = "Failed to approve user. Please try again or contact support."
	MsgApproveFailed     = "Failed to approve user"
	MsgUserApproved      = "User approved successfully"
	MsgAlreadyApproved   = "User already approved"
)

const (
	approvalSuccessURL         = "/admin/approval-success"
	approvalAlreadyApprovedURL = "/admin/approval-success?status=already-approved"
)

// ApproveHandler serves the admin approval endpoint in both its navigable
// (redirecting) and programmatic (JSON) forms.
type ApproveHandler struct {
	gateService GateService
}

func NewApproveHandler(gateService GateService) *ApproveHandler {
	return &ApproveHandler{gateService: gateService}
}

// GetApprove approves the token from the query string and redirects to the
// confirmation page. Meant to be reached from the link in the admin email.
func (h *ApproveHandler) GetApprove(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgMissingToken)
	}

	result, err := h.gateService.Approve(ctx.Context(), token, "")
	switch {
	case errors.Is(err, gate.ErrApprovalNotFound):
		return fiber.NewError(fiber.StatusNotFound, MsgInvalidOrExpired)
	case errors.Is(err, gate.ErrApprovalExpired):
		return fiber.NewError(fiber.StatusBadRequest, MsgTokenExpiredLink)
	case err != nil:
		slog.Error("Failed to approve user", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, MsgApproveFailedLink)
	}

	if result.AlreadyApproved {
		return ctx.Redirect(approvalAlreadyApprovedURL)
	}
	return ctx.Redirect(approvalSuccessURL)
}

type approveRequest struct {
	Token   string `json:"token"`
	AdminID string `json:"adminId"`
}

// PostApprove approves the token from a JSON body and returns a structured
// result, recording adminId as the approving actor when supplied.
func (h *ApproveHandler) PostApprove(ctx *fiber.Ctx) error {
	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil || req.Token == "" {
		return fiber.NewError(fiber.StatusBadRequest, MsgTokenRequired)
	}

	result, err := h.gateService.Approve(ctx.Context(), req.Token, req.AdminID)
	switch {
	case errors.Is(err, gate.ErrApprovalNotFound):
		return fiber.NewError(fiber.StatusNotFound, MsgInvalidToken)
	case errors.Is(err, gate.ErrApprovalExpired):
		return fiber.NewError(fiber.StatusBadRequest, MsgTokenExpired)
	case err != nil:
		slog.Error("Failed to approve user", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, MsgApproveFailed)
	}

	if result.AlreadyApproved {
		return ctx.JSON(fiber.Map{
			"message": MsgAlreadyApproved,
			"user":    approvedUser(result),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"message": MsgUserApproved,
		"user":    approvedUser(result),
	})
}

// GetApprovalSuccess is the confirmation page the approval link redirects to.
func (h *ApproveHandler) GetApprovalSuccess(ctx *fiber.Ctx) error {
	message := MsgUserApproved
	if ctx.Query("status") == "already-approved" {
		message = MsgAlreadyApproved
	}
	return ctx.JSON(fiber.Map{"message": message})
}

func approvedUser(result *gate.ApprovalResult) fiber.Map {
	return fiber.Map{
		"id":         result.User.ID,
		"email":      result.User.Email,
		"name":       result.User.Name,
		"approvedAt": result.Approval.ApprovedAt,
	}
}
