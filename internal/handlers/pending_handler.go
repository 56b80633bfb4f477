package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

var MsgListPendingFailed = "Failed to fetch pending approvals"

// PendingHandler serves the admin listing of outstanding approval requests.
type PendingHandler struct {
	gateService GateService
}

func NewPendingHandler(gateService GateService) *PendingHandler {
	return &PendingHandler{gateService: gateService}
}

func (h *PendingHandler) GetPending(ctx *fiber.Ctx) error {
	approvals, err := h.gateService.ListPending(ctx.Context())
	if err != nil {
		slog.Error("Failed to fetch pending approvals", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, MsgListPendingFailed)
	}

	entries := make([]fiber.Map, 0, len(approvals))
	for i := range approvals {
		entries = append(entries, fiber.Map{
			"approval": &approvals[i],
			"user":     &approvals[i].User,
		})
	}
	return ctx.JSON(entries)
}
