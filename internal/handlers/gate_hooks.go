package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/nqhuy/signup-gate/internal/hooks"
)

var MsgPendingApproval = "Your account is pending administrator approval. Please check your email for updates."

// RegisterGateHooks attaches the approval gate to the auth lifecycle:
// sign-ups open a pending approval and notify admin and user; sign-ins are
// denied while an unapproved record exists, even past the token expiry.
// Expiry is only enforced at approval time.
func RegisterGateHooks(registry *hooks.Registry, gateService GateService) {
	registry.After(hooks.PathSignUpEmail, func(ctx context.Context, res *hooks.Result) {
		if _, err := gateService.OpenApproval(ctx, res.User); err != nil {
			slog.Error("Failed to open approval for new user", "userId", res.User.ID, "error", err)
		}
	})

	registry.Before(hooks.PathSignInEmail, func(ctx context.Context, req *hooks.Request) error {
		approval, err := gateService.PendingFor(ctx, req.Email)
		if err != nil {
			return err
		}
		if approval != nil {
			return fiber.NewError(fiber.StatusForbidden, MsgPendingApproval)
		}
		return nil
	})
}
