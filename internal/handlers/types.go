package handlers

import (
	"context"

	"github.com/nqhuy/signup-gate/internal/gate"
	"github.com/nqhuy/signup-gate/model"
)

type GateService interface {
	OpenApproval(ctx context.Context, user *model.User) (*model.PendingApproval, error)
	Approve(ctx context.Context, token string, approvedBy string) (*gate.ApprovalResult, error)
	PendingFor(ctx context.Context, email string) (*model.PendingApproval, error)
	ListPending(ctx context.Context) ([]model.PendingApproval, error)
}

type AuthService interface {
	SignUp(ctx context.Context, name string, email string, password string) (*model.User, error)
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
}
