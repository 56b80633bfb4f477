package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nqhuy/signup-gate/internal/mail"
	"github.com/nqhuy/signup-gate/internal/repository"
	"github.com/nqhuy/signup-gate/model"
	"github.com/nqhuy/signup-gate/params"
)

// MailDispatcher is the outbound side of the gate: delivery is asynchronous
// and best-effort, so Dispatch reports nothing back.
type MailDispatcher interface {
	Dispatch(message *mail.Message)
}

type Config struct {
	BaseURL    string
	AdminEmail string
}

// ApprovalResult describes the outcome of approving a token. AlreadyApproved
// is set when the record was approved before this call; in that case the
// existing approval is returned unchanged and no email is sent.
type ApprovalResult struct {
	Approval        *model.PendingApproval
	User            *model.User
	AlreadyApproved bool
}

// Service owns the approval-token lifecycle: open a pending record at
// sign-up, validate and consume the token at approval, and answer the
// login-time pending check.
type Service struct {
	approvalRepo repository.ApprovalRepository
	userRepo     repository.UserRepository
	dispatcher   MailDispatcher
	config       Config
}

func NewService(approvalRepo repository.ApprovalRepository, userRepo repository.UserRepository, dispatcher MailDispatcher, config Config) *Service {
	return &Service{
		approvalRepo: approvalRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		config:       config,
	}
}

func (s *Service) approvalURL(token string) string {
	return fmt.Sprintf("%s/admin/approve?token=%s", s.config.BaseURL, token)
}

func (s *Service) signInURL() string {
	return s.config.BaseURL + "/sign-in"
}

// OpenApproval creates the pending-approval record for a newly registered
// user and notifies both the administrator and the user. Email failures are
// logged by the dispatcher and never reach the caller.
func (s *Service) OpenApproval(ctx context.Context, user *model.User) (*model.PendingApproval, error) {
	now := time.Now()
	approval := model.PendingApproval{
		ID:        model.GenerateID(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(params.ApprovalTokenTTL),
	}
	if err := s.approvalRepo.Create(ctx, &approval); err != nil {
		return nil, err
	}

	if msg, err := mail.NewAdminApprovalRequest(s.config.AdminEmail, user.Name, user.Email, now, s.approvalURL(approval.Token)); err == nil {
		s.dispatcher.Dispatch(msg)
	} else {
		slog.Error("Failed to render admin approval request", "error", err)
	}
	if msg, err := mail.NewUserPendingNotice(user.Email, user.Name); err == nil {
		s.dispatcher.Dispatch(msg)
	} else {
		slog.Error("Failed to render pending notice", "error", err)
	}
	return &approval, nil
}

// Approve validates the token and marks the record approved. Re-approval is
// idempotent: an already-approved record is returned as-is without mutation
// or a second notification. Expired records are rejected untouched.
func (s *Service) Approve(ctx context.Context, token string, approvedBy string) (*ApprovalResult, error) {
	approval, err := s.approvalRepo.GetByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApprovalNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch approval.State(now) {
	case model.StateApproved:
		return &ApprovalResult{Approval: approval, User: &approval.User, AlreadyApproved: true}, nil
	case model.StateExpired:
		return nil, ErrApprovalExpired
	}

	if approvedBy == "" {
		approvedBy = params.DefaultApprover
	}
	rows, err := s.approvalRepo.Approve(ctx, token, now, approvedBy)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost a concurrent approval race; the record is approved either way.
		return &ApprovalResult{Approval: approval, User: &approval.User, AlreadyApproved: true}, nil
	}
	approval.ApprovedAt = &now
	approval.ApprovedBy = approvedBy

	if msg, err := mail.NewUserApprovedNotice(approval.User.Email, approval.User.Name, s.signInURL()); err == nil {
		s.dispatcher.Dispatch(msg)
	} else {
		slog.Error("Failed to render approved notice", "error", err)
	}
	return &ApprovalResult{Approval: approval, User: &approval.User}, nil
}

// PendingFor returns the unapproved approval record for the given email, or
// nil when the account does not exist or is not gated. Expiry is not checked
// here; an expired unapproved record still blocks login.
func (s *Service) PendingFor(ctx context.Context, email string) (*model.PendingApproval, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	approval, err := s.approvalRepo.GetUnapprovedByUserID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return approval, nil
}

// ListPending returns all outstanding approval requests, newest first.
// Approved and expired records are filtered out.
func (s *Service) ListPending(ctx context.Context) ([]model.PendingApproval, error) {
	return s.approvalRepo.ListPending(ctx, time.Now())
}
