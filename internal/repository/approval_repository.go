package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nqhuy/signup-gate/model"
)

type ApprovalRepository interface {
	Create(ctx context.Context, approval *model.PendingApproval) error
	GetByToken(ctx context.Context, token string) (*model.PendingApproval, error)
	GetUnapprovedByUserID(ctx context.Context, userID uint) (*model.PendingApproval, error)
	// Approve sets approvedAt/approvedBy on the record matching token,
	// skipping rows that are already approved. Returns the number of rows
	// updated.
	Approve(ctx context.Context, token string, approvedAt time.Time, approvedBy string) (int64, error)
	// ListPending returns unapproved, non-expired records with their users,
	// most recent sign-up first.
	ListPending(ctx context.Context, now time.Time) ([]model.PendingApproval, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(ctx context.Context, approval *model.PendingApproval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

func (r *approvalRepository) GetByToken(ctx context.Context, token string) (*model.PendingApproval, error) {
	var approval model.PendingApproval
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&approval).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) GetUnapprovedByUserID(ctx context.Context, userID uint) (*model.PendingApproval, error) {
	var approval model.PendingApproval
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND approved_at IS NULL", userID).
		First(&approval).Error
	if err != nil {
		return nil, err
	}
	return &approval, nil
}

func (r *approvalRepository) Approve(ctx context.Context, token string, approvedAt time.Time, approvedBy string) (int64, error) {
	ret := r.db.WithContext(ctx).
		Model(&model.PendingApproval{}).
		Where("token = ? AND approved_at IS NULL", token).
		Updates(map[string]interface{}{
			"approved_at": approvedAt,
			"approved_by": approvedBy,
		})
	return ret.RowsAffected, ret.Error
}

func (r *approvalRepository) ListPending(ctx context.Context, now time.Time) ([]model.PendingApproval, error) {
	var approvals []model.PendingApproval
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("approved_at IS NULL AND expires_at > ?", now).
		Order("created_at DESC").
		Find(&approvals).Error
	if err != nil {
		return nil, err
	}
	return approvals, nil
}
