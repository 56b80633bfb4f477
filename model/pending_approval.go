package model

import "time"

// ApprovalState is the tagged state of a PendingApproval, derived from
// approvedAt and expiresAt so call sites never re-implement the
// pending-vs-expired distinction.
type ApprovalState string

const (
	StatePending  ApprovalState = "pending"
	StateApproved ApprovalState = "approved"
	StateExpired  ApprovalState = "expired"
)

// PendingApproval is the gate record created for every new sign-up. A user
// may not log in until an administrator approves the record via its token.
// Rows are never deleted; approval is one-way.
type PendingApproval struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"userId"`
	User       User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Token      string     `gorm:"uniqueIndex;size:64;not null" json:"token"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expiresAt"`
	ApprovedAt *time.Time `json:"approvedAt"`
	ApprovedBy string     `gorm:"size:64" json:"approvedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// State reports the approval state as of the given time.
func (p *PendingApproval) State(now time.Time) ApprovalState {
	if p.ApprovedAt != nil {
		return StateApproved
	}
	if now.After(p.ExpiresAt) {
		return StateExpired
	}
	return StatePending
}
