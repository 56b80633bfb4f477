package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApprovalState(t *testing.T) {
	now := time.Now()
	approvedAt := now.Add(-time.Hour)

	tests := []struct {
		name     string
		approval PendingApproval
		want     ApprovalState
	}{
		{
			name:     "pending",
			approval: PendingApproval{ExpiresAt: now.Add(time.Hour)},
			want:     StatePending,
		},
		{
			name:     "expired",
			approval: PendingApproval{ExpiresAt: now.Add(-time.Minute)},
			want:     StateExpired,
		},
		{
			name:     "approved",
			approval: PendingApproval{ExpiresAt: now.Add(time.Hour), ApprovedAt: &approvedAt},
			want:     StateApproved,
		},
		{
			name:     "approved wins over expiry",
			approval: PendingApproval{ExpiresAt: now.Add(-time.Hour), ApprovedAt: &approvedAt},
			want:     StateApproved,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.approval.State(now))
		})
	}
}
