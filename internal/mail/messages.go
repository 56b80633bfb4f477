package mail

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// NewAdminApprovalRequest notifies the administrator that a new user signed
// up and links the approval endpoint.
func NewAdminApprovalRequest(adminEmail string, userName string, userEmail string, signedUpAt time.Time, approvalURL string) (*Message, error) {
	body, err := renderHTML("admin-approval-request", fiber.Map{
		"name":        userName,
		"email":       userEmail,
		"signedUpAt":  signedUpAt.Format(time.RFC1123),
		"approvalURL": approvalURL,
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{adminEmail},
		Subject: "New User Signup - Approval Required",
		Body:    body,
		IsHTML:  true,
	}, nil
}

// NewUserPendingNotice acknowledges a sign-up while the account awaits
// administrator approval.
func NewUserPendingNotice(userEmail string, userName string) (*Message, error) {
	body, err := renderHTML("user-pending", fiber.Map{
		"name": userName,
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{userEmail},
		Subject: "Account Pending Approval",
		Body:    body,
		IsHTML:  true,
	}, nil
}

// NewUserApprovedNotice tells the user their account was approved and links
// the sign-in page.
func NewUserApprovedNotice(userEmail string, userName string, signInURL string) (*Message, error) {
	body, err := renderHTML("user-approved", fiber.Map{
		"name":      userName,
		"signInURL": signInURL,
	})
	if err != nil {
		return nil, err
	}
	return &Message{
		To:      []string{userEmail},
		Subject: "Account Approved - Welcome!",
		Body:    body,
		IsHTML:  true,
	}, nil
}
