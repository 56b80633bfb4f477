package gate

import "errors"

var (
	ErrApprovalNotFound = errors.New("approval token not found")
	ErrApprovalExpired  = errors.New("approval token expired")
)
