package params

import "time"

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	// ApprovalTokenTTL is how long a sign-up approval token stays valid.
	ApprovalTokenTTL = 7 * 24 * time.Hour

	// DefaultApprover is recorded as the approving actor when no admin id
	// is supplied.
	DefaultApprover = "admin"
)
