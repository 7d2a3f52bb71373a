package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInsufficientQuota            = errors.New("insufficient annual leave balance")
)
