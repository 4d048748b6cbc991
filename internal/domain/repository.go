package domain

import (
	"context"
	"time"
)

// Submitter defines the interface for delivering a cash-up record to a remote sheet
type Submitter interface {
	// Send delivers the record. The core does not retry; a returned error is final for this call.
	Send(ctx context.Context, submission Submission) error
}

// Clock supplies the current time for dating submissions
type Clock interface {
	Now() time.Time
}
