package domain

import "errors"

// ErrInvalidSubmission indicates that a cash-up record failed validation checks.
var ErrInvalidSubmission = errors.New("invalid submission")

// ErrSubmissionDisabled indicates that no submission endpoint is configured.
var ErrSubmissionDisabled = errors.New("submission endpoint not configured")

// ErrSubmissionRejected indicates that the remote endpoint refused the record.
var ErrSubmissionRejected = errors.New("submission rejected by endpoint")
