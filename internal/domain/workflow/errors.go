package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when the target status is not
	// reachable from the current status for the acting role
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingRequiredData is returned when the transition's required
	// additional data is absent or empty
	ErrMissingRequiredData = errors.New("missing required transition data")

	// ErrApprovalPreconditionFailed is returned when approval is attempted
	// while any item lacks a selected vendor
	ErrApprovalPreconditionFailed = errors.New("approval precondition failed")

	// ErrInvalidStatus is returned when a status is not a defined lifecycle state
	ErrInvalidStatus = errors.New("invalid status")

	// ErrConcurrentModification is returned when the persisted requisition
	// changed between read and write; callers should re-fetch and retry
	ErrConcurrentModification = errors.New("requisition was modified concurrently")

	// ErrNotFound is returned when the requisition does not exist
	ErrNotFound = errors.New("requisition not found")

	// ErrRemoteFailure is returned when a downstream call failed; the
	// requisition state is left unchanged and the caller may retry
	ErrRemoteFailure = errors.New("remote operation failed")
)
