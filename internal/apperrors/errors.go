package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrExitPlanNotFound indicates that an exit plan with the given ID does not exist.
	ErrExitPlanNotFound = errors.New("exit plan not found")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveHoldings  = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveSummary   = errors.New("failed to retrieve portfolio summary")
	ErrFailedToRetrieveExitPlans = errors.New("failed to retrieve exit plans")
)
