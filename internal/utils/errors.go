package utils

import (
	"errors"
	"net/http"
)

/*
   Sentinel errors for marketplace domain logic.
   The controller can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	// Not-found
	ErrWorkerNotFound      = errors.New("worker_not_found")
	ErrCompanyNotFound     = errors.New("company_not_found")
	ErrJobNotFound         = errors.New("job_not_found")
	ErrApplicationNotFound = errors.New("application_not_found")
	ErrNotJobOwner         = errors.New("not_job_owner")

	// Precondition-not-met
	ErrOnboardingIncomplete = errors.New("onboarding_incomplete")
	ErrCompanyNotApproved   = errors.New("company_not_approved")
	ErrJobNotOpen           = errors.New("job_not_open")
	ErrConfirmByExpired     = errors.New("confirm_by_expired")
	ErrDuplicateApplication = errors.New("duplicate_application")
	ErrWaveNotVisible       = errors.New("wave_not_visible")
	ErrWorkerNotWorkedYet   = errors.New("worker_not_worked_yet")

	// Eligibility-failure, one per user-facing reason
	ErrContractMismatch       = errors.New("contract_type_mismatch")
	ErrRateBelowMinimum       = errors.New("rate_below_worker_minimum")
	ErrBundleThresholdUnmet   = errors.New("bundle_threshold_unmet")
	ErrNoticeWindowUnmet      = errors.New("notice_window_unmet")

	// Invariant-violation
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrSlotsBelowConfirmed     = errors.New("slots_below_confirmed_count")
	ErrWrongApplicationStatus  = errors.New("wrong_application_status")
	ErrCapacityReached         = errors.New("capacity_reached")
	ErrWaveRegression          = errors.New("wave_regression")

	// Concurrency / persistence
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

// AppError carries a status code and a public error code from the
// service layer to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
