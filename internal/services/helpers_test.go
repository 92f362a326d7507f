package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

func TestDomainErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{utils.ErrJobNotFound, http.StatusNotFound, utils.ErrCodeNotFound},
		{utils.ErrNotJobOwner, http.StatusForbidden, utils.ErrCodeForbidden},
		{utils.ErrOnboardingIncomplete, http.StatusPreconditionFailed, utils.ErrCodePreconditionFailed},
		{utils.ErrRateBelowMinimum, http.StatusUnprocessableEntity, utils.ErrCodeNotEligible},
		{utils.ErrDuplicateApplication, http.StatusConflict, utils.ErrCodeConflict},
		{utils.ErrCapacityReached, http.StatusConflict, utils.ErrCodeConflict},
		{utils.ErrSlotsBelowConfirmed, http.StatusConflict, utils.ErrCodeInvariantViolation},
		{utils.ErrRowVersionConflict, http.StatusConflict, utils.ErrCodeRowVersionConflict},
	}

	for _, tc := range cases {
		err := domainError(tc.err)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr, "%v", tc.err)
		assert.Equal(t, tc.wantStatus, appErr.StatusCode, "%v", tc.err)
		assert.Equal(t, tc.wantCode, appErr.Code, "%v", tc.err)
		assert.ErrorIs(t, err, tc.err)
	}
}

func TestDomainErrorPassesUnknownThrough(t *testing.T) {
	assert.Nil(t, domainError(nil))

	plain := assert.AnError
	assert.Equal(t, plain, domainError(plain))
}

func TestEstimatedEarnings(t *testing.T) {
	job := &models.Job{DurationHours: 8, HourlyRateEur: 10}
	offer := &matching.Offer{ContractType: models.ContractEmployment, HourlyRateEur: 10}

	assert.Equal(t, 80.0, estimatedEarnings(job, offer))

	job.IsUrgent = true
	job.UrgentBonusEur = 15
	assert.Equal(t, 95.0, estimatedEarnings(job, offer))

	job.IsBundle = true
	job.BundleBonusEur = 25
	assert.Equal(t, 120.0, estimatedEarnings(job, offer))

	assert.Zero(t, estimatedEarnings(job, nil))
}
