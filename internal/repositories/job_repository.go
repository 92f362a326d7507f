package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)

	// ListOpenForFeed returns OPEN jobs of approved, onboarded
	// companies starting in the future with an unexpired confirm-by.
	ListOpenForFeed(ctx context.Context, now, windowEnd time.Time) ([]*models.Job, error)

	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error)
	ListOpenByCompanyBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Job, error)

	// ListExpired returns OPEN jobs whose confirm-by deadline or start
	// time has passed without the job filling, for the closing sweep.
	ListExpired(ctx context.Context, now time.Time) ([]*models.Job, error)

	UpdateSlotsAtomic(ctx context.Context, jobID uuid.UUID, expectedVersion int64, neededWorkers int) (*models.Job, error)
	UpdatePolicyAtomic(ctx context.Context, jobID uuid.UUID, expectedVersion int64, notice models.NoticeWindowType, compensationPct int) (*models.Job, error)
	AdvanceWaveAtomic(ctx context.Context, jobID uuid.UUID, expectedVersion int64, stage models.JobWaveStageType) (*models.Job, error)
	UpdateStatusAtomic(ctx context.Context, jobID uuid.UUID, newStatus models.JobStatusType, expectedVersion int64) (*models.Job, error)

	// CancelJobAtomic transitions the job to CANCELLED and every
	// affected application together, all-or-nothing. `decide` returns
	// the new status and compensation for one application, or
	// affected=false to leave it untouched.
	CancelJobAtomic(
		ctx context.Context,
		jobID uuid.UUID,
		decide func(app *models.JobApplication) (newStatus models.ApplicationStatusType, compensationEur float64, affected bool),
	) (*models.Job, []*models.JobApplication, error)
}

type jobRepo struct {
	db DB
}

func NewJobRepository(db DB) JobRepository {
	return &jobRepo{db: db}
}

func baseSelectJob() string {
	return `
        SELECT
            id, company_id, title, region, city,
            starts_at, duration_hours,
            requires_vzv, min_experience_level,
            hourly_rate_eur, contract_type, pay_employment_eur, pay_trade_license_eur,
            is_urgent, urgent_bonus_eur, confirm_by,
            is_bundle, bundle_min_days, bundle_min_hours, bundle_bonus_eur, bundle_hourly_rate_eur,
            notice_window, cancellation_compensation_pct,
            needed_workers, status, wave_stage, wave_started_at,
            row_version, created_at, updated_at
        FROM jobs
    `
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&j.Region,
		&j.City,
		&j.StartsAt,
		&j.DurationHours,
		&j.RequiresVZV,
		&j.MinExperienceLevel,
		&j.HourlyRateEur,
		&j.ContractType,
		&j.PayEmploymentEur,
		&j.PayTradeLicenseEur,
		&j.IsUrgent,
		&j.UrgentBonusEur,
		&j.ConfirmBy,
		&j.IsBundle,
		&j.BundleMinDays,
		&j.BundleMinHours,
		&j.BundleBonusEur,
		&j.BundleHourlyRateEur,
		&j.NoticeWindow,
		&j.CancellationCompensationPct,
		&j.NeededWorkers,
		&j.Status,
		&j.WaveStage,
		&j.WaveStartedAt,
		&j.RowVersion,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *models.Job) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO jobs (
            id, company_id, title, region, city,
            starts_at, duration_hours,
            requires_vzv, min_experience_level,
            hourly_rate_eur, contract_type, pay_employment_eur, pay_trade_license_eur,
            is_urgent, urgent_bonus_eur, confirm_by,
            is_bundle, bundle_min_days, bundle_min_hours, bundle_bonus_eur, bundle_hourly_rate_eur,
            notice_window, cancellation_compensation_pct,
            needed_workers, status, wave_stage, wave_started_at,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,
            $17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,1,NOW(),NOW()
        )
    `,
		job.ID, job.CompanyID, job.Title, job.Region, job.City,
		job.StartsAt, job.DurationHours,
		job.RequiresVZV, job.MinExperienceLevel,
		job.HourlyRateEur, job.ContractType, job.PayEmploymentEur, job.PayTradeLicenseEur,
		job.IsUrgent, job.UrgentBonusEur, job.ConfirmBy,
		job.IsBundle, job.BundleMinDays, job.BundleMinHours, job.BundleBonusEur, job.BundleHourlyRateEur,
		job.NoticeWindow, job.CancellationCompensationPct,
		job.NeededWorkers, job.Status, job.WaveStage, job.WaveStartedAt,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	row := r.db.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return j, err
}

func (r *jobRepo) queryJobs(ctx context.Context, query string, args ...interface{}) ([]*models.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *jobRepo) ListOpenForFeed(ctx context.Context, now, windowEnd time.Time) ([]*models.Job, error) {
	q := `
        SELECT
            j.id, j.company_id, j.title, j.region, j.city,
            j.starts_at, j.duration_hours,
            j.requires_vzv, j.min_experience_level,
            j.hourly_rate_eur, j.contract_type, j.pay_employment_eur, j.pay_trade_license_eur,
            j.is_urgent, j.urgent_bonus_eur, j.confirm_by,
            j.is_bundle, j.bundle_min_days, j.bundle_min_hours, j.bundle_bonus_eur, j.bundle_hourly_rate_eur,
            j.notice_window, j.cancellation_compensation_pct,
            j.needed_workers, j.status, j.wave_stage, j.wave_started_at,
            j.row_version, j.created_at, j.updated_at
        FROM jobs j
        JOIN companies c ON c.id = j.company_id
        WHERE j.status = 'OPEN'
          AND c.is_approved = TRUE
          AND c.onboarding_complete = TRUE
          AND j.starts_at > $1
          AND j.starts_at <= $2
          AND (j.confirm_by IS NULL OR j.confirm_by > $1)
        ORDER BY j.starts_at
    `
	return r.queryJobs(ctx, q, now, windowEnd)
}

func (r *jobRepo) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error) {
	return r.queryJobs(ctx, baseSelectJob()+" WHERE company_id=$1 ORDER BY starts_at", companyID)
}

func (r *jobRepo) ListOpenByCompanyBetween(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]*models.Job, error) {
	q := baseSelectJob() + `
        WHERE company_id=$1
          AND status='OPEN'
          AND starts_at >= $2
          AND starts_at <= $3
        ORDER BY starts_at
    `
	return r.queryJobs(ctx, q, companyID, from, to)
}

func (r *jobRepo) ListExpired(ctx context.Context, now time.Time) ([]*models.Job, error) {
	// Only OPEN jobs expire: a FULL job is staffed and proceeds to its
	// shift regardless of deadlines.
	q := baseSelectJob() + `
        WHERE status = 'OPEN'
          AND (starts_at <= $1 OR (confirm_by IS NOT NULL AND confirm_by <= $1))
        ORDER BY starts_at
    `
	return r.queryJobs(ctx, q, now)
}

// lockJob reads a job FOR UPDATE inside a transaction and verifies the
// caller's expected row version.
func lockJob(ctx context.Context, tx pgx.Tx, jobID uuid.UUID, expectedVersion int64) (*models.Job, error) {
	row := tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1 FOR UPDATE", jobID)
	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	if expectedVersion >= 0 && job.RowVersion != expectedVersion {
		return job, utils.ErrRowVersionConflict
	}
	return job, nil
}

func countConfirmed(ctx context.Context, tx pgx.Tx, jobID uuid.UUID) (int, error) {
	var n int
	err := tx.QueryRow(ctx, `
        SELECT COUNT(*) FROM job_applications
        WHERE job_id=$1 AND status='CONFIRMED'
    `, jobID).Scan(&n)
	return n, err
}

func (r *jobRepo) UpdateSlotsAtomic(
	ctx context.Context,
	jobID uuid.UUID,
	expectedVersion int64,
	neededWorkers int,
) (*models.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	job, err := lockJob(ctx, tx, jobID, expectedVersion)
	if err != nil {
		return job, err
	}
	if !job.IsActive() {
		err = utils.ErrJobNotOpen
		return job, err
	}

	confirmed, cErr := countConfirmed(ctx, tx, jobID)
	if cErr != nil {
		err = cErr
		return nil, err
	}
	if neededWorkers < confirmed {
		err = utils.ErrSlotsBelowConfirmed
		return job, err
	}

	newStatus := models.JobStatusOpen
	if neededWorkers == confirmed {
		newStatus = models.JobStatusFull
	}

	_, err = tx.Exec(ctx, `
        UPDATE jobs
        SET needed_workers=$1, status=$2,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$3
    `, neededWorkers, newStatus, jobID)
	if err != nil {
		return nil, err
	}

	return scanJob(tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", jobID))
}

func (r *jobRepo) UpdatePolicyAtomic(
	ctx context.Context,
	jobID uuid.UUID,
	expectedVersion int64,
	notice models.NoticeWindowType,
	compensationPct int,
) (*models.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	job, err := lockJob(ctx, tx, jobID, expectedVersion)
	if err != nil {
		return job, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE jobs
        SET notice_window=$1, cancellation_compensation_pct=$2,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$3
    `, notice, compensationPct, jobID)
	if err != nil {
		return nil, err
	}

	return scanJob(tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", jobID))
}

func (r *jobRepo) AdvanceWaveAtomic(
	ctx context.Context,
	jobID uuid.UUID,
	expectedVersion int64,
	stage models.JobWaveStageType,
) (*models.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	job, err := lockJob(ctx, tx, jobID, expectedVersion)
	if err != nil {
		return job, err
	}
	// Waves only ever move forward.
	if models.WaveStageIndex(stage) <= models.WaveStageIndex(job.WaveStage) {
		err = utils.ErrWaveRegression
		return job, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE jobs
        SET wave_stage=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, stage, jobID)
	if err != nil {
		return nil, err
	}

	return scanJob(tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", jobID))
}

func (r *jobRepo) UpdateStatusAtomic(
	ctx context.Context,
	jobID uuid.UUID,
	newStatus models.JobStatusType,
	expectedVersion int64,
) (*models.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	job, err := lockJob(ctx, tx, jobID, expectedVersion)
	if err != nil {
		return job, err
	}
	if !job.CanTransitionTo(newStatus) {
		err = utils.ErrInvalidStatusTransition
		return job, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE jobs
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, newStatus, jobID)
	if err != nil {
		return nil, err
	}

	return scanJob(tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", jobID))
}

func (r *jobRepo) CancelJobAtomic(
	ctx context.Context,
	jobID uuid.UUID,
	decide func(app *models.JobApplication) (models.ApplicationStatusType, float64, bool),
) (*models.Job, []*models.JobApplication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer finishTx(ctx, tx, &err)

	job, err := lockJob(ctx, tx, jobID, -1)
	if err != nil {
		return job, nil, err
	}
	if !job.CanTransitionTo(models.JobStatusCancelled) {
		err = utils.ErrInvalidStatusTransition
		return job, nil, err
	}

	// Lock every application for this job so the decision set is
	// consistent for the whole transaction.
	rows, qErr := tx.Query(ctx, baseSelectApplication()+" WHERE job_id=$1 FOR UPDATE", jobID)
	if qErr != nil {
		err = qErr
		return nil, nil, err
	}
	var apps []*models.JobApplication
	for rows.Next() {
		app, sErr := scanApplication(rows)
		if sErr != nil {
			rows.Close()
			err = sErr
			return nil, nil, err
		}
		apps = append(apps, app)
	}
	rows.Close()
	if rErr := rows.Err(); rErr != nil {
		err = rErr
		return nil, nil, err
	}

	var affected []*models.JobApplication
	for _, app := range apps {
		newStatus, compensation, ok := decide(app)
		if !ok {
			continue
		}
		_, err = tx.Exec(ctx, `
            UPDATE job_applications
            SET status=$1, compensation_eur=$2,
                row_version=row_version+1, updated_at=NOW()
            WHERE id=$3
        `, newStatus, compensation, app.ID)
		if err != nil {
			return nil, nil, err
		}
		app.Status = newStatus
		app.CompensationEur = compensation
		app.RowVersion++
		affected = append(affected, app)
	}

	_, err = tx.Exec(ctx, `
        UPDATE jobs
        SET status='CANCELLED', row_version=row_version+1, updated_at=NOW()
        WHERE id=$1
    `, jobID)
	if err != nil {
		return nil, nil, err
	}

	job, err = scanJob(tx.QueryRow(ctx, baseSelectJob()+" WHERE id=$1", jobID))
	if err != nil {
		return nil, nil, err
	}
	return job, affected, nil
}
