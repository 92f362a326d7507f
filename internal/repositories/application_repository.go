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

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.JobApplication) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error)
	GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*models.JobApplication, error)
	ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*models.JobApplication, error)
	ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*models.JobApplication, error)
	CountConfirmed(ctx context.Context, jobID uuid.UUID) (int, error)

	// HasWorkedConfirmed reports whether the worker has at least one
	// application with the company where both sides confirmed the shift.
	HasWorkedConfirmed(ctx context.Context, workerID, companyID uuid.UUID) (bool, error)

	// ConfirmAtomic confirms a pending application, enforcing the job's
	// capacity and flipping the job to FULL when the last slot fills.
	ConfirmAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.JobApplication, error)
	RejectAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.JobApplication, error)

	// CancelByWorkerAtomic moves a PENDING or CONFIRMED application to
	// newStatus. Cancelling a CONFIRMED slot reopens a FULL job.
	CancelByWorkerAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64, newStatus models.ApplicationStatusType) (*models.JobApplication, error)

	SetWorkedConfirmed(ctx context.Context, appID uuid.UUID, byCompany bool, at time.Time) (*models.JobApplication, error)
}

type applicationRepo struct {
	db DB
}

func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func baseSelectApplication() string {
	return `
        SELECT
            id, job_id, worker_id, status,
            match_score, estimated_earnings_eur, compensation_eur,
            worked_confirmed_by_company_at, worked_confirmed_by_worker_at,
            row_version, created_at, updated_at
        FROM job_applications
    `
}

func scanApplication(row pgx.Row) (*models.JobApplication, error) {
	var a models.JobApplication
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.WorkerID,
		&a.Status,
		&a.MatchScore,
		&a.EstimatedEarningsEur,
		&a.CompensationEur,
		&a.WorkedConfirmedByCompanyAt,
		&a.WorkedConfirmedByWorkerAt,
		&a.RowVersion,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *models.JobApplication) error {
	tag, err := r.db.Exec(ctx, `
        INSERT INTO job_applications (
            id, job_id, worker_id, status,
            match_score, estimated_earnings_eur, compensation_eur,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,0,1,NOW(),NOW())
        ON CONFLICT (job_id, worker_id) DO NOTHING
    `, app.ID, app.JobID, app.WorkerID, app.Status, app.MatchScore, app.EstimatedEarningsEur)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrDuplicateApplication
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobApplication, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", id)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return app, err
}

func (r *applicationRepo) GetByJobAndWorker(ctx context.Context, jobID, workerID uuid.UUID) (*models.JobApplication, error) {
	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE job_id=$1 AND worker_id=$2", jobID, workerID)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return app, err
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, args ...interface{}) ([]*models.JobApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *applicationRepo) ListByJobID(ctx context.Context, jobID uuid.UUID) ([]*models.JobApplication, error) {
	return r.queryApplications(ctx, baseSelectApplication()+" WHERE job_id=$1 ORDER BY created_at", jobID)
}

func (r *applicationRepo) ListByWorkerID(ctx context.Context, workerID uuid.UUID) ([]*models.JobApplication, error) {
	return r.queryApplications(ctx, baseSelectApplication()+" WHERE worker_id=$1 ORDER BY created_at DESC", workerID)
}

func (r *applicationRepo) CountConfirmed(ctx context.Context, jobID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*) FROM job_applications
        WHERE job_id=$1 AND status='CONFIRMED'
    `, jobID).Scan(&n)
	return n, err
}

func (r *applicationRepo) HasWorkedConfirmed(ctx context.Context, workerID, companyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1
            FROM job_applications a
            JOIN jobs j ON j.id = a.job_id
            WHERE a.worker_id = $1
              AND j.company_id = $2
              AND a.worked_confirmed_by_company_at IS NOT NULL
              AND a.worked_confirmed_by_worker_at IS NOT NULL
        )
    `, workerID, companyID).Scan(&exists)
	return exists, err
}

// lockApplication reads an application FOR UPDATE inside a transaction
// and verifies the caller's expected row version.
func lockApplication(ctx context.Context, tx pgx.Tx, appID uuid.UUID, expectedVersion int64) (*models.JobApplication, error) {
	row := tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1 FOR UPDATE", appID)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	if expectedVersion >= 0 && app.RowVersion != expectedVersion {
		return app, utils.ErrRowVersionConflict
	}
	return app, nil
}

func (r *applicationRepo) ConfirmAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.JobApplication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	app, err := lockApplication(ctx, tx, appID, expectedVersion)
	if err != nil {
		return app, err
	}
	if app.Status != models.ApplicationPending {
		err = utils.ErrWrongApplicationStatus
		return app, err
	}

	// Lock the job row too: the confirmed count and status flip must be
	// consistent with concurrent confirms.
	job, err := lockJob(ctx, tx, app.JobID, -1)
	if err != nil {
		return app, err
	}
	if !job.IsActive() {
		err = utils.ErrJobNotOpen
		return app, err
	}

	confirmed, cErr := countConfirmed(ctx, tx, app.JobID)
	if cErr != nil {
		err = cErr
		return nil, err
	}
	if confirmed >= job.NeededWorkers {
		err = utils.ErrCapacityReached
		return app, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE job_applications
        SET status='CONFIRMED', row_version=row_version+1, updated_at=NOW()
        WHERE id=$1
    `, appID)
	if err != nil {
		return nil, err
	}

	if confirmed+1 == job.NeededWorkers {
		_, err = tx.Exec(ctx, `
            UPDATE jobs
            SET status='FULL', row_version=row_version+1, updated_at=NOW()
            WHERE id=$1
        `, app.JobID)
		if err != nil {
			return nil, err
		}
	}

	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) RejectAtomic(ctx context.Context, appID uuid.UUID, expectedVersion int64) (*models.JobApplication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	app, err := lockApplication(ctx, tx, appID, expectedVersion)
	if err != nil {
		return app, err
	}
	if app.Status != models.ApplicationPending {
		err = utils.ErrWrongApplicationStatus
		return app, err
	}

	_, err = tx.Exec(ctx, `
        UPDATE job_applications
        SET status='REJECTED', row_version=row_version+1, updated_at=NOW()
        WHERE id=$1
    `, appID)
	if err != nil {
		return nil, err
	}

	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) CancelByWorkerAtomic(
	ctx context.Context,
	appID uuid.UUID,
	expectedVersion int64,
	newStatus models.ApplicationStatusType,
) (*models.JobApplication, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer finishTx(ctx, tx, &err)

	app, err := lockApplication(ctx, tx, appID, expectedVersion)
	if err != nil {
		return app, err
	}
	if !app.Status.IsOpen() {
		err = utils.ErrWrongApplicationStatus
		return app, err
	}
	wasConfirmed := app.Status == models.ApplicationConfirmed

	_, err = tx.Exec(ctx, `
        UPDATE job_applications
        SET status=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2
    `, newStatus, appID)
	if err != nil {
		return nil, err
	}

	if wasConfirmed {
		job, jErr := lockJob(ctx, tx, app.JobID, -1)
		if jErr != nil {
			err = jErr
			return nil, err
		}
		if job.Status == models.JobStatusFull {
			_, err = tx.Exec(ctx, `
                UPDATE jobs
                SET status='OPEN', row_version=row_version+1, updated_at=NOW()
                WHERE id=$1
            `, app.JobID)
			if err != nil {
				return nil, err
			}
		}
	}

	return scanApplication(tx.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID))
}

func (r *applicationRepo) SetWorkedConfirmed(ctx context.Context, appID uuid.UUID, byCompany bool, at time.Time) (*models.JobApplication, error) {
	column := "worked_confirmed_by_worker_at"
	if byCompany {
		column = "worked_confirmed_by_company_at"
	}

	tag, err := r.db.Exec(ctx, `
        UPDATE job_applications
        SET `+column+`=$1, row_version=row_version+1, updated_at=NOW()
        WHERE id=$2 AND status='CONFIRMED'
    `, at, appID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, utils.ErrWrongApplicationStatus
	}

	row := r.db.QueryRow(ctx, baseSelectApplication()+" WHERE id=$1", appID)
	return scanApplication(row)
}
