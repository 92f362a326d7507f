package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/shiftpool/marketplace-backend/internal/constants"
	"github.com/shiftpool/marketplace-backend/internal/models"
)

type RelationRepository interface {
	GetByWorkerAndCompany(ctx context.Context, workerID, companyID uuid.UUID) (*models.WorkerCompanyRelation, error)

	// MapByWorkerID keys the worker's relations by company for feed
	// decoration in one pass.
	MapByWorkerID(ctx context.Context, workerID uuid.UUID) (map[uuid.UUID]*models.WorkerCompanyRelation, error)

	ListByNarrowGroup(ctx context.Context, groupID uuid.UUID) ([]*models.WorkerCompanyRelation, error)

	// SetFavorite upserts the relation and flips the worker-owned
	// favorite flag with optimistic-lock retries.
	SetFavorite(ctx context.Context, workerID, companyID uuid.UUID, favorite bool) error

	// SetCompanyFlags updates the company-owned flags the same way.
	SetCompanyFlags(ctx context.Context, workerID, companyID uuid.UUID, priority, narrow bool, narrowGroupID *uuid.UUID) error
}

type relationRepo struct {
	db DB
}

func NewRelationRepository(db DB) RelationRepository {
	return &relationRepo{db: db}
}

func baseSelectRelation() string {
	return `
        SELECT id, worker_id, company_id,
               is_favorite, is_priority, is_narrow_collaboration, narrow_group_id,
               row_version, created_at, updated_at
        FROM worker_company_relations
    `
}

func scanRelation(row pgx.Row) (*models.WorkerCompanyRelation, error) {
	var rel models.WorkerCompanyRelation
	err := row.Scan(
		&rel.ID, &rel.WorkerID, &rel.CompanyID,
		&rel.IsFavorite, &rel.IsPriority, &rel.IsNarrowCollaboration, &rel.NarrowGroupID,
		&rel.RowVersion, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *relationRepo) GetByWorkerAndCompany(ctx context.Context, workerID, companyID uuid.UUID) (*models.WorkerCompanyRelation, error) {
	row := r.db.QueryRow(ctx, baseSelectRelation()+" WHERE worker_id=$1 AND company_id=$2", workerID, companyID)
	rel, err := scanRelation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rel, err
}

func (r *relationRepo) getByID(ctx context.Context, id string) (*models.WorkerCompanyRelation, error) {
	row := r.db.QueryRow(ctx, baseSelectRelation()+" WHERE id=$1", id)
	rel, err := scanRelation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return rel, err
}

func (r *relationRepo) MapByWorkerID(ctx context.Context, workerID uuid.UUID) (map[uuid.UUID]*models.WorkerCompanyRelation, error) {
	rows, err := r.db.Query(ctx, baseSelectRelation()+" WHERE worker_id=$1", workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*models.WorkerCompanyRelation)
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		out[rel.CompanyID] = rel
	}
	return out, rows.Err()
}

func (r *relationRepo) ListByNarrowGroup(ctx context.Context, groupID uuid.UUID) ([]*models.WorkerCompanyRelation, error) {
	rows, err := r.db.Query(ctx, baseSelectRelation()+" WHERE narrow_group_id=$1 AND is_narrow_collaboration=TRUE", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.WorkerCompanyRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// ensure upserts an empty relation row for the pair and returns it.
func (r *relationRepo) ensure(ctx context.Context, workerID, companyID uuid.UUID) (*models.WorkerCompanyRelation, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO worker_company_relations (
            id, worker_id, company_id,
            is_favorite, is_priority, is_narrow_collaboration,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,FALSE,FALSE,FALSE,1,NOW(),NOW())
        ON CONFLICT (worker_id, company_id) DO NOTHING
    `, uuid.New(), workerID, companyID)
	if err != nil {
		return nil, err
	}
	return r.GetByWorkerAndCompany(ctx, workerID, companyID)
}

func (r *relationRepo) updateIfVersion(ctx context.Context, rel *models.WorkerCompanyRelation, expectedVersion int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE worker_company_relations
        SET is_favorite=$1, is_priority=$2, is_narrow_collaboration=$3, narrow_group_id=$4,
            row_version=row_version+1, updated_at=NOW()
        WHERE id=$5 AND row_version=$6
    `, rel.IsFavorite, rel.IsPriority, rel.IsNarrowCollaboration, rel.NarrowGroupID,
		rel.ID, expectedVersion)
}

func (r *relationRepo) mutateWithRetry(ctx context.Context, workerID, companyID uuid.UUID, mutate func(*models.WorkerCompanyRelation) error) error {
	rel, err := r.ensure(ctx, workerID, companyID)
	if err != nil {
		return err
	}

	return WithRetry(
		ctx,
		constants.MaxOptimisticRetries,
		rel.GetID(),
		r.getByID,
		r.updateIfVersion,
		mutate,
	)
}

func (r *relationRepo) SetFavorite(ctx context.Context, workerID, companyID uuid.UUID, favorite bool) error {
	return r.mutateWithRetry(ctx, workerID, companyID, func(rel *models.WorkerCompanyRelation) error {
		rel.IsFavorite = favorite
		return nil
	})
}

func (r *relationRepo) SetCompanyFlags(ctx context.Context, workerID, companyID uuid.UUID, priority, narrow bool, narrowGroupID *uuid.UUID) error {
	return r.mutateWithRetry(ctx, workerID, companyID, func(rel *models.WorkerCompanyRelation) error {
		rel.IsPriority = priority
		rel.IsNarrowCollaboration = narrow
		rel.NarrowGroupID = narrowGroupID
		return nil
	})
}
