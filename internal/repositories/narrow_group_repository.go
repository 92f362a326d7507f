package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

type NarrowGroupRepository interface {
	CreateGroup(ctx context.Context, g *models.NarrowCollaborationGroup) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (*models.NarrowCollaborationGroup, error)
	ListGroupsByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.NarrowCollaborationGroup, error)

	CreateScheme(ctx context.Context, s *models.NarrowScheme) error
	GetSchemeByID(ctx context.Context, id uuid.UUID) (*models.NarrowScheme, error)
	ListSchemesByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.NarrowScheme, error)
}

type narrowGroupRepo struct {
	db DB
}

func NewNarrowGroupRepository(db DB) NarrowGroupRepository {
	return &narrowGroupRepo{db: db}
}

func (r *narrowGroupRepo) CreateGroup(ctx context.Context, g *models.NarrowCollaborationGroup) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO narrow_collaboration_groups (
            id, company_id, name, max_advance_weeks,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,1,NOW(),NOW())
    `, g.ID, g.CompanyID, g.Name, g.MaxAdvanceWeeks)
	return err
}

func (r *narrowGroupRepo) GetGroupByID(ctx context.Context, id uuid.UUID) (*models.NarrowCollaborationGroup, error) {
	var g models.NarrowCollaborationGroup
	err := r.db.QueryRow(ctx, `
        SELECT id, company_id, name, max_advance_weeks,
               row_version, created_at, updated_at
        FROM narrow_collaboration_groups
        WHERE id=$1
    `, id).Scan(&g.ID, &g.CompanyID, &g.Name, &g.MaxAdvanceWeeks,
		&g.RowVersion, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *narrowGroupRepo) ListGroupsByCompany(ctx context.Context, companyID uuid.UUID) ([]*models.NarrowCollaborationGroup, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, company_id, name, max_advance_weeks,
               row_version, created_at, updated_at
        FROM narrow_collaboration_groups
        WHERE company_id=$1
        ORDER BY created_at
    `, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.NarrowCollaborationGroup
	for rows.Next() {
		var g models.NarrowCollaborationGroup
		if err := rows.Scan(&g.ID, &g.CompanyID, &g.Name, &g.MaxAdvanceWeeks,
			&g.RowVersion, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

func (r *narrowGroupRepo) CreateScheme(ctx context.Context, s *models.NarrowScheme) error {
	weekdays := make([]int32, 0, len(s.Weekdays))
	for _, d := range s.Weekdays {
		weekdays = append(weekdays, int32(d))
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO narrow_schemes (
            id, group_id, name, weekdays,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,1,NOW(),NOW())
    `, s.ID, s.GroupID, s.Name, weekdays)
	return err
}

func scanScheme(row pgx.Row) (*models.NarrowScheme, error) {
	var s models.NarrowScheme
	var weekdays []int32
	err := row.Scan(&s.ID, &s.GroupID, &s.Name, &weekdays,
		&s.RowVersion, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Weekdays = make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		s.Weekdays = append(s.Weekdays, time.Weekday(d))
	}
	return &s, nil
}

func (r *narrowGroupRepo) GetSchemeByID(ctx context.Context, id uuid.UUID) (*models.NarrowScheme, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, group_id, name, weekdays,
               row_version, created_at, updated_at
        FROM narrow_schemes
        WHERE id=$1
    `, id)
	s, err := scanScheme(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *narrowGroupRepo) ListSchemesByGroup(ctx context.Context, groupID uuid.UUID) ([]*models.NarrowScheme, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, group_id, name, weekdays,
               row_version, created_at, updated_at
        FROM narrow_schemes
        WHERE group_id=$1
        ORDER BY created_at
    `, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.NarrowScheme
	for rows.Next() {
		s, err := scanScheme(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
