package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) error
}

type companyRepo struct {
	db DB
}

func NewCompanyRepository(db DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	err := r.db.QueryRow(ctx, `
        SELECT id, name, email, region, city,
               is_approved, onboarding_complete, narrow_cutoff_hour,
               row_version, created_at, updated_at
        FROM companies
        WHERE id=$1
    `, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Region, &c.City,
		&c.IsApproved, &c.OnboardingComplete, &c.NarrowCutoffHour,
		&c.RowVersion, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO companies (
            id, name, email, region, city,
            is_approved, onboarding_complete, narrow_cutoff_hour,
            row_version, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,1,NOW(),NOW())
    `, c.ID, c.Name, c.Email, c.Region, c.City,
		c.IsApproved, c.OnboardingComplete, c.NarrowCutoffHour)
	return err
}
