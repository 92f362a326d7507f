package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

type WorkerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	Create(ctx context.Context, w *models.Worker) error
}

type workerRepo struct {
	db DB
}

func NewWorkerRepository(db DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	var w models.Worker
	var weekdays []int32
	var shiftTimes []string

	err := r.db.QueryRow(ctx, `
        SELECT
            id, email, phone, region,
            has_vzv, has_bozp, has_food_card, has_car, has_trade_license,
            experience_level, available_weekdays, available_shift_times,
            preferred_contract_type, min_hourly_rate_eur, min_hourly_rate_trade_eur,
            activity_score, reliability_score, is_ready, onboarding_complete,
            row_version, created_at, updated_at
        FROM workers
        WHERE id=$1
    `, id).Scan(
		&w.ID, &w.Email, &w.Phone, &w.Region,
		&w.HasVZV, &w.HasBOZP, &w.HasFoodCard, &w.HasCar, &w.HasTradeLicense,
		&w.ExperienceLevel, &weekdays, &shiftTimes,
		&w.PreferredContractType, &w.MinHourlyRateEur, &w.MinHourlyRateTradeEur,
		&w.ActivityScore, &w.ReliabilityScore, &w.IsReady, &w.OnboardingComplete,
		&w.RowVersion, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	w.AvailableWeekdays = make([]time.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		w.AvailableWeekdays = append(w.AvailableWeekdays, time.Weekday(d))
	}
	w.AvailableShiftTimes = make([]models.ShiftTimeType, 0, len(shiftTimes))
	for _, s := range shiftTimes {
		w.AvailableShiftTimes = append(w.AvailableShiftTimes, models.ShiftTimeType(s))
	}
	return &w, nil
}

func (r *workerRepo) Create(ctx context.Context, w *models.Worker) error {
	weekdays := make([]int32, 0, len(w.AvailableWeekdays))
	for _, d := range w.AvailableWeekdays {
		weekdays = append(weekdays, int32(d))
	}
	shiftTimes := make([]string, 0, len(w.AvailableShiftTimes))
	for _, s := range w.AvailableShiftTimes {
		shiftTimes = append(shiftTimes, string(s))
	}

	_, err := r.db.Exec(ctx, `
        INSERT INTO workers (
            id, email, phone, region,
            has_vzv, has_bozp, has_food_card, has_car, has_trade_license,
            experience_level, available_weekdays, available_shift_times,
            preferred_contract_type, min_hourly_rate_eur, min_hourly_rate_trade_eur,
            activity_score, reliability_score, is_ready, onboarding_complete,
            row_version, created_at, updated_at
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
            1,NOW(),NOW()
        )
    `,
		w.ID, w.Email, w.Phone, w.Region,
		w.HasVZV, w.HasBOZP, w.HasFoodCard, w.HasCar, w.HasTradeLicense,
		w.ExperienceLevel, weekdays, shiftTimes,
		w.PreferredContractType, w.MinHourlyRateEur, w.MinHourlyRateTradeEur,
		w.ActivityScore, w.ReliabilityScore, w.IsReady, w.OnboardingComplete,
	)
	return err
}
