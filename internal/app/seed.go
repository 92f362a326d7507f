package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/repositories"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// SeedTestData inserts a small demo dataset: one approved company, two
// onboarded workers and a pair of open jobs. Only meant for dev and
// test environments behind the seed flag.
func SeedTestData(
	ctx context.Context,
	workerRepo repositories.WorkerRepository,
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
) error {
	now := time.Now().UTC()

	company := &models.Company{
		ID:                 uuid.New(),
		Name:               "Sklad Bratislava s.r.o.",
		Email:              "ops@sklad-ba.sk",
		Region:             "Bratislava",
		City:               "Bratislava",
		IsApproved:         true,
		OnboardingComplete: true,
		NarrowCutoffHour:   18,
	}
	if err := companyRepo.Create(ctx, company); err != nil {
		return err
	}

	employment := models.ContractEmployment
	minRate := 9.0

	workers := []*models.Worker{
		{
			ID:                    uuid.New(),
			Email:                 "jan.novak@example.sk",
			Phone:                 "+421900000001",
			Region:                "Bratislava",
			HasVZV:                true,
			HasTradeLicense:       true,
			ExperienceLevel:       models.ExperienceIntermediate,
			AvailableWeekdays:     []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
			PreferredContractType: nil,
			MinHourlyRateEur:      &minRate,
			ActivityScore:         12,
			ReliabilityScore:      14,
			IsReady:               true,
			OnboardingComplete:    true,
		},
		{
			ID:                    uuid.New(),
			Email:                 "eva.kovacova@example.sk",
			Phone:                 "+421900000002",
			Region:                "Bratislava",
			ExperienceLevel:       models.ExperienceBasic,
			AvailableWeekdays:     []time.Weekday{time.Saturday, time.Sunday},
			PreferredContractType: &employment,
			ActivityScore:         5,
			ReliabilityScore:      8,
			IsReady:               true,
			OnboardingComplete:    true,
		},
	}
	for _, w := range workers {
		if err := workerRepo.Create(ctx, w); err != nil {
			return err
		}
	}

	jobs := []*models.Job{
		{
			ID:            uuid.New(),
			CompanyID:     company.ID,
			Title:         "Warehouse picker, morning shift",
			Region:        "Bratislava",
			City:          "Bratislava",
			StartsAt:      now.AddDate(0, 0, 3).Truncate(time.Hour),
			DurationHours: 8,
			HourlyRateEur: 10.5,
			NoticeWindow:  models.NoticeWindow24h,
			NeededWorkers: 3,
			Status:        models.JobStatusOpen,
			WaveStage:     models.WaveStage1,
			WaveStartedAt: now,
		},
		{
			ID:             uuid.New(),
			CompanyID:      company.ID,
			Title:          "Forklift operator, urgent cover",
			Region:         "Bratislava",
			City:           "Bratislava",
			StartsAt:       now.AddDate(0, 0, 1).Truncate(time.Hour),
			DurationHours:  8,
			RequiresVZV:    true,
			HourlyRateEur:  12,
			IsUrgent:       true,
			UrgentBonusEur: 15,
			NoticeWindow:   models.NoticeWindow12h,

			CancellationCompensationPct: 50,
			NeededWorkers:               1,
			Status:                      models.JobStatusOpen,
			WaveStage:                   models.WaveStage1,
			WaveStartedAt:               now,
		},
	}
	for _, j := range jobs {
		if err := jobRepo.Create(ctx, j); err != nil {
			return err
		}
	}

	utils.Logger.Infof("Seeded %d workers and %d jobs for company %s", len(workers), len(jobs), company.Name)
	return nil
}
