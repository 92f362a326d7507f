package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpool/marketplace-backend/internal/config"
	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/repositories"
)

// The fakes embed the repository interfaces and override only what the
// feed path touches; anything else would panic and fail the test.

type stubJobRepo struct {
	repositories.JobRepository
	jobs []*models.Job
}

func (r *stubJobRepo) ListOpenForFeed(ctx context.Context, now, windowEnd time.Time) ([]*models.Job, error) {
	return r.jobs, nil
}

type stubWorkerRepo struct {
	repositories.WorkerRepository
	worker *models.Worker
}

func (r *stubWorkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	return r.worker, nil
}

type stubRelationRepo struct {
	repositories.RelationRepository
	rels map[uuid.UUID]*models.WorkerCompanyRelation
}

func (r *stubRelationRepo) MapByWorkerID(ctx context.Context, workerID uuid.UUID) (map[uuid.UUID]*models.WorkerCompanyRelation, error) {
	return r.rels, nil
}

type stubAppRepo struct {
	repositories.ApplicationRepository
	workedWith map[uuid.UUID]bool
}

func (r *stubAppRepo) HasWorkedConfirmed(ctx context.Context, workerID, companyID uuid.UUID) (bool, error) {
	return r.workedWith[companyID], nil
}

func newFeedService(
	jobs []*models.Job,
	worker *models.Worker,
	rels map[uuid.UUID]*models.WorkerCompanyRelation,
	workedWith map[uuid.UUID]bool,
) *JobService {
	return NewJobService(
		&config.Config{},
		&stubJobRepo{jobs: jobs},
		&stubAppRepo{workedWith: workedWith},
		&stubWorkerRepo{worker: worker},
		nil, // companyRepo
		&stubRelationRepo{rels: rels},
		nil, // narrowRepo
		nil, // notifRepo
		nil, // twilio
		nil, // sendgrid
	)
}

func feedWorker() *models.Worker {
	return &models.Worker{
		ID:                 uuid.New(),
		Region:             "Bratislava",
		ExperienceLevel:    models.ExperienceBasic,
		AvailableWeekdays:  []time.Weekday{time.Monday, time.Tuesday},
		IsReady:            true,
		OnboardingComplete: true,
	}
}

func publicFeedJob(companyID uuid.UUID) *models.Job {
	now := time.Now().UTC()
	return &models.Job{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Title:         "Warehouse shift",
		Region:        "Bratislava",
		City:          "Bratislava",
		StartsAt:      now.Add(72 * time.Hour),
		DurationHours: 8,
		HourlyRateEur: 10,
		NoticeWindow:  models.NoticeWindow24h,
		NeededWorkers: 1,
		Status:        models.JobStatusOpen,
		WaveStage:     models.WaveStage1,
		WaveStartedAt: now.Add(-48 * time.Hour),
	}
}

func bp(b bool) *bool { return &b }

// A bundle job whose thresholds the worker does not meet stays in the
// feed and ranks below comparable jobs; only the apply flow rejects it.
func TestFeedKeepsBundleBelowThresholdJobs(t *testing.T) {
	companyID := uuid.New()
	worker := feedWorker() // 2 available weekdays

	plain := publicFeedJob(companyID)
	bundle := publicFeedJob(companyID)
	bundle.IsBundle = true
	minDays := 3
	bundle.BundleMinDays = &minDays

	svc := newFeedService([]*models.Job{bundle, plain}, worker, nil, nil)

	items, err := svc.ListOpenJobsForWorker(context.Background(), worker.ID, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, plain.ID, items[0].Job.ID)
	assert.Equal(t, bundle.ID, items[1].Job.ID)
	assert.Less(t, items[1].MatchScore, items[0].MatchScore)
}

func TestFeedFavoritesOnlyFilter(t *testing.T) {
	favCompany := uuid.New()
	otherCompany := uuid.New()
	worker := feedWorker()

	favJob := publicFeedJob(favCompany)
	otherJob := publicFeedJob(otherCompany)

	rels := map[uuid.UUID]*models.WorkerCompanyRelation{
		favCompany: {WorkerID: worker.ID, CompanyID: favCompany, IsFavorite: true},
	}
	svc := newFeedService([]*models.Job{favJob, otherJob}, worker, rels, nil)

	items, err := svc.ListOpenJobsForWorker(context.Background(), worker.ID, &dtos.FeedFilters{FavoritesOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, favJob.ID, items[0].Job.ID)
	assert.True(t, items[0].IsFavoriteCompany)
}

func TestFeedRelationshipDecoration(t *testing.T) {
	companyID := uuid.New()
	worker := feedWorker()
	job := publicFeedJob(companyID)

	rels := map[uuid.UUID]*models.WorkerCompanyRelation{
		companyID: {
			WorkerID:              worker.ID,
			CompanyID:             companyID,
			IsFavorite:            true,
			IsPriority:            true,
			IsNarrowCollaboration: true,
		},
	}
	worked := map[uuid.UUID]bool{companyID: true}

	svc := newFeedService([]*models.Job{job}, worker, rels, worked)

	items, err := svc.ListOpenJobsForWorker(context.Background(), worker.ID, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.True(t, item.IsFavoriteCompany)
	assert.True(t, item.IsPriorityCompany)
	assert.True(t, item.IsNarrowCollaboration)
	assert.True(t, item.HasWorkedWithCompany)
}

func TestFeedFilterAllows(t *testing.T) {
	employment := models.ContractEmployment
	trade := models.ContractTradeLicense
	h12 := models.NoticeWindow12h

	job := publicFeedJob(uuid.New())
	offer := &matching.Offer{ContractType: models.ContractEmployment, HourlyRateEur: 10}

	urgent := publicFeedJob(uuid.New())
	urgent.IsUrgent = true
	urgent.UrgentBonusEur = 15

	cases := []struct {
		name    string
		filters *dtos.FeedFilters
		job     *models.Job
		want    bool
	}{
		{"nil filters", nil, job, true},
		{"empty filters", &dtos.FeedFilters{}, job, true},
		{"contract match", &dtos.FeedFilters{ContractType: &employment}, job, true},
		{"contract mismatch", &dtos.FeedFilters{ContractType: &trade}, job, false},
		{"notice mismatch", &dtos.FeedFilters{NoticeWindow: &h12}, job, false},
		{"urgent wanted, plain job", &dtos.FeedFilters{IsUrgent: bp(true)}, job, false},
		{"urgent wanted, urgent job", &dtos.FeedFilters{IsUrgent: bp(true)}, urgent, true},
		{"bundle excluded", &dtos.FeedFilters{IsBundle: bp(false)}, job, true},
		{"bonus wanted, plain job", &dtos.FeedFilters{HasBonus: bp(true)}, job, false},
		{"bonus wanted, urgent bonus", &dtos.FeedFilters{HasBonus: bp(true)}, urgent, true},
		{"city match ignores case", &dtos.FeedFilters{City: "bratislava"}, job, true},
		{"city mismatch", &dtos.FeedFilters{City: "Kosice"}, job, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, feedFilterAllows(tc.filters, tc.job, offer, nil))
		})
	}
}

func TestFeedContractTypeFilterUsesResolvedOffer(t *testing.T) {
	companyID := uuid.New()
	worker := feedWorker()
	worker.HasTradeLicense = true

	tradeRate := 12.0
	job := publicFeedJob(companyID)
	job.PayTradeLicenseEur = &tradeRate // best offer resolves to TRADE_LICENSE

	svc := newFeedService([]*models.Job{job}, worker, nil, nil)

	employment := models.ContractEmployment
	items, err := svc.ListOpenJobsForWorker(context.Background(), worker.ID, &dtos.FeedFilters{ContractType: &employment})
	require.NoError(t, err)
	assert.Empty(t, items)

	trade := models.ContractTradeLicense
	items, err = svc.ListOpenJobsForWorker(context.Background(), worker.ID, &dtos.FeedFilters{ContractType: &trade})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 12.0, items[0].Offer.HourlyRateEur)
}
