package services

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/twilio/twilio-go"

	"github.com/shiftpool/marketplace-backend/internal/config"
	"github.com/shiftpool/marketplace-backend/internal/repositories"
)

type JobService struct {
	cfg            *config.Config
	jobRepo        repositories.JobRepository
	appRepo        repositories.ApplicationRepository
	workerRepo     repositories.WorkerRepository
	companyRepo    repositories.CompanyRepository
	relRepo        repositories.RelationRepository
	narrowRepo     repositories.NarrowGroupRepository
	notifRepo      repositories.NotificationRepository
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
}

func NewJobService(
	cfg *config.Config,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	workerRepo repositories.WorkerRepository,
	companyRepo repositories.CompanyRepository,
	relRepo repositories.RelationRepository,
	narrowRepo repositories.NarrowGroupRepository,
	notifRepo repositories.NotificationRepository,
	twilioClient *twilio.RestClient,
	sendgridClient *sendgrid.Client,
) *JobService {
	return &JobService{
		cfg:            cfg,
		jobRepo:        jobRepo,
		appRepo:        appRepo,
		workerRepo:     workerRepo,
		companyRepo:    companyRepo,
		relRepo:        relRepo,
		narrowRepo:     narrowRepo,
		notifRepo:      notifRepo,
		twilioClient:   twilioClient,
		sendgridClient: sendgridClient,
	}
}
