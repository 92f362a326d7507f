package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"

	"github.com/shiftpool/marketplace-backend/internal/app"
	"github.com/shiftpool/marketplace-backend/internal/config"
	"github.com/shiftpool/marketplace-backend/internal/controllers"
	"github.com/shiftpool/marketplace-backend/internal/middleware"
	"github.com/shiftpool/marketplace-backend/internal/repositories"
	"github.com/shiftpool/marketplace-backend/internal/routes"
	"github.com/shiftpool/marketplace-backend/internal/services"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize marketplace-backend:", err)
	}
	defer application.Close()

	jobRepo := repositories.NewJobRepository(application.DB)
	appRepo := repositories.NewApplicationRepository(application.DB)
	workerRepo := repositories.NewWorkerRepository(application.DB)
	companyRepo := repositories.NewCompanyRepository(application.DB)
	relRepo := repositories.NewRelationRepository(application.DB)
	narrowRepo := repositories.NewNarrowGroupRepository(application.DB)
	notifRepo := repositories.NewNotificationRepository(application.DB)

	twClient := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	sgClient := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	jobService := services.NewJobService(
		cfg,
		jobRepo,
		appRepo,
		workerRepo,
		companyRepo,
		relRepo,
		narrowRepo,
		notifRepo,
		twClient,
		sgClient,
	)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), workerRepo, companyRepo, jobRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		}
		utils.Logger.Info("Seeded test data successfully")
	}

	jobsController := controllers.NewJobsController(jobService)
	companyController := controllers.NewCompanyJobsController(jobService)
	healthController := controllers.NewHealthController()

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)

	workerSecured := router.NewRoute().Subrouter()
	workerSecured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.RoleWorker))

	workerSecured.HandleFunc(routes.JobsFeed, jobsController.FeedHandler).Methods(http.MethodGet)
	workerSecured.HandleFunc(routes.JobsApply, jobsController.ApplyHandler).Methods(http.MethodPost)
	workerSecured.HandleFunc(routes.ApplicationsMy, jobsController.MyApplicationsHandler).Methods(http.MethodGet)
	workerSecured.HandleFunc(routes.ApplicationCancel, jobsController.CancelApplicationHandler).Methods(http.MethodPost)
	workerSecured.HandleFunc(routes.ApplicationWorked, jobsController.ConfirmWorkedHandler).Methods(http.MethodPost)
	workerSecured.HandleFunc(routes.CompaniesFavorite, jobsController.SetFavoriteHandler).Methods(http.MethodPost)
	workerSecured.HandleFunc(routes.NarrowBulkApply, jobsController.BulkApplyHandler).Methods(http.MethodPost)

	companySecured := router.NewRoute().Subrouter()
	companySecured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey, middleware.RoleCompany))

	companySecured.HandleFunc(routes.CompanyJobsBase, companyController.CreateJobHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyJobsBase, companyController.ListJobsHandler).Methods(http.MethodGet)
	companySecured.HandleFunc(routes.CompanyJobByID, companyController.GetJobHandler).Methods(http.MethodGet)
	companySecured.HandleFunc(routes.CompanyJobSlots, companyController.UpdateSlotsHandler).Methods(http.MethodPatch)
	companySecured.HandleFunc(routes.CompanyJobPolicy, companyController.UpdatePolicyHandler).Methods(http.MethodPatch)
	companySecured.HandleFunc(routes.CompanyJobWave, companyController.AdvanceWaveHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyJobClose, companyController.CloseJobHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyJobCancel, companyController.CancelJobHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyAppConfirm, companyController.ConfirmApplicationHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyAppReject, companyController.RejectApplicationHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyAppWorked, companyController.ConfirmWorkedHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyWorkerFlags, companyController.SetWorkerFlagsHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyNarrowGroups, companyController.CreateNarrowGroupHandler).Methods(http.MethodPost)
	companySecured.HandleFunc(routes.CompanyNarrowGroups, companyController.ListNarrowGroupsHandler).Methods(http.MethodGet)
	companySecured.HandleFunc(routes.CompanyNarrowSchemes, companyController.CreateNarrowSchemeHandler).Methods(http.MethodPost)

	c := cron.New()
	_, sweepErr := c.AddFunc("@every 5m", func() {
		jobService.RunExpirySweep(context.Background())
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule expiry sweep cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("marketplace-backend failed to start:", err)
	}
}
