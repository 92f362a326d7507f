package controllers

import (
	"net/http"

	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/services"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// CompanyJobsController serves the company-facing endpoints.
type CompanyJobsController struct {
	jobService *services.JobService
}

func NewCompanyJobsController(js *services.JobService) *CompanyJobsController {
	return &CompanyJobsController{jobService: js}
}

// ----------------------------------------------------------------
// POST /api/v1/company/jobs
// ----------------------------------------------------------------
func (c *CompanyJobsController) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateJobRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := c.jobService.CreateJob(r.Context(), companyID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, job)
}

// ----------------------------------------------------------------
// GET /api/v1/company/jobs
// ----------------------------------------------------------------
func (c *CompanyJobsController) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	jobs, err := c.jobService.ListCompanyJobs(r.Context(), companyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, jobs)
}

// ----------------------------------------------------------------
// GET /api/v1/company/jobs/{id}
// ----------------------------------------------------------------
func (c *CompanyJobsController) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := c.jobService.GetJobWithApplications(r.Context(), companyID, jobID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// PATCH /api/v1/company/jobs/{id}/slots
// ----------------------------------------------------------------
func (c *CompanyJobsController) UpdateSlotsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateSlotsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := c.jobService.UpdateSlots(r.Context(), companyID, jobID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job)
}

// ----------------------------------------------------------------
// PATCH /api/v1/company/jobs/{id}/policy
// ----------------------------------------------------------------
func (c *CompanyJobsController) UpdatePolicyHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdatePolicyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := c.jobService.UpdatePolicy(r.Context(), companyID, jobID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job)
}

// ----------------------------------------------------------------
// POST /api/v1/company/jobs/{id}/wave
// ----------------------------------------------------------------
func (c *CompanyJobsController) AdvanceWaveHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.AdvanceWaveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := c.jobService.AdvanceWave(r.Context(), companyID, jobID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job)
}

// ----------------------------------------------------------------
// POST /api/v1/company/jobs/{id}/close
// ----------------------------------------------------------------
func (c *CompanyJobsController) CloseJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.CancelApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	job, err := c.jobService.CloseJob(r.Context(), companyID, jobID, req.RowVersion)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, job)
}

// ----------------------------------------------------------------
// POST /api/v1/company/jobs/{id}/cancel
// ----------------------------------------------------------------
func (c *CompanyJobsController) CancelJobHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := c.jobService.CancelJob(r.Context(), companyID, jobID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/{id}/confirm
// ----------------------------------------------------------------
func (c *CompanyJobsController) ConfirmApplicationHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.DecideApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.jobService.ConfirmApplication(r.Context(), companyID, appID, req.RowVersion)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/{id}/reject
// ----------------------------------------------------------------
func (c *CompanyJobsController) RejectApplicationHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.DecideApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.jobService.RejectApplication(r.Context(), companyID, appID, req.RowVersion)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/applications/{id}/worked
// ----------------------------------------------------------------
func (c *CompanyJobsController) ConfirmWorkedHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r)
	if !ok {
		return
	}

	app, err := c.jobService.ConfirmWorkedByCompany(r.Context(), companyID, appID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/company/workers/flags
// ----------------------------------------------------------------
func (c *CompanyJobsController) SetWorkerFlagsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.SetWorkerFlagsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.jobService.SetWorkerFlags(r.Context(), companyID, &req); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// ----------------------------------------------------------------
// POST /api/v1/company/narrow/groups
// ----------------------------------------------------------------
func (c *CompanyJobsController) CreateNarrowGroupHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateNarrowGroupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	group, err := c.jobService.CreateNarrowGroup(r.Context(), companyID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, group)
}

// ----------------------------------------------------------------
// GET /api/v1/company/narrow/groups
// ----------------------------------------------------------------
func (c *CompanyJobsController) ListNarrowGroupsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	groups, err := c.jobService.ListNarrowGroups(r.Context(), companyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, groups)
}

// ----------------------------------------------------------------
// POST /api/v1/company/narrow/groups/{id}/schemes
// ----------------------------------------------------------------
func (c *CompanyJobsController) CreateNarrowSchemeHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	groupID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateNarrowSchemeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	scheme, err := c.jobService.CreateNarrowScheme(r.Context(), companyID, groupID, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, scheme)
}
