package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/middleware"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/services"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

var validate = validator.New()

// JobsController serves the worker-facing endpoints.
type JobsController struct {
	jobService *services.JobService
}

func NewJobsController(js *services.JobService) *JobsController {
	return &JobsController{jobService: js}
}

// authedUserID pulls the authenticated subject out of the context and
// parses it as a UUID. A zero return means the response is already
// written.
func authedUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sub := middleware.UserIDFromContext(r.Context())
	if sub == "" {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil,
		)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed userID in token", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate parses the JSON body into dst and runs the
// validator. A false return means the response is already written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err,
		)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil,
		)
		return false
	}
	return true
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id in path", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// parseFeedFilters reads the optional feed filters from the query
// string. Absent parameters stay inactive.
func parseFeedFilters(r *http.Request) (*dtos.FeedFilters, error) {
	q := r.URL.Query()
	f := &dtos.FeedFilters{City: q.Get("city")}

	if v := q.Get("contract_type"); v != "" {
		ct := models.ContractType(v)
		if ct != models.ContractEmployment && ct != models.ContractTradeLicense {
			return nil, fmt.Errorf("unknown contract_type %q", v)
		}
		f.ContractType = &ct
	}
	if v := q.Get("notice_window"); v != "" {
		nw := models.NoticeWindowType(v)
		if nw != models.NoticeWindow12h && nw != models.NoticeWindow24h && nw != models.NoticeWindow48h {
			return nil, fmt.Errorf("unknown notice_window %q", v)
		}
		f.NoticeWindow = &nw
	}

	var err error
	if f.IsUrgent, err = optionalBool(q.Get("is_urgent"), "is_urgent"); err != nil {
		return nil, err
	}
	if f.IsBundle, err = optionalBool(q.Get("is_bundle"), "is_bundle"); err != nil {
		return nil, err
	}
	if f.HasBonus, err = optionalBool(q.Get("has_bonus"), "has_bonus"); err != nil {
		return nil, err
	}

	if v := q.Get("favorites_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid favorites_only %q", v)
		}
		f.FavoritesOnly = b
	}

	return f, nil
}

func optionalBool(v, name string) (*bool, error) {
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, v)
	}
	return &b, nil
}

// ----------------------------------------------------------------
// GET /api/v1/jobs/feed
// ----------------------------------------------------------------
func (c *JobsController) FeedHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	filters, err := parseFeedFilters(r)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil,
		)
		return
	}

	items, err := c.jobService.ListOpenJobsForWorker(r.Context(), workerID, filters)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// ----------------------------------------------------------------
// POST /api/v1/jobs/apply
// ----------------------------------------------------------------
func (c *JobsController) ApplyHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.ApplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.jobService.ApplyToJob(r.Context(), workerID, req.JobID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, app)
}

// ----------------------------------------------------------------
// GET /api/v1/applications/my
// ----------------------------------------------------------------
func (c *JobsController) MyApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	apps, err := c.jobService.ListMyApplications(r.Context(), workerID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, apps)
}

// ----------------------------------------------------------------
// POST /api/v1/applications/{id}/cancel
// ----------------------------------------------------------------
func (c *JobsController) CancelApplicationHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.CancelApplicationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	app, err := c.jobService.CancelMyApplication(r.Context(), workerID, appID, req.RowVersion)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/applications/{id}/worked
// ----------------------------------------------------------------
func (c *JobsController) ConfirmWorkedHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	appID, ok := pathID(w, r)
	if !ok {
		return
	}

	app, err := c.jobService.ConfirmWorkedByWorker(r.Context(), workerID, appID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

// ----------------------------------------------------------------
// POST /api/v1/companies/favorite
// ----------------------------------------------------------------
func (c *JobsController) SetFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.SetFavoriteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.jobService.SetFavoriteCompany(r.Context(), workerID, req.CompanyID, req.Favorite); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// ----------------------------------------------------------------
// POST /api/v1/narrow/bulk-apply
// ----------------------------------------------------------------
func (c *JobsController) BulkApplyHandler(w http.ResponseWriter, r *http.Request) {
	workerID, ok := authedUserID(w, r)
	if !ok {
		return
	}

	var req dtos.BulkApplyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.jobService.BulkApplyScheme(r.Context(), workerID, req.SchemeID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
