package routes

const (
	// Health
	Health = "/health"

	// Worker endpoints
	JobsFeed            = "/api/v1/jobs/feed"
	JobsApply           = "/api/v1/jobs/apply"
	ApplicationsMy      = "/api/v1/applications/my"
	ApplicationCancel   = "/api/v1/applications/{id}/cancel"
	ApplicationWorked   = "/api/v1/applications/{id}/worked"
	CompaniesFavorite   = "/api/v1/companies/favorite"
	NarrowBulkApply     = "/api/v1/narrow/bulk-apply"

	// Company endpoints
	CompanyJobsBase        = "/api/v1/company/jobs"
	CompanyJobByID         = "/api/v1/company/jobs/{id}"
	CompanyJobSlots        = "/api/v1/company/jobs/{id}/slots"
	CompanyJobPolicy       = "/api/v1/company/jobs/{id}/policy"
	CompanyJobWave         = "/api/v1/company/jobs/{id}/wave"
	CompanyJobClose        = "/api/v1/company/jobs/{id}/close"
	CompanyJobCancel       = "/api/v1/company/jobs/{id}/cancel"
	CompanyAppConfirm      = "/api/v1/company/applications/{id}/confirm"
	CompanyAppReject       = "/api/v1/company/applications/{id}/reject"
	CompanyAppWorked       = "/api/v1/company/applications/{id}/worked"
	CompanyWorkerFlags     = "/api/v1/company/workers/flags"
	CompanyNarrowGroups    = "/api/v1/company/narrow/groups"
	CompanyNarrowSchemes   = "/api/v1/company/narrow/groups/{id}/schemes"
)
