package v1

import (
	"net/http"
	"strconv"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Candidate routes
	candidates := r.Group("/candidates")
	{
		candidates.POST("/jobs/:jobId/apply", handler.ApplyToJob)
		candidates.GET("/applications", handler.GetMyApplications)
		candidates.GET("/applications/:id", handler.GetMyApplication)
	}

	// Recruiter routes
	recruiters := r.Group("/recruiters")
	{
		recruiters.GET("/jobs/:jobId/applications", handler.ListJobApplications)
		recruiters.GET("/jobs/:jobId/applications/export", handler.ExportJobApplications)
		recruiters.PATCH("/applications/:id/status", handler.UpdateApplicationStatus)
	}
}

// ApplyToJobRequest is the request payload for applying to a job. The resume
// URL is optional for candidates with a stored profile.
type ApplyToJobRequest struct {
	ResumeURL string `json:"resume_url"`
}

// UpdateStatusRequest is the request payload for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit an application for an active job (Candidate only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                true   "Job ID"
// @Param        body   body      ApplyToJobRequest  false  "Application data"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can apply to jobs"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	// Body is optional, an empty submit relies on the stored profile
	var req ApplyToJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), userID, jobID, req.ResumeURL)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  Get all applications submitted by the current candidate
// @Tags         applications
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Failure      401     {object}  response.Response
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// GetMyApplication godoc
// @Summary      Get one of my applications
// @Description  Get a single application with its frozen profile snapshot and score breakdown
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplication(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	appID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	app, err := h.applicationUC.GetMyApplication(c.Request.Context(), userID, appID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// ListJobApplications godoc
// @Summary      List applications for a job
// @Description  Get applications for a job the recruiter owns, optionally filtered by status and sorted by score
// @Tags         applications
// @Produce      json
// @Param        jobId   path      int     true   "Job ID"
// @Param        status  query     string  false  "Filter by status"
// @Param        sort    query     string  false  "Set to 'score' for best matches first"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can review applications"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	filter := domain.ApplicationFilter{
		Status:      c.Query("status"),
		SortByScore: c.Query("sort") == "score",
	}

	applications, err := h.applicationUC.ListByJobID(c.Request.Context(), userID, jobID, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move an application to a new status (Recruiter only, owner of the job)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "Target status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      403   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /recruiters/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can update application status"))
		return
	}

	appID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), userID, appID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// ExportJobApplications godoc
// @Summary      Export applications for a job
// @Description  Download a job's applications as a spreadsheet, strongest matches first
// @Tags         applications
// @Produce      application/octet-stream
// @Param        jobId   path      int     true   "Job ID"
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Success      200     {file}    binary
// @Failure      403     {object}  response.Response
// @Router       /recruiters/jobs/{jobId}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportJobApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters can export applications"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	data, filename, err := h.applicationUC.ExportByJobID(c.Request.Context(), userID, jobID, c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if c.Query("format") == "csv" {
		contentType = "text/csv"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
