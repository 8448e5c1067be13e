package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/municipal_incidents/internal/config"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/shenikar/municipal_incidents/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService  service.IncidentService
	directoryService service.DirectoryService
	tokens           TokenValidator
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	incidentService service.IncidentService,
	directoryService service.DirectoryService,
	tokens TokenValidator,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		incidentService:  incidentService,
		directoryService: directoryService,
		tokens:           tokens,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// errorResponse сопоставляет доменную ошибку с HTTP-статусом и текстом для клиента
func errorResponse(err error) (int, string) {
	var (
		validationErr *apperrors.ValidationError
		authzErr      *apperrors.AuthorizationError
		notFoundErr   *apperrors.NotFoundError
		transitionErr *apperrors.TransitionError
		deliveryErr   *apperrors.DeliveryError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, apperrors.ErrMissingRejectionReason):
		return http.StatusBadRequest, apperrors.ErrMissingRejectionReason.Error()
	case errors.As(err, &authzErr):
		return http.StatusForbidden, authzErr.Error()
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &transitionErr):
		return http.StatusConflict, transitionErr.Error()
	case errors.Is(err, apperrors.ErrNotInProgress):
		return http.StatusConflict, apperrors.ErrNotInProgress.Error()
	case errors.Is(err, apperrors.ErrMissingEvidence):
		return http.StatusUnprocessableEntity, apperrors.ErrMissingEvidence.Error()
	case errors.As(err, &deliveryErr):
		return http.StatusBadGateway, "notification could not be delivered, the change was not applied"
	}
	return http.StatusInternalServerError, "internal server error"
}

func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, gin.H{"error": message})
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	return parseParam(c, "id", name)
}

// parseParam читает UUID из параметра пути; name - сущность для текста ошибки
func parseParam(c *gin.Context, param, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s ID", name)})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON разбирает и валидирует тело; allowEmpty допускает запрос без тела
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, dst any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return false
		}
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Create a new incident
// @Description Create a new incident in 'pending'. Requires create permission.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input, false) {
		return
	}

	model := CreateRequestToModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), actorFrom(c), model); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of incidents visible to the user.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title search"
// @Param state query string false "State filter"
// @Param department query string false "Department ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {object} ListIncidentsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(models.DefaultPageSize)))

	filter := models.IncidentFilter{
		Query:    c.Query("q"),
		State:    models.State(c.Query("state")),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("department"); raw != "" {
		deptID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid department ID"})
			return
		}
		filter.DepartmentID = &deptID
	}

	filter.Normalize()

	incidents, total, err := h.incidentService.ListIncidents(c.Request.Context(), actorFrom(c), filter)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ListIncidentsResponse{
		Items:    ModelsToIncidentResponses(incidents),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
}

// @Summary Get incident by ID
// @Description Get a single incident with its evidence.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 403 {object} map[string]string "Not visible to the user"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update an existing incident
// @Description Edit incident fields and optionally change its state in one step.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 403 {object} map[string]string "Role does not permit the state change"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 422 {object} map[string]string "Evidence required"
// @Failure 502 {object} map[string]string "Notification failed"
// @Router /incidents/{id} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if !h.bindJSON(c, log, &input, false) {
		return
	}

	incident, err := h.incidentService.UpdateIncident(c.Request.Context(), actorFrom(c), id, UpdateRequestToModel(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Delete an incident
// @Description Permanently delete an incident with its evidence. Requires delete permission.
// @Tags Incidents
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), actorFrom(c), id); err != nil {
		h.writeError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Change incident state
// @Description Request a lifecycle transition. The responsible person is notified by mail.
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param transition body TransitionRequest true "Target state"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Unknown state or missing rejection reason"
// @Failure 403 {object} map[string]string "Role does not permit the state change"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 422 {object} map[string]string "Evidence required"
// @Failure 502 {object} map[string]string "Notification failed"
// @Router /incidents/{id}/transition [post]
func (h *Handler) transitionIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "transitionIncident").WithField("id", id)

	var input TransitionRequest
	if !h.bindJSON(c, log, &input, false) {
		return
	}

	incident, err := h.incidentService.RequestTransition(c.Request.Context(), actorFrom(c), id, models.State(input.State),
		models.TransitionExtra{RejectionReason: input.RejectionReason, Comment: input.Comment})
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Finalize work on an incident
// @Description Move an in-progress incident to 'done'. At least one evidence item is required.
// @Tags Lifecycle
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param finalize body FinalizeRequest false "Resolution comment"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Role does not permit the state change"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 422 {object} map[string]string "Evidence required"
// @Router /incidents/{id}/finalize [post]
func (h *Handler) finalizeIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "finalizeIncident").WithField("id", id)

	var input FinalizeRequest
	if !h.bindJSON(c, log, &input, true) {
		return
	}

	incident, err := h.incidentService.RequestTransition(c.Request.Context(), actorFrom(c), id, models.StateDone,
		models.TransitionExtra{Comment: input.Comment})
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Attach evidence files
// @Description Upload photos, videos or PDFs for an incident in progress.
// @Tags Lifecycle
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param files formData file true "Evidence files"
// @Param name formData string false "Display name"
// @Success 201 {array} EvidenceResponse
// @Failure 400 {object} map[string]string "Invalid form or file"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Incident is not in progress"
// @Router /incidents/{id}/evidence [post]
func (h *Handler) attachEvidence(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "attachEvidence").WithField("id", id)

	form, err := c.MultipartForm()
	if err != nil {
		log.WithError(err).Warn("Failed to parse multipart form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	name := c.PostForm("name")
	files := make([]models.EvidenceFile, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		data, err := h.readUpload(fh)
		if err != nil {
			h.writeError(c, log, err)
			return
		}
		files = append(files, models.EvidenceFile{FileName: fh.Filename, DisplayName: name, Data: data})
	}

	evidence, err := h.incidentService.AttachEvidence(c.Request.Context(), actorFrom(c), id, files)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, EvidenceToResponses(evidence))
}

// @Summary Download evidence
// @Description Serve a stored evidence file, or redirect to an external evidence URL.
// @Tags Lifecycle
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param evidenceId path string true "Evidence ID"
// @Success 200 {file} file
// @Success 302 {string} string "Redirect to external evidence"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 403 {object} map[string]string "Not visible to the user"
// @Failure 404 {object} map[string]string "Evidence not found"
// @Router /incidents/{id}/evidence/{evidenceId} [get]
func (h *Handler) getEvidenceFile(c *gin.Context) {
	log := h.logger.WithField("method", "getEvidenceFile")
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	evidenceID, ok := parseParam(c, "evidenceId", "evidence")
	if !ok {
		return
	}

	evidence, filePath, err := h.incidentService.GetEvidence(c.Request.Context(), actorFrom(c), id, evidenceID)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	if filePath == "" {
		c.Redirect(http.StatusFound, evidence.URL)
		return
	}
	c.File(filePath)
}

func (h *Handler) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if limit := h.cfg.EvidenceMaxBytes; limit > 0 && fh.Size > limit {
		return nil, apperrors.NewValidationError("files",
			fmt.Sprintf("file '%s' exceeds the maximum size of %d MB", fh.Filename, limit/(1024*1024)))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// @Summary List crews of a department
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {array} CrewResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Router /departments/{id}/crews [get]
func (h *Handler) listDepartmentCrews(c *gin.Context) {
	id, ok := parseID(c, "department")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "listDepartmentCrews").WithField("id", id)

	crews, err := h.directoryService.ListCrewsByDepartment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, CrewsToResponses(crews))
}

// @Summary List incident types
// @Tags Directory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentTypeResponse
// @Router /incident-types [get]
func (h *Handler) listIncidentTypes(c *gin.Context) {
	types, err := h.directoryService.ListIncidentTypes(c.Request.Context())
	if err != nil {
		h.writeError(c, h.logger.WithField("method", "listIncidentTypes"), err)
		return
	}
	c.JSON(http.StatusOK, IncidentTypesToResponses(types))
}

// @Summary List incidents of the user's crews
// @Description Incidents assigned to crews where the user is member or supervisor. Defaults to 'in_progress'.
// @Tags Crew
// @Produce json
// @Security BearerAuth
// @Param state query string false "State filter" default(in_progress)
// @Success 200 {array} IncidentResponse
// @Failure 403 {object} map[string]string "Not a crew member"
// @Router /crew/incidents [get]
func (h *Handler) listCrewIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listCrewIncidents")

	incidents, err := h.incidentService.ListCrewIncidents(c.Request.Context(), actorFrom(c), models.State(c.Query("state")))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Start work on an assigned incident
// @Tags Crew
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Not assigned or not permitted"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /crew/incidents/{id}/start [post]
func (h *Handler) startWork(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "startWork").WithField("id", id)

	incident, err := h.incidentService.StartWork(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Resolve an assigned incident with evidence links
// @Tags Crew
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param resolve body ResolveRequest true "Evidence URLs and comment"
// @Success 200 {object} IncidentResponse
// @Failure 403 {object} map[string]string "Not assigned or not permitted"
// @Failure 409 {object} map[string]string "Incident is not in progress"
// @Failure 422 {object} map[string]string "Evidence required"
// @Router /crew/incidents/{id}/resolve [post]
func (h *Handler) resolveIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "resolveIncident").WithField("id", id)

	var input ResolveRequest
	if !h.bindJSON(c, log, &input, false) {
		return
	}

	incident, err := h.incidentService.ResolveWithEvidence(c.Request.Context(), actorFrom(c), id, input.EvidenceURLs, input.Comment)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Reject an assigned incident
// @Tags Crew
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param reject body RejectRequest true "Rejection reason"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 403 {object} map[string]string "Not assigned or not permitted"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Router /crew/incidents/{id}/reject [post]
func (h *Handler) rejectIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "rejectIncident").WithField("id", id)

	var input RejectRequest
	if !h.bindJSON(c, log, &input, false) {
		return
	}

	incident, err := h.incidentService.RejectByCrew(c.Request.Context(), actorFrom(c), id, input.Reason)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
