package v1

import (
	"fmt"

	"github.com/shenikar/municipal_incidents/internal/models"
)

// CreateRequestToModel преобразует DTO создания в доменную модель
func CreateRequestToModel(req CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       models.Priority(req.Priority),
		State:          models.State(req.State),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ReporterName:   req.ReporterName,
		ReporterEmail:  req.ReporterEmail,
		ReporterPhone:  req.ReporterPhone,
		DivisionID:     req.DivisionID,
		DepartmentID:   req.DepartmentID,
		CrewID:         req.CrewID,
		IncidentTypeID: req.IncidentTypeID,
	}
}

// UpdateRequestToModel преобразует DTO редактирования в набор изменений
func UpdateRequestToModel(req UpdateIncidentRequest) models.IncidentUpdate {
	update := models.IncidentUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ReporterName:   req.ReporterName,
		ReporterEmail:  req.ReporterEmail,
		ReporterPhone:  req.ReporterPhone,
		DivisionID:     req.DivisionID,
		DepartmentID:   req.DepartmentID,
		CrewID:         req.CrewID,
		IncidentTypeID: req.IncidentTypeID,
		Extra: models.TransitionExtra{
			RejectionReason: req.RejectionReason,
			Comment:         req.Comment,
		},
	}
	if req.Priority != nil {
		p := models.Priority(*req.Priority)
		update.Priority = &p
	}
	if req.State != nil {
		s := models.State(*req.State)
		update.State = &s
	}
	return update
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:                model.ID,
		Title:             model.Title,
		Description:       model.Description,
		State:             string(model.State),
		Priority:          string(model.Priority),
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		ClosedAt:          model.ClosedAt,
		Latitude:          model.Latitude,
		Longitude:         model.Longitude,
		ReporterName:      model.ReporterName,
		ReporterEmail:     model.ReporterEmail,
		ReporterPhone:     model.ReporterPhone,
		DivisionID:        model.DivisionID,
		DepartmentID:      model.DepartmentID,
		CrewID:            model.CrewID,
		IncidentTypeID:    model.IncidentTypeID,
		RejectionReason:   model.RejectionReason,
		ResolutionComment: model.ResolutionComment,
		Evidence:          EvidenceToResponses(model.Evidence),
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func EvidenceToResponses(evidence []*models.Evidence) []EvidenceResponse {
	if len(evidence) == 0 {
		return nil
	}
	responses := make([]EvidenceResponse, len(evidence))
	for i, e := range evidence {
		responses[i] = EvidenceResponse{
			ID:          e.ID,
			Name:        e.Name,
			URL:         e.URL,
			DownloadURL: fmt.Sprintf("/api/v1/incidents/%s/evidence/%s", e.IncidentID, e.ID),
			Category:    e.Category,
			Format:      e.Format,
			CreatedAt:   e.CreatedAt,
		}
	}
	return responses
}

func CrewsToResponses(crews []*models.Crew) []CrewResponse {
	responses := make([]CrewResponse, len(crews))
	for i, c := range crews {
		responses[i] = CrewResponse{ID: c.ID, Name: c.Name, DepartmentID: c.DepartmentID}
	}
	return responses
}

func IncidentTypesToResponses(types []*models.IncidentType) []IncidentTypeResponse {
	responses := make([]IncidentTypeResponse, len(types))
	for i, t := range types {
		responses[i] = IncidentTypeResponse{ID: t.ID, Name: t.Name}
	}
	return responses
}
