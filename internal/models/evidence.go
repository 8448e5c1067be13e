package models

import (
	"time"

	"github.com/google/uuid"
)

// Evidence - файл, подтверждающий выполненные работы
type Evidence struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Category   string    `json:"category"`
	Format     string    `json:"format"`
	CreatedAt  time.Time `json:"created_at"`
}

// EvidenceFile - загруженный файл до сохранения в хранилище
type EvidenceFile struct {
	FileName    string
	DisplayName string
	Data        []byte
}
