package notify

import (
	"fmt"
	"strings"

	"github.com/shenikar/municipal_incidents/internal/models"
)

// Формат даты в письме: день-месяц-год часы:минуты
const timestampLayout = "02-01-2006 15:04"

var stateLabels = map[models.State]string{
	models.StatePending:    "Pendiente",
	models.StateInProgress: "En proceso",
	models.StateDone:       "Finalizada",
	models.StateValidated:  "Validada",
	models.StateRejected:   "Rechazada",
}

// StateLabel возвращает подпись этапа для писем
func StateLabel(s models.State) string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return string(s)
}

// Message - готовое к отправке письмо
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Composer собирает письмо о смене этапа
type Composer struct {
	SupportAddress string
	NoReplyAddress string
}

// Recipient - ответственный отдела, иначе адрес поддержки
func (c Composer) Recipient(event models.StateChangeEvent) string {
	if strings.TrimSpace(event.ResponsibleEmail) != "" {
		return event.ResponsibleEmail
	}
	return c.SupportAddress
}

// Sender - адрес пользователя, иначе no-reply
func (c Composer) Sender(event models.StateChangeEvent) string {
	if strings.TrimSpace(event.ActorEmail) != "" {
		return event.ActorEmail
	}
	return c.NoReplyAddress
}

func (c Composer) Compose(event models.StateChangeEvent) Message {
	greeting := event.ResponsibleName
	if greeting == "" {
		greeting = "equipo de soporte"
	}
	department := event.DepartmentName
	if department == "" {
		department = "No asignado"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", greeting)
	fmt.Fprintf(&b, "El usuario %s ha cambiado el estado de la incidencia '%s'.\n\n", event.ActorName, event.Title)
	fmt.Fprintf(&b, "Estado anterior: %s\n", StateLabel(event.PreviousState))
	fmt.Fprintf(&b, "Nuevo estado: %s\n\n", StateLabel(event.NewState))
	if event.NewState == models.StateRejected && event.RejectionReason != "" {
		fmt.Fprintf(&b, "Motivo de rechazo: %s\n\n", event.RejectionReason)
	}
	fmt.Fprintf(&b, "Departamento: %s\n", department)
	fmt.Fprintf(&b, "Descripción: %s\n", event.Description)
	fmt.Fprintf(&b, "Fecha del cambio: %s\n\n", event.ChangedAt.Format(timestampLayout))
	b.WriteString("Saludos cordiales,\nSistema Municipal de Incidencias")

	return Message{
		From:    c.Sender(event),
		To:      c.Recipient(event),
		Subject: fmt.Sprintf("[Notificación] Estado actualizado de incidencia: %s", singleLine(event.Title)),
		Body:    b.String(),
	}
}
