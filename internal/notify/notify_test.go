package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type recordingMailer struct {
	sent []Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testEvent() models.StateChangeEvent {
	return models.StateChangeEvent{
		IncidentID:       uuid.New(),
		Title:            "Bache en calle Principal",
		Description:      "Bache profundo frente al número 120",
		PreviousState:    models.StatePending,
		NewState:         models.StateInProgress,
		ActorName:        "María Soto",
		ActorEmail:       "msoto@municipalidad.local",
		DepartmentName:   "Obras Públicas",
		ResponsibleName:  "Jorge Díaz",
		ResponsibleEmail: "jdiaz@municipalidad.local",
		ChangedAt:        time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC),
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestCompose_FullEvent(t *testing.T) {
	c := Composer{SupportAddress: "soporte@municipalidad.local", NoReplyAddress: "no-reply@municipalidad.local"}
	msg := c.Compose(testEvent())

	assert.Equal(t, "jdiaz@municipalidad.local", msg.To)
	assert.Equal(t, "msoto@municipalidad.local", msg.From)
	assert.Equal(t, "[Notificación] Estado actualizado de incidencia: Bache en calle Principal", msg.Subject)
	assert.Contains(t, msg.Body, "Estimado/a Jorge Díaz,")
	assert.Contains(t, msg.Body, "El usuario María Soto ha cambiado el estado de la incidencia 'Bache en calle Principal'.")
	assert.Contains(t, msg.Body, "Estado anterior: Pendiente")
	assert.Contains(t, msg.Body, "Nuevo estado: En proceso")
	assert.Contains(t, msg.Body, "Departamento: Obras Públicas")
	assert.Contains(t, msg.Body, "Descripción: Bache profundo frente al número 120")
	assert.Contains(t, msg.Body, "Fecha del cambio: 07-03-2026 09:05")
}

func TestCompose_Fallbacks(t *testing.T) {
	c := Composer{SupportAddress: "soporte@municipalidad.local", NoReplyAddress: "no-reply@municipalidad.local"}
	event := testEvent()
	event.ResponsibleEmail = ""
	event.ResponsibleName = ""
	event.DepartmentName = ""
	event.ActorEmail = ""

	msg := c.Compose(event)

	assert.Equal(t, "soporte@municipalidad.local", msg.To)
	assert.Equal(t, "no-reply@municipalidad.local", msg.From)
	assert.Contains(t, msg.Body, "Departamento: No asignado")
}

func TestCompose_RejectionReason(t *testing.T) {
	event := testEvent()
	event.PreviousState = models.StateDone
	event.NewState = models.StateRejected
	event.RejectionReason = "Trabajo incompleto"

	msg := Composer{}.Compose(event)
	assert.Contains(t, msg.Body, "Motivo de rechazo: Trabajo incompleto")
	assert.Contains(t, msg.Body, "Nuevo estado: Rechazada")
}

func TestDispatcher_Notify(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, "soporte@municipalidad.local", "no-reply@municipalidad.local", testLogger())

	require.NoError(t, d.Notify(context.Background(), testEvent()))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jdiaz@municipalidad.local", mailer.sent[0].To)
}

func TestDispatcher_NotifyFailureIsDeliveryError(t *testing.T) {
	cause := errors.New("connection refused")
	d := NewDispatcher(&recordingMailer{err: cause}, "soporte@municipalidad.local", "no-reply@municipalidad.local", testLogger())

	err := d.Notify(context.Background(), testEvent())
	require.Error(t, err)
	assert.True(t, apperrors.IsDelivery(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, apperrors.IsValidation(err))
}

// headerLines возвращает строки заголовка письма до пустой строки
func headerLines(t *testing.T, msg *mail.Msg) []string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	head, _, _ := strings.Cut(buf.String(), "\r\n\r\n")
	return strings.Split(head, "\r\n")
}

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer("mail.local", 2525, "user", "pass")
	var sent *mail.Msg
	m.deliver = func(_ context.Context, msg *mail.Msg) error {
		sent = msg
		return nil
	}

	err := m.Send(context.Background(), Message{
		From:    "a@municipalidad.local",
		To:      "b@municipalidad.local",
		Subject: "Hola",
		Body:    "linea1\nlinea2",
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Hola")
	assert.Contains(t, out, "a@municipalidad.local")
	assert.Contains(t, out, "b@municipalidad.local")
	assert.Contains(t, out, "linea1")
	assert.Contains(t, out, "linea2")
}

func TestSMTPMailer_SubjectCannotInjectHeaders(t *testing.T) {
	event := testEvent()
	event.Title = "Bache\r\nBcc: attacker@evil.test\r\nX-Injected: 1"
	composed := Composer{}.Compose(event)
	assert.NotContains(t, composed.Subject, "\n")
	assert.NotContains(t, composed.Subject, "\r")

	for name, subject := range map[string]string{
		"composed": composed.Subject,
		"raw":      event.Title,
	} {
		t.Run(name, func(t *testing.T) {
			msg, err := buildMessage(Message{
				From:    "a@municipalidad.local",
				To:      "b@municipalidad.local",
				Subject: subject,
				Body:    "cuerpo",
			})
			require.NoError(t, err)

			for _, line := range headerLines(t, msg) {
				assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
				assert.False(t, strings.HasPrefix(line, "X-Injected:"), line)
			}
		})
	}
}

func TestSMTPMailer_EncodesNonASCIISubject(t *testing.T) {
	msg, err := buildMessage(Message{
		From:    "a@municipalidad.local",
		To:      "b@municipalidad.local",
		Subject: "[Notificación] Estado actualizado",
		Body:    "cuerpo",
	})
	require.NoError(t, err)

	var subject string
	for _, line := range headerLines(t, msg) {
		if strings.HasPrefix(line, "Subject:") {
			subject = line
		}
	}
	assert.Contains(t, subject, "=?UTF-8?")
	assert.NotContains(t, subject, "ó")
}

func TestSMTPMailer_InvalidAddress(t *testing.T) {
	m := NewSMTPMailer("mail.local", 25, "", "")
	m.deliver = func(context.Context, *mail.Msg) error {
		t.Fatal("must not send to an invalid address")
		return nil
	}

	err := m.Send(context.Background(), Message{From: "a@municipalidad.local", To: "not an address", Subject: "x"})
	assert.Error(t, err)
}

func TestSMTPMailer_SendCancelled(t *testing.T) {
	m := NewSMTPMailer("mail.local", 25, "", "")
	m.deliver = func(context.Context, *mail.Msg) error {
		t.Fatal("must not send with cancelled context")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{}), context.Canceled)
}

func TestSMTPMailer_DeliveryError(t *testing.T) {
	m := NewSMTPMailer("mail.local", 25, "", "")
	cause := errors.New("relay refused")
	m.deliver = func(context.Context, *mail.Msg) error { return cause }

	err := m.Send(context.Background(), Message{From: "a@municipalidad.local", To: "b@municipalidad.local", Subject: "x"})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "b@municipalidad.local")
}
