package notify

import (
	"context"

	apperrors "github.com/shenikar/municipal_incidents/internal/errors"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/sirupsen/logrus"
)

// Dispatcher превращает событие смены этапа в письмо и отправляет его.
// Ошибка отправки возвращается как DeliveryError и не подавляется.
type Dispatcher struct {
	composer Composer
	mailer   Mailer
	logger   *logrus.Logger
}

func NewDispatcher(mailer Mailer, supportAddress, noReplyAddress string, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		composer: Composer{SupportAddress: supportAddress, NoReplyAddress: noReplyAddress},
		mailer:   mailer,
		logger:   logger,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, event models.StateChangeEvent) error {
	msg := d.composer.Compose(event)
	log := d.logger.WithFields(logrus.Fields{
		"component":   "notify",
		"incident_id": event.IncidentID,
		"to":          msg.To,
		"new_state":   event.NewState,
	})

	if err := d.mailer.Send(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to deliver state change notification")
		return &apperrors.DeliveryError{Recipient: msg.To, Err: err}
	}

	log.Info("State change notification delivered")
	return nil
}
