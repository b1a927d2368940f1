package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
)

const (
	SubjectCreated       = "created"
	SubjectCancelled     = "cancelled"
	SubjectUnmet         = "unmet"
	SubjectStatusChanged = "status_changed"
)

type reservationEvent struct {
	TenantID          uuid.UUID  `json:"tenantId"`
	UserID            *uuid.UUID `json:"userId,omitempty"`
	ReservationID     int        `json:"reservationId"`
	ChargingStationID string     `json:"chargingStationId"`
	ConnectorID       int        `json:"connectorId"`
	Status            string     `json:"status"`
	Type              string     `json:"type"`
	OccurredAt        time.Time  `json:"occurredAt"`
}

// NATSNotifier publishes reservation lifecycle events on tenant-scoped
// subjects. Delivery is fire-and-forget: a failed publish is logged and
// never fails the triggering operation.
type NATSNotifier struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewNATSNotifier(conn *nats.Conn, logger *slog.Logger) *NATSNotifier {
	return &NATSNotifier{conn: conn, logger: logger}
}

func (n *NATSNotifier) ReservationCreated(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) {
	n.publish(ctx, tenantID, SubjectCreated, res)
}

func (n *NATSNotifier) ReservationCancelled(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) {
	n.publish(ctx, tenantID, SubjectCancelled, res)
}

func (n *NATSNotifier) ReservationUnmet(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) {
	n.publish(ctx, tenantID, SubjectUnmet, res)
}

func (n *NATSNotifier) ReservationStatusChanged(ctx context.Context, tenantID uuid.UUID, res *reservation.Reservation) {
	n.publish(ctx, tenantID, SubjectStatusChanged, res)
}

func (n *NATSNotifier) publish(_ context.Context, tenantID uuid.UUID, event string, res *reservation.Reservation) {
	payload, err := json.Marshal(reservationEvent{
		TenantID:          tenantID,
		UserID:            res.UserID(),
		ReservationID:     res.ID(),
		ChargingStationID: res.ChargingStationID(),
		ConnectorID:       res.ConnectorID(),
		Status:            res.Status().String(),
		Type:              res.Type().String(),
		OccurredAt:        time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("failed to marshal reservation event", "event", event, "error", err)
		return
	}

	subject := fmt.Sprintf("reservations.%s.%s", tenantID, event)
	if err := n.conn.Publish(subject, payload); err != nil {
		n.logger.Error("failed to publish reservation event",
			"subject", subject, "reservation_id", res.ID(), "error", err)
	}
}

// Connect opens and verifies the NATS connection.
func Connect(url string) (*nats.Conn, func(), error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to connect to NATS")
	}
	cleanup := func() {
		conn.Close()
	}
	return conn, cleanup, nil
}
