package ocpp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
)

// Client issues OCPP 1.6 reservation commands over one station's live
// websocket. Calls run through the station's circuit breaker; an open
// breaker or a timed-out call is reported as RemoteUnavailable so the
// caller treats the station as unreachable rather than refusing.
type Client struct {
	sc      *stationConn
	timeout time.Duration
}

type reserveNowPayload struct {
	ConnectorID   int    `json:"connectorId"`
	ExpiryDate    string `json:"expiryDate"`
	IdTag         string `json:"idTag"`
	ParentIdTag   string `json:"parentIdTag,omitempty"`
	ReservationID int    `json:"reservationId"`
}

type cancelReservationPayload struct {
	ReservationID int `json:"reservationId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *Client) ReserveNow(ctx context.Context, req commands.ReserveNowRequest) (commands.RemoteStatus, error) {
	payload := reserveNowPayload{
		ConnectorID:   req.ConnectorID,
		ExpiryDate:    req.ExpiryDate.UTC().Format(time.RFC3339),
		IdTag:         req.IdTag,
		ParentIdTag:   req.ParentIdTag,
		ReservationID: req.ReservationID,
	}
	return c.call(ctx, "ReserveNow", payload)
}

func (c *Client) CancelReservation(ctx context.Context, reservationID int) (commands.RemoteStatus, error) {
	// OCPP 1.6 CancelReservation answers Accepted or Rejected only.
	return c.call(ctx, "CancelReservation", cancelReservationPayload{ReservationID: reservationID})
}

func (c *Client) call(ctx context.Context, action string, payload any) (commands.RemoteStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.sc.breaker.Execute(func() (any, error) {
		return c.sc.call(callCtx, action, payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return commands.RemoteUnavailable, nil
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return commands.RemoteUnavailable, nil
		}
		if errors.Is(err, errs.ErrBackendUnreachable) {
			return "", err
		}
		return "", errs.Wrap(err, action+" call failed")
	}

	raw, ok := result.(json.RawMessage)
	if !ok {
		return "", errs.New("unexpected call result type")
	}
	var resp statusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", errs.Wrap(err, "invalid "+action+" response payload")
	}

	switch status := commands.RemoteStatus(resp.Status); status {
	case commands.RemoteAccepted, commands.RemoteRejected, commands.RemoteFaulted,
		commands.RemoteOccupied, commands.RemoteUnavailable:
		return status, nil
	default:
		return "", errs.New("unknown " + action + " status: " + resp.Status)
	}
}
