package station

import (
	"errors"
)

var ErrConnectorNotFound = errors.New("connector not found on charging station")

// ConnectorStatus mirrors the charge point's reported connector state.
type ConnectorStatus string

const (
	ConnectorAvailable   ConnectorStatus = "Available"
	ConnectorPreparing   ConnectorStatus = "Preparing"
	ConnectorCharging    ConnectorStatus = "Charging"
	ConnectorOccupied    ConnectorStatus = "Occupied"
	ConnectorReserved    ConnectorStatus = "Reserved"
	ConnectorUnavailable ConnectorStatus = "Unavailable"
	ConnectorFaulted     ConnectorStatus = "Faulted"
)

// Connector is one addressable socket on a station, identified by its
// integer index. ReservationID is the back-reference to at most one live
// reservation.
type Connector struct {
	ID            int
	Status        ConnectorStatus
	ReservationID *int
}

func (c *Connector) IsBound() bool {
	return c.ReservationID != nil
}

func (c *Connector) IsBoundTo(reservationID int) bool {
	return c.ReservationID != nil && *c.ReservationID == reservationID
}

// ChargingStation is the physical unit the remote gateway talks to.
type ChargingStation struct {
	ID         string
	SiteAreaID string
	Inactive   bool
	Connectors []Connector
}

func (s *ChargingStation) Connector(id int) (*Connector, error) {
	for i := range s.Connectors {
		if s.Connectors[i].ID == id {
			return &s.Connectors[i], nil
		}
	}
	return nil, ErrConnectorNotFound
}
