//go:build unit || e2e

package builder

import (
	"time"

	domreservation "github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	domtag "github.com/JulianHBuecher/ev-server/internal/domain/tag"
	reqdto "github.com/JulianHBuecher/ev-server/internal/handler/dto/request"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID          int
	StationID   string
	ConnectorID int
	FromDate    time.Time
	ToDate      time.Time
	ExpiryDate  time.Time
	ArrivalTime *time.Time
	IdTag       string
	ParentIdTag string
	UserID      uuid.UUID
	CarID       *uuid.UUID
	Type        domreservation.Type
	CreatedBy   uuid.UUID
	Now         time.Time
}

// NewReservationBuilder defaults to a planned reservation whose window
// opens one hour from now, so BuildDomain yields a scheduled reservation.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &ReservationBuilder{
		ID:          100,
		StationID:   "CS-001",
		ConnectorID: 1,
		FromDate:    now.Add(1 * time.Hour),
		ToDate:      now.Add(3 * time.Hour),
		ExpiryDate:  now.Add(3 * time.Hour),
		IdTag:       "TAG-A1B2C3",
		UserID:      uuid.New(),
		Type:        domreservation.TypePlanned,
		CreatedBy:   uuid.New(),
		Now:         now,
	}
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	userID := b.UserID
	return domreservation.NewReservation(b.Now, domreservation.NewReservationParams{
		ID:                b.ID,
		ChargingStationID: b.StationID,
		ConnectorID:       b.ConnectorID,
		FromDate:          b.FromDate,
		ToDate:            b.ToDate,
		ExpiryDate:        b.ExpiryDate,
		ArrivalTime:       b.ArrivalTime,
		IdTag:             b.IdTag,
		ParentIdTag:       b.ParentIdTag,
		UserID:            &userID,
		CarID:             b.CarID,
		Type:              b.Type,
		CreatedBy:         b.CreatedBy,
	})
}

func (b *ReservationBuilder) BuildUpsertRequestDTO() reqdto.UpsertReservationRequest {
	from := b.FromDate
	to := b.ToDate
	req := reqdto.UpsertReservationRequest{
		ID:                b.ID,
		ChargingStationID: b.StationID,
		ConnectorID:       b.ConnectorID,
		ExpiryDate:        b.ExpiryDate,
		ArrivalTime:       b.ArrivalTime,
		IdTag:             b.IdTag,
		ParentIdTag:       b.ParentIdTag,
		CarID:             b.CarID,
		Type:              string(b.Type),
	}
	if b.Type == domreservation.TypePlanned {
		req.FromDate = &from
		req.ToDate = &to
	}
	return req
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	userID := b.UserID
	res, _ := b.BuildDomain()
	status := string(domreservation.StatusScheduled)
	if res != nil {
		status = res.Status().String()
	}
	view := &queries.ReservationView{
		ID:                b.ID,
		ChargingStationID: b.StationID,
		ConnectorID:       b.ConnectorID,
		ExpiryDate:        b.ExpiryDate,
		ArrivalTime:       b.ArrivalTime,
		IdTag:             b.IdTag,
		UserID:            &userID,
		CarID:             b.CarID,
		Type:              string(b.Type),
		Status:            status,
		CreatedOn:         b.Now,
	}
	if b.Type == domreservation.TypePlanned {
		from := b.FromDate
		to := b.ToDate
		view.FromDate = &from
		view.ToDate = &to
	}
	if b.ParentIdTag != "" {
		parent := b.ParentIdTag
		view.ParentIdTag = &parent
	}
	return view
}

func (b *ReservationBuilder) BuildTag() *domtag.Tag {
	userID := b.UserID
	return &domtag.Tag{
		ID:       b.IdTag,
		VisualID: "VISUAL-" + b.IdTag,
		UserID:   &userID,
		Active:   true,
	}
}

// Fluent builder methods
func (b *ReservationBuilder) WithID(id int) *ReservationBuilder {
	b.ID = id
	return b
}

func (b *ReservationBuilder) WithStationID(stationID string) *ReservationBuilder {
	b.StationID = stationID
	return b
}

func (b *ReservationBuilder) WithConnectorID(connectorID int) *ReservationBuilder {
	b.ConnectorID = connectorID
	return b
}

func (b *ReservationBuilder) WithWindow(from, to time.Time) *ReservationBuilder {
	b.FromDate = from
	b.ToDate = to
	b.ExpiryDate = to
	return b
}

func (b *ReservationBuilder) WithExpiryDate(expiry time.Time) *ReservationBuilder {
	b.ExpiryDate = expiry
	return b
}

func (b *ReservationBuilder) WithArrivalTime(arrival time.Time) *ReservationBuilder {
	b.ArrivalTime = &arrival
	return b
}

func (b *ReservationBuilder) WithIdTag(idTag string) *ReservationBuilder {
	b.IdTag = idTag
	return b
}

func (b *ReservationBuilder) WithParentIdTag(parentIdTag string) *ReservationBuilder {
	b.ParentIdTag = parentIdTag
	return b
}

func (b *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	b.UserID = userID
	return b
}

func (b *ReservationBuilder) WithCarID(carID uuid.UUID) *ReservationBuilder {
	b.CarID = &carID
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

// AsReserveNow drops the planned window; reserve-now reservations only
// carry an expiry deadline.
func (b *ReservationBuilder) AsReserveNow() *ReservationBuilder {
	b.Type = domreservation.TypeReserveNow
	b.FromDate = time.Time{}
	b.ToDate = time.Time{}
	b.ExpiryDate = b.Now.Add(30 * time.Minute)
	return b
}

// AsInProgress shifts the window so that now falls inside it.
func (b *ReservationBuilder) AsInProgress() *ReservationBuilder {
	b.FromDate = b.Now.Add(-1 * time.Hour)
	b.ToDate = b.Now.Add(1 * time.Hour)
	b.ExpiryDate = b.ToDate
	return b
}
