package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UpsertReservationRequest is the payload shared by POST /reservations and
// PUT /reservations/:id. The reservation id is client-assigned; on update
// the path id wins. Exactly one of idTag or visualTagID must identify the
// reserving credential.
type UpsertReservationRequest struct {
	ID                int        `json:"id" binding:"omitempty,min=1"`
	ChargingStationID string     `json:"chargingStationID" binding:"required"`
	ConnectorID       int        `json:"connectorID" binding:"required,min=1"`
	FromDate          *time.Time `json:"fromDate,omitempty"`
	ToDate            *time.Time `json:"toDate,omitempty"`
	ExpiryDate        time.Time  `json:"expiryDate" binding:"required"`
	ArrivalTime       *time.Time `json:"arrivalTime,omitempty"`
	IdTag             string     `json:"idTag,omitempty"`
	VisualTagID       string     `json:"visualTagID,omitempty"`
	ParentIdTag       string     `json:"parentIdTag,omitempty"`
	CarID             *uuid.UUID `json:"carID,omitempty"`
	Type              string     `json:"type" binding:"required,oneof=planned_reservation reserve_now"`
	Status            string     `json:"status,omitempty"`
}

func (r UpsertReservationRequest) GetIdTag() string {
	return strings.TrimSpace(r.IdTag)
}

func (r UpsertReservationRequest) GetVisualTagID() string {
	return strings.TrimSpace(r.VisualTagID)
}

// ListReservationsRequest carries the query-string filters of
// GET /reservations and GET /reservations/export.
type ListReservationsRequest struct {
	ChargingStationID *string    `form:"chargingStationID"`
	ConnectorID       *int       `form:"connectorID" binding:"omitempty,min=1"`
	Status            string     `form:"status"`
	Type              *string    `form:"type" binding:"omitempty,oneof=planned_reservation reserve_now"`
	UserID            *uuid.UUID `form:"userID"`
	CarID             *uuid.UUID `form:"carID"`
	StartDateTime     *time.Time `form:"startDateTime"`
	EndDateTime       *time.Time `form:"endDateTime"`
	Search            string     `form:"search"`
	Limit             int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Skip              int        `form:"skip" binding:"omitempty,min=0"`
	SortField         string     `form:"sortField"`
	SortDescending    bool       `form:"sortDescending"`
	OnlyRecordCount   bool       `form:"onlyRecordCount"`
}

// Statuses splits the pipe-separated status filter.
func (r ListReservationsRequest) Statuses() []string {
	if strings.TrimSpace(r.Status) == "" {
		return nil
	}
	parts := strings.Split(r.Status, "|")
	statuses := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			statuses = append(statuses, trimmed)
		}
	}
	return statuses
}
