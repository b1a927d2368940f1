package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
)

// ActionResponse is the success envelope for create/update/cancel/delete.
type ActionResponse struct {
	Status string `json:"status"`
	ID     int    `json:"id,omitempty"`
}

func Success(id int) ActionResponse {
	return ActionResponse{Status: "Success", ID: id}
}

type ReservationResponse struct {
	ID                int        `json:"id"`
	ChargingStationID string     `json:"chargingStationID"`
	SiteAreaID        *string    `json:"siteAreaID,omitempty"`
	ConnectorID       int        `json:"connectorID"`
	FromDate          *time.Time `json:"fromDate,omitempty"`
	ToDate            *time.Time `json:"toDate,omitempty"`
	ExpiryDate        time.Time  `json:"expiryDate"`
	ArrivalTime       *time.Time `json:"arrivalTime,omitempty"`
	IdTag             string     `json:"idTag"`
	VisualTagID       *string    `json:"visualTagID,omitempty"`
	ParentIdTag       *string    `json:"parentIdTag,omitempty"`
	UserID            *uuid.UUID `json:"userID,omitempty"`
	UserName          *string    `json:"userName,omitempty"`
	CarID             *uuid.UUID `json:"carID,omitempty"`
	CarName           *string    `json:"carName,omitempty"`
	Type              string     `json:"type"`
	Status            string     `json:"status"`
	CreatedOn         time.Time  `json:"createdOn"`
	LastChangedOn     *time.Time `json:"lastChangedOn,omitempty"`
}

type ReservationListResponse struct {
	Count  int64                  `json:"count"`
	Result []*ReservationResponse `json:"result"`
}

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationList(result *queries.ReservationListResult) (*ReservationListResponse, error) {
	items := make([]*ReservationResponse, 0, len(result.Result))
	for _, view := range result.Result {
		item, err := FromReservationView(view)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ReservationListResponse{Count: result.Count, Result: items}, nil
}
