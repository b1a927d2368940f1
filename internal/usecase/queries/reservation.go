package queries

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ReservationView is the read-optimized projection of one reservation,
// enriched with the tag, car and station attributes a client would
// otherwise have to join itself.
type ReservationView struct {
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

// ReservationFilter narrows a reservation listing. Nil / empty fields
// match everything.
type ReservationFilter struct {
	StationID   *string
	ConnectorID *int
	Statuses    []string
	Type        *string
	UserID      *uuid.UUID
	CarID       *uuid.UUID
	From        *time.Time
	To          *time.Time
	// Search matches case-insensitively against the station id and idTag.
	Search string

	Limit           int
	Offset          int
	SortField       string
	SortDescending  bool
	OnlyRecordCount bool
}

// ReservationListResult pairs a page of views with the unpaginated total.
type ReservationListResult struct {
	Count  int64              `json:"count"`
	Result []*ReservationView `json:"result"`
}

type ReservationStore interface {
	FindByID(ctx context.Context, tenantID uuid.UUID, id int) (*ReservationView, error)
	Search(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter) ([]*ReservationView, error)
	Count(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter) (int64, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, tenantID uuid.UUID, id int) (*ReservationView, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter) (*ReservationListResult, error)
	ExportCSV(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter, w io.Writer) error
}

type reservationQueriesImpl struct {
	store ReservationStore
}

func NewReservationQueries(store ReservationStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, tenantID uuid.UUID, id int) (*ReservationView, error) {
	return q.store.FindByID(ctx, tenantID, id)
}

func (q *reservationQueriesImpl) List(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter) (*ReservationListResult, error) {
	count, err := q.store.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	if filter.OnlyRecordCount || count == 0 {
		return &ReservationListResult{Count: count, Result: []*ReservationView{}}, nil
	}

	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	rows, err := q.store.Search(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return &ReservationListResult{Count: count, Result: rows}, nil
}

var exportHeader = []string{
	"id", "chargingStation", "connector", "fromDate", "toDate", "expiryDate",
	"arrivalTime", "idTag", "parentIdTag", "car", "type", "status", "createdOn",
}

// ExportCSV streams every reservation matching the filter, ignoring
// pagination.
func (q *reservationQueriesImpl) ExportCSV(ctx context.Context, tenantID uuid.UUID, filter ReservationFilter, w io.Writer) error {
	filter.Limit = 0
	filter.Offset = 0
	filter.OnlyRecordCount = false

	rows, err := q.store.Search(ctx, tenantID, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(exportRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRecord(v *ReservationView) []string {
	return []string{
		strconv.Itoa(v.ID),
		v.ChargingStationID,
		strconv.Itoa(v.ConnectorID),
		formatOptionalTime(v.FromDate),
		formatOptionalTime(v.ToDate),
		v.ExpiryDate.UTC().Format(time.RFC3339),
		formatOptionalTime(v.ArrivalTime),
		v.IdTag,
		derefOr(v.ParentIdTag, ""),
		derefOr(v.CarName, ""),
		v.Type,
		v.Status,
		v.CreatedOn.UTC().Format(time.RFC3339),
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
