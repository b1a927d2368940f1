//go:build unit

package queries_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
	"github.com/JulianHBuecher/ev-server/tests/common/builder"
	queriesmock "github.com/JulianHBuecher/ev-server/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQueries(t *testing.T) (*queriesmock.MockReservationStore, queries.ReservationQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockReservationStore(ctrl)
	return store, queries.NewReservationQueries(store)
}

func TestGetByID(t *testing.T) {
	store, q := newQueries(t)
	tenantID := uuid.New()
	view := builder.NewReservationBuilder().BuildView()

	store.EXPECT().FindByID(gomock.Any(), tenantID, view.ID).Return(view, nil)

	actual, err := q.GetByID(context.Background(), tenantID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view, actual)
}

func TestList(t *testing.T) {
	tenantID := uuid.New()

	t.Run("pairs rows with the unpaginated total", func(t *testing.T) {
		store, q := newQueries(t)
		view := builder.NewReservationBuilder().BuildView()

		store.EXPECT().Count(gomock.Any(), tenantID, gomock.Any()).Return(int64(42), nil)
		store.EXPECT().Search(gomock.Any(), tenantID, gomock.Any()).
			Return([]*queries.ReservationView{view}, nil)

		result, err := q.List(context.Background(), tenantID, queries.ReservationFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(42), result.Count)
		assert.Len(t, result.Result, 1)
	})

	t.Run("defaults the page size", func(t *testing.T) {
		store, q := newQueries(t)

		store.EXPECT().Count(gomock.Any(), tenantID, gomock.Any()).Return(int64(1), nil)
		store.EXPECT().Search(gomock.Any(), tenantID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
				assert.Equal(t, 100, filter.Limit)
				return []*queries.ReservationView{}, nil
			})

		_, err := q.List(context.Background(), tenantID, queries.ReservationFilter{})
		require.NoError(t, err)
	})

	t.Run("count-only listing never searches", func(t *testing.T) {
		store, q := newQueries(t)

		store.EXPECT().Count(gomock.Any(), tenantID, gomock.Any()).Return(int64(7), nil)

		result, err := q.List(context.Background(), tenantID, queries.ReservationFilter{OnlyRecordCount: true})
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.Count)
		assert.Empty(t, result.Result)
	})

	t.Run("empty match skips the search", func(t *testing.T) {
		store, q := newQueries(t)

		store.EXPECT().Count(gomock.Any(), tenantID, gomock.Any()).Return(int64(0), nil)

		result, err := q.List(context.Background(), tenantID, queries.ReservationFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.Count)
		assert.Empty(t, result.Result)
	})

	t.Run("count failure is returned", func(t *testing.T) {
		store, q := newQueries(t)

		store.EXPECT().Count(gomock.Any(), tenantID, gomock.Any()).Return(int64(0), errs.New("db down"))

		_, err := q.List(context.Background(), tenantID, queries.ReservationFilter{})
		require.Error(t, err)
	})
}

func TestExportCSV(t *testing.T) {
	tenantID := uuid.New()

	t.Run("writes header and one record per reservation", func(t *testing.T) {
		store, q := newQueries(t)

		from := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
		to := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
		created := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		carName := "Kona Electric"
		view := &queries.ReservationView{
			ID:                100,
			ChargingStationID: "CS-001",
			ConnectorID:       1,
			FromDate:          &from,
			ToDate:            &to,
			ExpiryDate:        to,
			IdTag:             "TAG-A1B2C3",
			CarName:           &carName,
			Type:              "planned_reservation",
			Status:            "reservation_scheduled",
			CreatedOn:         created,
		}

		// Pagination is cleared for exports.
		store.EXPECT().Search(gomock.Any(), tenantID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter queries.ReservationFilter) ([]*queries.ReservationView, error) {
				assert.Zero(t, filter.Limit)
				assert.Zero(t, filter.Offset)
				return []*queries.ReservationView{view}, nil
			})

		var buf bytes.Buffer
		err := q.ExportCSV(context.Background(), tenantID, queries.ReservationFilter{Limit: 10, Offset: 5}, &buf)
		require.NoError(t, err)

		want := "id,chargingStation,connector,fromDate,toDate,expiryDate,arrivalTime,idTag,parentIdTag,car,type,status,createdOn\n" +
			"100,CS-001,1,2026-03-10T13:00:00Z,2026-03-10T15:00:00Z,2026-03-10T15:00:00Z,,TAG-A1B2C3,,Kona Electric,planned_reservation,reservation_scheduled,2026-03-10T12:00:00Z\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("search failure is returned before any output", func(t *testing.T) {
		store, q := newQueries(t)

		store.EXPECT().Search(gomock.Any(), tenantID, gomock.Any()).Return(nil, errs.New("db down"))

		var buf bytes.Buffer
		err := q.ExportCSV(context.Background(), tenantID, queries.ReservationFilter{}, &buf)
		require.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}
