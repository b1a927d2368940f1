//go:build unit

package api_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/JulianHBuecher/ev-server/internal/handler/api"
	"github.com/JulianHBuecher/ev-server/internal/infra"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
	"github.com/JulianHBuecher/ev-server/tests/common/builder"
	"github.com/JulianHBuecher/ev-server/tests/common/httptest"
	"github.com/JulianHBuecher/ev-server/tests/common/testutil"
	commandsmock "github.com/JulianHBuecher/ev-server/tests/mock/commands"
	queriesmock "github.com/JulianHBuecher/ev-server/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler

	tenantID uuid.UUID
	userID   uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.tenantID = uuid.New()
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("tenant_id", s.tenantID)
		c.Set("user_role", "admin")
		c.Next()
	}

	// Setup routes
	reservations := s.router.Group("/api/reservations", authMiddleware)
	{
		reservations.GET("", s.handler.GetReservations)
		reservations.POST("", s.handler.CreateReservation)
		reservations.GET("/export", s.handler.ExportReservations)
		reservations.GET("/:id", s.handler.GetReservation)
		reservations.PUT("/:id", s.handler.UpdateReservation)
		reservations.DELETE("/:id", s.handler.DeleteReservation)
		reservations.POST("/:id/cancel", s.handler.CancelReservation)
	}
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type reservationTestCase struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/api/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildUpsertRequestDTO()
	created, err := b.BuildDomain()
	s.Require().NoError(err)

	s.Run("success: returns 201 Created with the reservation id", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.tenantID, gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("Success", body["status"])
		s.EqualValues(created.ID(), body["id"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []reservationTestCase{
			{name: "missing field: chargingStationID", mutate: testutil.Field("chargingStationID", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: connectorID", mutate: testutil.Field("connectorID", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: expiryDate", mutate: testutil.Field("expiryDate", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: type", mutate: testutil.Field("type", nil), expectCode: http.StatusBadRequest},
			{name: "unknown type", mutate: testutil.Field("type", "walk_in"), expectCode: http.StatusBadRequest},
			{name: "zero connector", mutate: testutil.Field("connectorID", 0), expectCode: http.StatusBadRequest},
			{name: "negative id", mutate: testutil.Field("id", -1), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "VALIDATION")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("error: maps command errors onto the taxonomy", func() {
		cases := []struct {
			sentinel     error
			expectStatus int
			expectCode   string
		}{
			{errs.ErrValidation, http.StatusBadRequest, "VALIDATION"},
			{errs.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
			{errs.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
			{errs.ErrConnectorOccupied, http.StatusConflict, "OCCUPIED"},
			{errs.ErrCollision, http.StatusConflict, "COLLISION"},
			{errs.ErrMultipleReserveNow, http.StatusConflict, "MULTIPLE_RESERVE_NOW"},
			{errs.ErrInvalidTransition, http.StatusConflict, "INVALID_STATUS_TRANSITION"},
			{errs.ErrRemoteRejected, http.StatusConflict, "REMOTE_REJECTED"},
			{errs.ErrRemoteFaulted, http.StatusConflict, "REMOTE_FAULTED"},
			{errs.ErrRemoteOccupied, http.StatusConflict, "REMOTE_OCCUPIED"},
			{errs.ErrRemoteUnavailable, http.StatusConflict, "REMOTE_UNAVAILABLE"},
			{errs.ErrBackendUnreachable, http.StatusBadGateway, "BACKEND_UNREACHABLE"},
			{errs.ErrAuthorization, http.StatusForbidden, "AUTHORIZATION"},
		}
		for _, tc := range cases {
			s.Run(tc.expectCode, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.tenantID, gomock.Any(), gomock.Any()).
					Return(nil, errs.Mark(errs.New("boom"), tc.sentinel)).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectStatus, tc.expectCode)
			})
		}
	})

	s.Run("error: 500 with INTERNAL code on unknown errors", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.tenantID, gomock.Any(), gomock.Any()).
			Return(nil, errs.New("boom")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "INTERNAL")
	})
}

// ================================================================================
// TestUpdateReservation / TestCancelReservation / TestDeleteReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdateReservation() {
	b := builder.NewReservationBuilder()
	reqBody := b.BuildUpsertRequestDTO()
	updated, err := b.BuildDomain()
	s.Require().NoError(err)

	s.Run("success: returns 200 OK", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.tenantID, gomock.Any(), b.ID, gomock.Any()).
			Return(updated, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/reservations/100", reqBody, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on non-numeric id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/reservations/abc", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: 400 on non-positive id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/reservations/0", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})
}

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	b := builder.NewReservationBuilder()
	cancelled, err := b.BuildDomain()
	s.Require().NoError(err)

	s.Run("success: returns 200 OK", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, gomock.Any(), b.ID).
			Return(cancelled, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations/100/cancel", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Success", body["status"])
	})

	s.Run("error: 409 when the transition is not permitted", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.tenantID, gomock.Any(), b.ID).
			Return(nil, errs.Mark(errs.New("done"), errs.ErrInvalidTransition)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations/100/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "INVALID_STATUS_TRANSITION")
	})
}

func (s *ReservationHandlerTestSuite) TestDeleteReservation() {
	s.Run("success: returns 200 OK", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.tenantID, gomock.Any(), 100).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/reservations/100", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 when the charge point refuses", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), s.tenantID, gomock.Any(), 100).
			Return(errs.Mark(errs.New("refused"), errs.ErrRemoteRejected)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/reservations/100", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "REMOTE_REJECTED")
	})
}

// ================================================================================
// TestGetReservation / TestGetReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	view := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns the enriched view", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, view.ID).
			Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/100", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.EqualValues(view.ID, body["id"])
		s.Equal(view.ChargingStationID, body["chargingStationID"])
		s.Equal(view.Status, body["status"])
	})

	s.Run("error: 404 when the reservation does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.tenantID, view.ID).
			Return(nil, infra.WrapRepoErr(infra.KindNotFound, "no rows", nil)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/100", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

func (s *ReservationHandlerTestSuite) TestGetReservations() {
	s.Run("success: binds the query filters", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), s.tenantID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, filter queries.ReservationFilter) (*queries.ReservationListResult, error) {
				s.Require().NotNil(filter.StationID)
				s.Equal("CS-001", *filter.StationID)
				s.Equal([]string{"reservation_scheduled", "reservation_in_progress"}, filter.Statuses)
				s.Equal(25, filter.Limit)
				s.Equal(50, filter.Offset)
				s.True(filter.SortDescending)
				return &queries.ReservationListResult{Count: 0, Result: []*queries.ReservationView{}}, nil
			}).Times(1)

		url := "/api/reservations?chargingStationID=CS-001" +
			"&status=reservation_scheduled|reservation_in_progress" +
			"&limit=25&skip=50&sortField=expiryDate&sortDescending=true"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.EqualValues(0, body["count"])
	})

	s.Run("error: 400 on an oversized page", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?limit=10000", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: 400 on an unknown type filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations?type=walk_in", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})
}

func (s *ReservationHandlerTestSuite) TestExportReservations() {
	s.Run("success: streams CSV with download headers", func() {
		s.mockQueries.EXPECT().ExportCSV(gomock.Any(), s.tenantID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, _ queries.ReservationFilter, w io.Writer) error {
				_, err := w.Write([]byte("id,chargingStation\n"))
				return err
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations/export", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("text/csv", rec.Header().Get("Content-Type"))
		s.Contains(rec.Header().Get("Content-Disposition"), "exported-reservations.csv")
		s.Contains(rec.Body.String(), "id,chargingStation")
	})
}
