//go:build unit

package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"
	"github.com/JulianHBuecher/ev-server/internal/domain/station"
	"github.com/JulianHBuecher/ev-server/internal/pkg/clock"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
	"github.com/JulianHBuecher/ev-server/internal/usecase/scheduler"
	"github.com/JulianHBuecher/ev-server/tests/common/builder"
	commandsmock "github.com/JulianHBuecher/ev-server/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const promotionHorizon = 5 * time.Minute

type PromoteSweepTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	reservations *commandsmock.MockReservationRepository
	stations     *commandsmock.MockStationRepository
	gateway      *commandsmock.MockChargePointGateway
	client       *commandsmock.MockChargePointClient
	notifier     *commandsmock.MockNotifier
	sweep        *scheduler.PromoteSweep

	tenantID uuid.UUID
	now      time.Time
}

func (s *PromoteSweepTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.reservations = commandsmock.NewMockReservationRepository(s.ctrl)
	s.stations = commandsmock.NewMockStationRepository(s.ctrl)
	s.gateway = commandsmock.NewMockChargePointGateway(s.ctrl)
	s.client = commandsmock.NewMockChargePointClient(s.ctrl)
	s.notifier = commandsmock.NewMockNotifier(s.ctrl)

	s.tenantID = uuid.New()
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.sweep = scheduler.NewPromoteSweep(
		s.reservations, s.stations, s.gateway, s.notifier, clock.NewMockClock(s.now), promotionHorizon)
}

func (s *PromoteSweepTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestPromoteSweepSuite(t *testing.T) {
	suite.Run(t, new(PromoteSweepTestSuite))
}

func (s *PromoteSweepTestSuite) buildUpcoming(id int) *reservation.Reservation {
	res, err := builder.NewReservationBuilder().WithNow(s.now).WithID(id).
		WithWindow(s.now.Add(2*time.Minute), s.now.Add(time.Hour)).BuildDomain()
	s.Require().NoError(err)
	s.Require().Equal(reservation.StatusScheduled, res.Status())
	return res
}

func (s *PromoteSweepTestSuite) buildInProgress(id int) *reservation.Reservation {
	res, err := builder.NewReservationBuilder().WithNow(s.now).WithID(id).AsInProgress().BuildDomain()
	s.Require().NoError(err)
	return res
}

func (s *PromoteSweepTestSuite) expectUpcoming(res ...*reservation.Reservation) {
	s.reservations.EXPECT().
		FindUpcoming(gomock.Any(), s.tenantID, s.now.Add(-promotionHorizon), s.now.Add(promotionHorizon)).
		Return(res, nil)
}

func (s *PromoteSweepTestSuite) expectInProgress(res ...*reservation.Reservation) {
	s.reservations.EXPECT().FindInProgress(gomock.Any(), s.tenantID).Return(res, nil)
}

func (s *PromoteSweepTestSuite) TestPromotesUpcomingReservation() {
	res := s.buildUpcoming(100)

	s.expectUpcoming(res)
	s.gateway.EXPECT().ClientFor(gomock.Any(), s.tenantID, res.ChargingStationID()).Return(s.client, nil)
	s.client.EXPECT().ReserveNow(gomock.Any(), gomock.Any()).Return(commands.RemoteAccepted, nil)
	s.reservations.EXPECT().TransitionStatus(gomock.Any(), s.tenantID, 100,
		reservation.StatusScheduled, reservation.StatusInProgress, uuid.Nil, s.now).Return(true, nil)
	s.stations.EXPECT().BindConnector(gomock.Any(), s.tenantID,
		res.ChargingStationID(), res.ConnectorID(), 100).Return(nil)
	s.notifier.EXPECT().ReservationStatusChanged(gomock.Any(), s.tenantID, res)
	s.expectInProgress()

	s.Require().NoError(s.sweep.Run(context.Background(), s.tenantID))
	s.Equal(reservation.StatusInProgress, res.Status())
}

func (s *PromoteSweepTestSuite) TestRemoteRefusalLeavesReservationScheduled() {
	res := s.buildUpcoming(100)

	s.expectUpcoming(res)
	s.gateway.EXPECT().ClientFor(gomock.Any(), s.tenantID, res.ChargingStationID()).Return(s.client, nil)
	s.client.EXPECT().ReserveNow(gomock.Any(), gomock.Any()).Return(commands.RemoteRejected, nil)
	// No promotion without a physical placement.
	s.expectInProgress()

	s.Require().NoError(s.sweep.Run(context.Background(), s.tenantID))
	s.Equal(reservation.StatusScheduled, res.Status())
}

func (s *PromoteSweepTestSuite) TestOfflineStationSkipsReservation() {
	first := s.buildUpcoming(100)
	second, err := builder.NewReservationBuilder().WithNow(s.now).WithID(101).WithStationID("CS-002").
		WithWindow(s.now.Add(2*time.Minute), s.now.Add(time.Hour)).BuildDomain()
	s.Require().NoError(err)

	s.expectUpcoming(first, second)
	s.gateway.EXPECT().ClientFor(gomock.Any(), s.tenantID, first.ChargingStationID()).
		Return(nil, errs.Mark(errs.New("station offline"), errs.ErrBackendUnreachable))
	s.gateway.EXPECT().ClientFor(gomock.Any(), s.tenantID, second.ChargingStationID()).Return(s.client, nil)
	s.client.EXPECT().ReserveNow(gomock.Any(), gomock.Any()).Return(commands.RemoteAccepted, nil)
	s.reservations.EXPECT().TransitionStatus(gomock.Any(), s.tenantID, 101,
		reservation.StatusScheduled, reservation.StatusInProgress, uuid.Nil, s.now).Return(true, nil)
	s.stations.EXPECT().BindConnector(gomock.Any(), s.tenantID,
		second.ChargingStationID(), second.ConnectorID(), 101).Return(nil)
	s.notifier.EXPECT().ReservationStatusChanged(gomock.Any(), s.tenantID, second)
	s.expectInProgress()

	s.Require().NoError(s.sweep.Run(context.Background(), s.tenantID))
	s.Equal(reservation.StatusScheduled, first.Status())
}

func (s *PromoteSweepTestSuite) TestReaffirmsDroppedReservation() {
	res := s.buildInProgress(100)

	s.expectUpcoming()
	s.expectInProgress(res)
	// The station reports the connector free although a live reservation
	// claims it, so the command is re-sent.
	s.stations.EXPECT().ConnectorStatus(gomock.Any(), s.tenantID,
		res.ChargingStationID(), res.ConnectorID()).Return(station.ConnectorAvailable, nil)
	s.gateway.EXPECT().ClientFor(gomock.Any(), s.tenantID, res.ChargingStationID()).Return(s.client, nil)
	s.client.EXPECT().ReserveNow(gomock.Any(), gomock.Any()).Return(commands.RemoteAccepted, nil)

	s.Require().NoError(s.sweep.Run(context.Background(), s.tenantID))
}

func (s *PromoteSweepTestSuite) TestReservedConnectorNeedsNoReaffirmation() {
	res := s.buildInProgress(100)

	s.expectUpcoming()
	s.expectInProgress(res)
	s.stations.EXPECT().ConnectorStatus(gomock.Any(), s.tenantID,
		res.ChargingStationID(), res.ConnectorID()).Return(station.ConnectorReserved, nil)

	s.Require().NoError(s.sweep.Run(context.Background(), s.tenantID))
}
