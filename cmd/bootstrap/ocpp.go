package bootstrap

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/domain/station"
	"github.com/JulianHBuecher/ev-server/internal/infra/ocpp"
	"github.com/JulianHBuecher/ev-server/internal/infra/repository"
	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
)

var OCPPModule = fx.Module("ocpp",
	fx.Provide(
		NewOCPPRegistry,
	),
)

// NewOCPPRegistry builds the charge-point connection hub and wires inbound
// StatusNotification calls to the connector state store.
func NewOCPPRegistry(cfg config.Config, stations *repository.StationRepository, logger *slog.Logger) *ocpp.Registry {
	registry := ocpp.NewRegistry(cfg.OCPP.CallTimeout, logger)
	registry.SetStatusNotificationHandler(func(ctx context.Context, tenantID uuid.UUID, stationID string, connectorID int, status string) {
		if err := stations.UpdateConnectorStatus(ctx, tenantID, stationID, connectorID, station.ConnectorStatus(status)); err != nil {
			logger.Warn("failed to store connector status",
				"tenant_id", tenantID, "station_id", stationID,
				"connector_id", connectorID, "error", err)
		}
	})
	return registry
}
