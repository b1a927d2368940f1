package bootstrap

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/JulianHBuecher/ev-server/internal/infra/notification"
	"github.com/JulianHBuecher/ev-server/internal/pkg/config"
)

var NATSModule = fx.Module("nats",
	fx.Provide(
		NewNATSConn,
		NewNotifier,
	),
)

func NewNATSConn(lc fx.Lifecycle, cfg config.Config) (*nats.Conn, error) {
	conn, cleanup, err := notification.Connect(cfg.NATS.URL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return conn, nil
}

func NewNotifier(conn *nats.Conn, logger *slog.Logger) *notification.NATSNotifier {
	return notification.NewNATSNotifier(conn, logger)
}
