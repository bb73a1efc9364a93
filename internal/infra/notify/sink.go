package notify

import (
	"context"
	"log/slog"

	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var ErrUnknownDriver = errs.New("unknown notification driver")

// NewSink builds the sink named by NOTIFY_DRIVER and ties its connection to the app lifecycle.
func NewSink(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, clock clock.Clock, logger *slog.Logger) (shared.NotificationSink, error) {
	switch cfg.Notify.Driver {
	case DriverAMQP:
		sink, err := DialAMQP(cfg.Notify.AMQPURL, cfg.Notify.Exchange)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return sink.Close()
			},
		})
		logger.Info("notifications publish to amqp", slog.String("exchange", cfg.Notify.Exchange))
		return sink, nil
	case DriverOutbox:
		return NewOutboxSink(uow, clock), nil
	case DriverLog, "":
		return NewLogSink(logger), nil
	default:
		return nil, errs.Wrapf(ErrUnknownDriver, "driver %q", cfg.Notify.Driver)
	}
}
