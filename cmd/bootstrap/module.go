package bootstrap

import (
	"resource-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything the API server and the reaper binary share.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	components.PersistenceModule,
	components.InfraModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
	components.ReaperModule,
)
