//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"lpec/internal"
	"lpec/internal/checkpoint"
	"lpec/internal/collector"
	"lpec/internal/controllers"
	"lpec/internal/providers"
	"lpec/internal/services"
	"lpec/internal/sink"
	"lpec/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewHTTPClientProvider,
		providers.NewCacheProvider,

		checkpoint.NewStore,
		checkpoint.NewAdapter,

		collector.NewZstdCompressor,
		collector.NewArchive,
		collector.NewPlanner,
		sink.NewFromConfig,
		collector.NewDriver,
		services.NewRunStatusService,
		collector.NewScheduler,

		controllers.NewHealthController,
		controllers.NewStatusController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
