package internal

import (
	"net/http"

	"lpec/internal/controllers"
	"lpec/internal/providers"
)

func InitRoutes(statusController *controllers.StatusController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/status", http.HandlerFunc(statusController.Status))
	return routers
}
