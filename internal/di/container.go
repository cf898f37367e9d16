// Package di provides dependency injection configuration for the Lorekeep server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/lorekeep/lorekeep-server/internal/config"
	"github.com/lorekeep/lorekeep-server/internal/di/providers"
	"github.com/lorekeep/lorekeep-server/internal/logger"
	"github.com/lorekeep/lorekeep-server/internal/service"
	"github.com/lorekeep/lorekeep-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideItemService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CategoryService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)

	// Self-heal a deleted or stale index before serving traffic.
	if err := providers.ReconcileSearchIndex(injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
