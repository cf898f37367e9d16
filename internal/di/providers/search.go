package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/lorekeep/lorekeep-server/internal/config"
	"github.com/lorekeep/lorekeep-server/internal/logger"
	"github.com/lorekeep/lorekeep-server/internal/search"
	"github.com/lorekeep/lorekeep-server/internal/service"
)

// SearchIndexHandle wraps the bleve index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.Open(search.Options{
		DataPath: cfg.Storage.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service and wires the index
// into the store's write path.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(storeHandle.Store, indexHandle.Index, log.Logger)

	// Item writes update the index inside the same transaction boundary.
	storeHandle.SetSearchIndexer(indexHandle.Index)

	return svc, nil
}

// ReconcileSearchIndex brings the index back in line with the item table.
// Called once at bootstrap, after all services are wired.
func ReconcileSearchIndex(i do.Injector) error {
	searchService := do.MustInvoke[*service.SearchService](i)
	return searchService.Reconcile(context.Background())
}
