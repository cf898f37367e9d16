package providers

import (
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/lorekeep/lorekeep-server/internal/config"
	"github.com/lorekeep/lorekeep-server/internal/logger"
	"github.com/lorekeep/lorekeep-server/internal/store/sqlite"
)

// StoreHandle wraps the sqlite store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the sqlite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		return nil, err
	}

	st, err := sqlite.Open(filepath.Join(cfg.Storage.DataPath, "lorekeep.db"), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database opened", "path", cfg.Storage.DataPath)

	return &StoreHandle{Store: st}, nil
}
