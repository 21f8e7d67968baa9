package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/live"
	"github.com/latateni/latateni-server/internal/logger"
	"github.com/latateni/latateni-server/internal/sse"
	"github.com/latateni/latateni-server/internal/store"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the document store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// LiveManagerHandle wraps the live session manager with shutdown capability.
type LiveManagerHandle struct {
	*live.Manager
}

// Shutdown implements do.Shutdownable.
func (h *LiveManagerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideLiveManager provides the per-coach live session manager, wired to
// push snapshots through the SSE manager.
func ProvideLiveManager(i do.Injector) (*LiveManagerHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	manager := live.NewManager(storeHandle.Store, log.Logger, sseHandle.Manager)

	return &LiveManagerHandle{Manager: manager}, nil
}
