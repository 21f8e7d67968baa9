package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/api"
	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/logger"
	"github.com/latateni/latateni-server/internal/service"
	"github.com/latateni/latateni-server/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideSSEHandler provides the SSE stream handler.
func ProvideSSEHandler(i do.Injector) (*sse.Handler, error) {
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	liveHandle := do.MustInvoke[*LiveManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return sse.NewHandler(sseHandle.Manager, liveHandle.Manager, log.Logger), nil
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	liveHandle := do.MustInvoke[*LiveManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := api.NewServer(api.ServerDeps{
		Store:           storeHandle.Store,
		Tokens:          do.MustInvoke[*auth.TokenService](i),
		AuthService:     do.MustInvoke[*service.AuthService](i),
		AdminService:    do.MustInvoke[*service.AdminService](i),
		PlayerService:   do.MustInvoke[*service.PlayerService](i),
		ExerciseService: do.MustInvoke[*service.ExerciseService](i),
		ProgramService:  do.MustInvoke[*service.ProgramService](i),
		TheoryService:   do.MustInvoke[*service.TheoryService](i),
		Assistant:       do.MustInvoke[*ai.Assistant](i),
		LiveManager:     liveHandle.Manager,
		SSEHandler:      do.MustInvoke[*sse.Handler](i),
		Logger:          log.Logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		// SSE connections stay open indefinitely; per-write deadlines are
		// managed by the stream handler instead of a global write timeout.
		WriteTimeout: 0,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &HTTPServerHandle{Server: httpServer}, nil
}
