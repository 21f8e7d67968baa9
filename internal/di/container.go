// Package di provides dependency injection configuration for the LaTateni server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/di/providers"
	"github.com/latateni/latateni-server/internal/logger"
	"github.com/latateni/latateni-server/internal/media"
	"github.com/latateni/latateni-server/internal/service"
	"github.com/latateni/latateni-server/internal/sse"
	"github.com/latateni/latateni-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage and delivery
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideLiveManager)

	// AI layer
	do.Provide(injector, providers.ProvideAIClient)
	do.Provide(injector, providers.ProvideAIQuota)
	do.Provide(injector, providers.ProvideAssistant)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideMediaEncoder)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvidePlayerService)
	do.Provide(injector, providers.ProvideExerciseService)
	do.Provide(injector, providers.ProvideProgramService)
	do.Provide(injector, providers.ProvideTheoryService)

	// Server
	do.Provide(injector, providers.ProvideSSEHandler)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns nothing; invoking each
// provider triggers lazy initialization in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.LiveManagerHandle](injector)

	_ = do.MustInvoke[*ai.Client](injector)
	_ = do.MustInvoke[*ai.Quota](injector)
	_ = do.MustInvoke[*ai.Assistant](injector)

	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*media.Encoder](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)
	_ = do.MustInvoke[*service.PlayerService](injector)
	_ = do.MustInvoke[*service.ExerciseService](injector)
	_ = do.MustInvoke[*service.ProgramService](injector)
	_ = do.MustInvoke[*service.TheoryService](injector)

	_ = do.MustInvoke[*sse.Handler](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
