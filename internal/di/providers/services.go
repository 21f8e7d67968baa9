package providers

import (
	"github.com/samber/do/v2"

	"github.com/latateni/latateni-server/internal/ai"
	"github.com/latateni/latateni-server/internal/auth"
	"github.com/latateni/latateni-server/internal/config"
	"github.com/latateni/latateni-server/internal/logger"
	"github.com/latateni/latateni-server/internal/media"
	"github.com/latateni/latateni-server/internal/service"
	"github.com/latateni/latateni-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideMediaEncoder provides the image encoder.
func ProvideMediaEncoder(i do.Injector) (*media.Encoder, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return media.NewEncoder(log.Logger), nil
}

// ProvideAuthService provides the login/refresh/logout service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, validator, log.Logger), nil
}

// ProvideAdminService provides the account provisioning service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cfg := do.MustInvoke[*config.Config](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(storeHandle.Store, cfg, validator, log.Logger), nil
}

// ProvidePlayerService provides the player roster service.
func ProvidePlayerService(i do.Injector) (*service.PlayerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	encoder := do.MustInvoke[*media.Encoder](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlayerService(storeHandle.Store, encoder, validator, log.Logger), nil
}

// ProvideExerciseService provides the exercise catalog service.
func ProvideExerciseService(i do.Injector) (*service.ExerciseService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	encoder := do.MustInvoke[*media.Encoder](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewExerciseService(storeHandle.Store, encoder, validator, log.Logger), nil
}

// ProvideProgramService provides the training program service.
func ProvideProgramService(i do.Injector) (*service.ProgramService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	assistant := do.MustInvoke[*ai.Assistant](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProgramService(storeHandle.Store, assistant, validator, log.Logger), nil
}

// ProvideTheoryService provides the theory article service.
func ProvideTheoryService(i do.Injector) (*service.TheoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	encoder := do.MustInvoke[*media.Encoder](i)
	assistant := do.MustInvoke[*ai.Assistant](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTheoryService(storeHandle.Store, encoder, assistant, validator, log.Logger), nil
}
