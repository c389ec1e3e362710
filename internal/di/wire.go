//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"dmhub/internal/config"
	"dmhub/internal/dm/handler"
	"dmhub/internal/dm/repository"
	"dmhub/internal/dm/service"
	"dmhub/internal/user"
)

// InitializeDMService builds the application graph. The body is a wire
// declaration; the generated injector lives in wire_gen.go.
func InitializeDMService() (*Application, func(), error) {
	wire.Build(
		config.LoadConfig,
		provideDatabase,
		repository.NewConversationRepository,
		repository.NewMessageRepository,
		repository.NewBlockRepository,
		user.NewProfileRepository,
		service.NewDMService,
		handler.NewDMHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil, nil
}
