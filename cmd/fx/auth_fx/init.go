package auth_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(
	provideUserRepo,
	provideTokenRepo,
	provideAuthService,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideTokenRepo(db *gorm.DB) repositories.TokenRepository {
	return repositories.NewTokenRepository(db)
}

func provideAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	creditRepo repositories.CreditRepository,
	mailService services.MailServiceInterface,
	logger *zap.Logger,
) services.AuthServiceInterface {
	return services.NewAuthService(userRepo, tokenRepo, creditRepo, mailService, logger)
}
