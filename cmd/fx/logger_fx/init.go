package logger_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger() (*zap.Logger, error) {
	return logger.New()
}
