package mail_fx

import (
	"go.uber.org/fx"

	"github.com/davidsodrelins/comunyCAR/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.MailServiceInterface {
	return services.NewSMTPMailService(services.SMTPConfigFromEnv())
}
