package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/cmd/fx/alert_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/audit_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/auth_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/controllers_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/credit_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/db_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/logger_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/mail_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/memcache_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/notification_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/payment_fx"
	"github.com/davidsodrelins/comunyCAR/cmd/fx/vehicle_fx"
	"github.com/davidsodrelins/comunyCAR/internal/api/controllers"
	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	mem "github.com/davidsodrelins/comunyCAR/pkg/memcache"
	"github.com/davidsodrelins/comunyCAR/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		notification_fx.Module,
		auth_fx.Module,
		vehicle_fx.Module,
		alert_fx.Module,
		credit_fx.Module,
		payment_fx.Module,
		audit_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				log.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					log.Fatal("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	store mem.CounterStore,
	authController *controllers.AuthController,
	vehicleController *controllers.VehicleController,
	alertController *controllers.AlertController,
	messageController *controllers.MessageController,
	creditController *controllers.CreditController,
	notificationController *controllers.NotificationController,
	auditController *controllers.AuditController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.APIRateLimit(store))

	RegisterRoutes(r, store,
		authController, vehicleController, alertController,
		messageController, creditController, notificationController, auditController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	store mem.CounterStore,
	authController *controllers.AuthController,
	vehicleController *controllers.VehicleController,
	alertController *controllers.AlertController,
	messageController *controllers.MessageController,
	creditController *controllers.CreditController,
	notificationController *controllers.NotificationController,
	auditController *controllers.AuditController,
) {
	auth := r.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", middleware.LoginRateLimit(store), authController.Login)
	auth.POST("/verify-email", authController.VerifyEmail)
	auth.POST("/request-password-reset", middleware.LoginRateLimit(store), authController.RequestPasswordReset)
	auth.POST("/reset-password", authController.ResetPassword)

	me := r.Group("/auth", middleware.JWTAuthMiddleware())
	me.GET("/me", authController.GetProfile)
	me.PUT("/me", authController.UpdateProfile)
	me.PUT("/me/password", authController.ChangePassword)

	alerts := r.Group("/alerts")
	alerts.GET("/fixed", alertController.ListFixed)
	alerts.POST("/fixed", middleware.OptionalJWTMiddleware(), middleware.AlertRateLimit(store), alertController.SendFixed)
	alerts.POST("/personalized", middleware.JWTAuthMiddleware(), middleware.AlertRateLimit(store), alertController.SendPersonalized)

	r.GET("/vehicles/plate/:plate", vehicleController.GetByPlate)

	vehicles := r.Group("/vehicles", middleware.JWTAuthMiddleware())
	vehicles.POST("", vehicleController.Create)
	vehicles.GET("", vehicleController.ListMine)
	vehicles.GET("/:id", vehicleController.Get)
	vehicles.PUT("/:id", vehicleController.Update)
	vehicles.GET("/:id/users", vehicleController.ListUsers)
	vehicles.POST("/:id/users", vehicleController.AddSecondaryUser)
	vehicles.DELETE("/:id/users/:userId", vehicleController.RemoveSecondaryUser)

	messages := r.Group("/messages", middleware.JWTAuthMiddleware())
	messages.GET("/received", messageController.ListReceived)
	messages.GET("/sent", messageController.ListSent)
	messages.GET("/:id", messageController.Get)
	messages.POST("/:id/reactions", messageController.React)
	messages.POST("/:id/read", messageController.MarkRead)

	credits := r.Group("/credits", middleware.JWTAuthMiddleware())
	credits.GET("/balance", creditController.Balance)
	credits.GET("/transactions", creditController.Transactions)
	credits.POST("/purchase", middleware.PaymentRateLimit(store), creditController.Purchase)
	credits.GET("/orders", creditController.ListOrders)
	credits.POST("/orders", middleware.PaymentRateLimit(store), creditController.CreateOrder)
	credits.POST("/orders/capture", creditController.CaptureOrder)

	r.POST("/webhooks/paypal", creditController.Webhook)
	r.POST("/webhooks/whatsapp",
		middleware.SharedTokenMiddleware(os.Getenv("WHATSAPP_API_TOKEN")),
		notificationController.WhatsappCallback)

	notifications := r.Group("/notifications", middleware.JWTAuthMiddleware())
	notifications.GET("/preferences", notificationController.GetPreferences)
	notifications.PUT("/preferences", notificationController.UpdatePreferences)
	notifications.POST("/push-tokens", notificationController.RegisterPushToken)
	notifications.GET("/push-tokens", notificationController.ListPushTokens)
	notifications.DELETE("/push-tokens/:token", notificationController.RemovePushToken)
	notifications.POST("/whatsapp/connect", notificationController.WhatsappConnect)
	notifications.POST("/whatsapp/disconnect", notificationController.WhatsappDisconnect)
	notifications.GET("/whatsapp/status", notificationController.WhatsappStatus)

	admin := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.POST("/alerts/fixed", alertController.CreateFixed)
	admin.PUT("/alerts/fixed/:id", alertController.UpdateFixed)
	admin.DELETE("/alerts/fixed/:id", alertController.DeleteFixed)
	admin.GET("/audit", auditController.List)
}
