package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

type WhatsappServiceInterface interface {
	SendMessage(ctx context.Context, phone, message string) error

	// Connect asks the gateway for a new session and stores the QR code,
	// moving the config to the connecting state. An empty phoneNumber keeps
	// the number already on file.
	Connect(ctx context.Context, userID uint, phoneNumber string) (*db_models.WhatsappConfig, error)
	Disconnect(ctx context.Context, userID uint) error
	Status(ctx context.Context, userID uint) (*db_models.WhatsappConfig, error)
	// ConfirmConnected is called when the gateway reports the QR was scanned.
	ConfirmConnected(ctx context.Context, userID uint, sessionData string) error
}

type WhatsappGatewayConfig struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
}

func WhatsappGatewayConfigFromEnv() WhatsappGatewayConfig {
	return WhatsappGatewayConfig{
		APIURL:   os.Getenv("WHATSAPP_API_URL"),
		APIToken: os.Getenv("WHATSAPP_API_TOKEN"),
		Timeout:  15 * time.Second,
	}
}

type whatsappService struct {
	cfg              WhatsappGatewayConfig
	client           *http.Client
	notificationRepo repositories.NotificationRepository
	logger           *zap.Logger
}

func NewWhatsappService(cfg WhatsappGatewayConfig, notificationRepo repositories.NotificationRepository, logger *zap.Logger) WhatsappServiceInterface {
	return &whatsappService{
		cfg:              cfg,
		client:           &http.Client{Timeout: cfg.Timeout},
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (s *whatsappService) SendMessage(ctx context.Context, phone, message string) error {
	if s.cfg.APIURL == "" || s.cfg.APIToken == "" {
		return fmt.Errorf("whatsapp gateway is not configured")
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"phone":   phone,
		"message": message,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Warn("whatsapp gateway rejected message",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *whatsappService) Connect(ctx context.Context, userID uint, phoneNumber string) (*db_models.WhatsappConfig, error) {
	cfg, err := s.notificationRepo.GetWhatsappConfig(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if phoneNumber != "" {
		if !utils.IsValidPhone(phoneNumber) {
			return nil, utils.ErrInvalidInput
		}
		cfg.PhoneNumber = utils.FormatPhone(phoneNumber)
	}
	if cfg.State == db_models.WhatsappConnected {
		if err := s.notificationRepo.SaveWhatsappConfig(ctx, cfg); err != nil {
			return nil, utils.ErrDatabaseError
		}
		return cfg, nil
	}

	qr, err := s.requestSession(ctx, userID)
	if err != nil {
		cfg.State = db_models.WhatsappError
		_ = s.notificationRepo.SaveWhatsappConfig(ctx, cfg)
		return nil, err
	}

	cfg.State = db_models.WhatsappConnecting
	cfg.QRCode = qr
	if err := s.notificationRepo.SaveWhatsappConfig(ctx, cfg); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return cfg, nil
}

func (s *whatsappService) requestSession(ctx context.Context, userID uint) (string, error) {
	if s.cfg.APIURL == "" || s.cfg.APIToken == "" {
		return "", fmt.Errorf("whatsapp gateway is not configured")
	}

	payload, _ := json.Marshal(map[string]interface{}{"session_id": fmt.Sprintf("user-%d", userID)})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"/sessions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	var out struct {
		QRCode string `json:"qr_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.QRCode, nil
}

func (s *whatsappService) Disconnect(ctx context.Context, userID uint) error {
	cfg, err := s.notificationRepo.GetWhatsappConfig(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	cfg.State = db_models.WhatsappDisconnected
	cfg.QRCode = ""
	cfg.SessionData = ""
	return s.notificationRepo.SaveWhatsappConfig(ctx, cfg)
}

func (s *whatsappService) Status(ctx context.Context, userID uint) (*db_models.WhatsappConfig, error) {
	cfg, err := s.notificationRepo.GetWhatsappConfig(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return cfg, nil
}

func (s *whatsappService) ConfirmConnected(ctx context.Context, userID uint, sessionData string) error {
	cfg, err := s.notificationRepo.GetWhatsappConfig(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	cfg.State = db_models.WhatsappConnected
	cfg.QRCode = ""
	cfg.SessionData = sessionData
	return s.notificationRepo.SaveWhatsappConfig(ctx, cfg)
}
