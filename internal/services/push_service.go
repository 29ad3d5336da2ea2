package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/option"
)

type PushServiceInterface interface {
	// SendToToken delivers a notification to a single device token.
	SendToToken(ctx context.Context, token, title, body string, data map[string]string) error
}

type fcmPushService struct {
	svc    *fcm.Service
	parent string
	logger *zap.Logger
}

// NewFCMPushService builds the push sender from FCM_PROJECT_ID and
// FCM_CREDENTIALS_FILE. Both unset means push is disabled and sends fail.
func NewFCMPushService(ctx context.Context, logger *zap.Logger) (PushServiceInterface, error) {
	projectID := os.Getenv("FCM_PROJECT_ID")
	credFile := os.Getenv("FCM_CREDENTIALS_FILE")
	if projectID == "" || credFile == "" {
		logger.Warn("fcm not configured, push notifications disabled")
		return &fcmPushService{logger: logger}, nil
	}

	svc, err := fcm.NewService(ctx, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("creating fcm service: %w", err)
	}
	return &fcmPushService{
		svc:    svc,
		parent: "projects/" + projectID,
		logger: logger,
	}, nil
}

func (s *fcmPushService) SendToToken(ctx context.Context, token, title, body string, data map[string]string) error {
	if s.svc == nil {
		return fmt.Errorf("fcm is not configured")
	}

	msg := &fcm.Message{
		Token: token,
		Notification: &fcm.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &fcm.AndroidConfig{
			Priority: "high",
			Notification: &fcm.AndroidNotification{
				Sound: "buzina",
			},
		},
	}

	_, err := s.svc.Projects.Messages.Send(s.parent, &fcm.SendMessageRequest{Message: msg}).Context(ctx).Do()
	if err != nil {
		s.logger.Warn("fcm send failed", zap.Error(err))
		return err
	}
	return nil
}
