package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/db_models"
	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest) (*db_models.User, error)
	Login(ctx context.Context, req request_models.LoginRequest) (string, *db_models.User, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetProfile(ctx context.Context, userID uint) (*db_models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req request_models.UpdateProfileRequest) (*db_models.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type AuthService struct {
	userRepo   repositories.UserRepository
	tokenRepo  repositories.TokenRepository
	creditRepo repositories.CreditRepository
	mail       MailServiceInterface
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	creditRepo repositories.CreditRepository,
	mail MailServiceInterface,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		creditRepo: creditRepo,
		mail:       mail,
		logger:     logger,
	}
}

func (a *AuthService) Register(ctx context.Context, req request_models.RegisterRequest) (*db_models.User, error) {
	if !utils.IsValidEmail(req.Email) {
		return nil, utils.ErrInvalidInput
	}
	if !utils.IsValidCNPJ(req.CNPJ) {
		return nil, utils.ErrInvalidInput
	}
	if !utils.IsValidPhone(req.Phone) {
		return nil, utils.ErrInvalidInput
	}

	existing, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        utils.FormatPhone(req.Phone),
		CNPJ:         utils.FormatCNPJ(req.CNPJ),
		PasswordHash: hashed,
		Role:         db_models.RoleUser,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if _, err := a.creditRepo.EnsureAccount(ctx, user.ID); err != nil {
		a.logger.Error("creating credit account", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := a.tokenRepo.InsertVerification(ctx, user.ID, token, verificationTokenTTL); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := a.mail.SendVerificationEmail(user.Email, token); err != nil {
		a.logger.Warn("sending verification email", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

func (a *AuthService) Login(ctx context.Context, req request_models.LoginRequest) (string, *db_models.User, error) {
	user, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	if user == nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return "", nil, utils.ErrEmailNotVerified
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, utils.ErrInvalidCredentials
	}

	if err := a.userRepo.TouchLastSignedIn(ctx, user.ID); err != nil {
		a.logger.Warn("updating last sign-in", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return token, user, nil
}

func (a *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := a.tokenRepo.ConsumeVerification(ctx, token)
	if err != nil {
		return err
	}
	if err := a.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// RequestPasswordReset never reveals whether the email exists.
func (a *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.tokenRepo.InsertReset(ctx, user.ID, token, resetTokenTTL); err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.mail.SendPasswordResetEmail(user.Email, token); err != nil {
		a.logger.Warn("sending reset email", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}

func (a *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := a.tokenRepo.ConsumeReset(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, currentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if err := a.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AuthService) GetProfile(ctx context.Context, userID uint) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (a *AuthService) UpdateProfile(ctx context.Context, userID uint, req request_models.UpdateProfileRequest) (*db_models.User, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		if !utils.IsValidPhone(req.Phone) {
			return nil, utils.ErrInvalidInput
		}
		user.Phone = utils.FormatPhone(req.Phone)
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}
