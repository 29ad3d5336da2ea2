package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davidsodrelins/comunyCAR/internal/models/request_models"
	"github.com/davidsodrelins/comunyCAR/internal/repositories"
	"github.com/davidsodrelins/comunyCAR/pkg/utils"
)

func newAuthService(t *testing.T, s *testStack) AuthServiceInterface {
	t.Helper()
	return NewAuthService(
		s.userRepo,
		repositories.NewTokenRepository(s.db),
		s.creditRepo,
		s.mail,
		zap.NewNop(),
	)
}

var registerReq = request_models.RegisterRequest{
	Name:     "Maria Silva",
	Email:    "maria@example.com",
	Phone:    "11987654321",
	CNPJ:     "11.222.333/0001-81",
	Password: "segredo123",
}

func TestRegisterVerifyLogin(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)
	assert.False(t, user.EmailVerified)
	assert.Equal(t, "(11) 98765-4321", user.Phone)
	assert.Equal(t, "11.222.333/0001-81", user.CNPJ)
	require.NotEmpty(t, s.mail.verificationToken)

	// Login before verification is rejected.
	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: registerReq.Password})
	assert.ErrorIs(t, err, utils.ErrEmailNotVerified)

	require.NoError(t, auth.VerifyEmail(ctx, s.mail.verificationToken))

	token, logged, err := auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: registerReq.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, logged.EmailVerified)
	assert.NotZero(t, logged.ID)

	// A credit account exists with zero balance.
	balance, err := s.creditRepo.GetBalance(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestVerificationTokenIsSingleUse(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)

	token := s.mail.verificationToken
	require.NoError(t, auth.VerifyEmail(ctx, token))
	assert.ErrorIs(t, auth.VerifyEmail(ctx, token), utils.ErrTokenNotFound)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerReq)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestRegisterRejectsInvalidCNPJ(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)

	req := registerReq
	req.CNPJ = "11.222.333/0001-80"
	_, err := auth.Register(context.Background(), req)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)
	require.NoError(t, auth.VerifyEmail(ctx, s.mail.verificationToken))

	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: "errada"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)
	require.NoError(t, auth.VerifyEmail(ctx, s.mail.verificationToken))

	require.NoError(t, auth.RequestPasswordReset(ctx, registerReq.Email))
	require.NotEmpty(t, s.mail.resetToken)

	require.NoError(t, auth.ResetPassword(ctx, s.mail.resetToken, "novasenha123"))

	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: registerReq.Password})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: "novasenha123"})
	assert.NoError(t, err)

	// Reset tokens are single use too.
	assert.ErrorIs(t, auth.ResetPassword(ctx, s.mail.resetToken, "outra"), utils.ErrTokenNotFound)
}

func TestChangePassword(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerReq)
	require.NoError(t, err)
	require.NoError(t, auth.VerifyEmail(ctx, s.mail.verificationToken))

	err = auth.ChangePassword(ctx, user.ID, "senhaerrada", "novasenha123")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.NoError(t, auth.ChangePassword(ctx, user.ID, registerReq.Password, "novasenha123"))

	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: registerReq.Password})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, request_models.LoginRequest{Email: registerReq.Email, Password: "novasenha123"})
	assert.NoError(t, err)
}

func TestRequestResetForUnknownEmailIsSilent(t *testing.T) {
	s := newTestStack(t)
	auth := newAuthService(t, s)

	err := auth.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	assert.Empty(t, s.mail.resetToken)
}
