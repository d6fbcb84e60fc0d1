package service

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/pkg/token"
	"catalog-service/repository"
	"catalog-service/repository/repotest"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

type authFixture struct {
	repo   repository.Repository
	kv     *memoryKV
	mailer *recordingMailer
	svc    AuthService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	repo := repotest.Open(t)
	kv := newMemoryKV()
	mailer := &recordingMailer{}
	return authFixture{
		repo:   repo,
		kv:     kv,
		mailer: mailer,
		svc:    NewAuthService(repo, token.NewIssuer("test-secret", time.Hour), kv, mailer),
	}
}

func (f authFixture) register(t *testing.T, email, password string) {
	t.Helper()
	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		FirstName:       "Ada",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.register(t, "Ada@Example.com", "secret123")

	res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, constant.RoleSubscriber, res.User.Role)

	identity, err := f.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, identity.UserID)
	assert.Equal(t, constant.RoleSubscriber, identity.Role)
	assert.NotEmpty(t, identity.TokenID)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "secret123")

	_, err := f.svc.Register(context.Background(), dto.RegisterRequest{
		FirstName: "Other", Email: "ADA@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "secret123")

	_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "ada@example.com", "secret123")

	res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	identity, err := f.svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, identity))

	_, err = f.svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "ada@example.com", "secret123")

	err := f.svc.ResetPassword(ctx, "ada@example.com", "newpassword")
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.SendResetOTP(ctx, "ada@example.com"))
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ada@example.com", f.mailer.sent[0].to)

	otp, ok, err := f.kv.Get(ctx, otpKeyPrefix+"ada@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, otp, 6)
	assert.True(t, strings.HasSuffix(f.mailer.sent[0].body, otp))

	err = f.svc.VerifyResetOTP(ctx, "ada@example.com", "000000")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.svc.VerifyResetOTP(ctx, "ada@example.com", otp))
	require.NoError(t, f.svc.ResetPassword(ctx, "ada@example.com", "newpassword"))

	_, err = f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "newpassword"})
	assert.NoError(t, err)

	_, ok, err = f.kv.Get(ctx, verifiedKeyPrefix+"ada@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendResetOTPUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.SendResetOTP(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.mailer.sent)
}

func TestSendResetOTPMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ada@example.com", "secret123")
	f.mailer.err = errBoom

	err := f.svc.SendResetOTP(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "ada@example.com", "secret123")
	res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	identity := Identity{UserID: res.User.ID, Role: res.User.Role}

	err = f.svc.ChangePassword(ctx, identity, dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "another1", ConfirmNewPassword: "another1",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.svc.ChangePassword(ctx, identity, dto.ChangePasswordRequest{
		CurrentPassword: "secret123", NewPassword: "another1", ConfirmNewPassword: "different",
	})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, f.svc.ChangePassword(ctx, identity, dto.ChangePasswordRequest{
		CurrentPassword: "secret123", NewPassword: "another1", ConfirmNewPassword: "another1",
	}))
	_, err = f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "another1"})
	assert.NoError(t, err)
}

func TestUpdateProfileRejectsTakenEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t, "ada@example.com", "secret123")
	f.register(t, "bob@example.com", "secret123")
	res, err := f.svc.Login(ctx, dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	identity := Identity{UserID: res.User.ID, Role: res.User.Role}

	taken := "bob@example.com"
	_, err = f.svc.UpdateProfile(ctx, identity, dto.ProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrValidation)

	city := "Lisbon"
	same := "ada@example.com"
	profile, err := f.svc.UpdateProfile(ctx, identity, dto.ProfileRequest{City: &city, Email: &same})
	require.NoError(t, err)
	require.NotNil(t, profile.City)
	assert.Equal(t, "Lisbon", *profile.City)
	assert.Equal(t, "Ada", profile.FirstName)
}
