package service

import (
	"catalog-service/constant"
	"catalog-service/dto"
	"catalog-service/entities"
	"catalog-service/pkg/token"
	"catalog-service/repository"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"math/big"
	"strings"
	"time"
)

const (
	otpTTL            = 10 * time.Minute
	otpKeyPrefix      = "reset_otp:"
	verifiedKeyPrefix = "reset_verified:"
	revokedKeyPrefix  = "revoked_token:"
)

// KeyValueStore is the expiring key/value store behind OTPs and revoked
// tokens.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, identity Identity) error
	Authenticate(ctx context.Context, tokenString string) (Identity, error)
	Me(ctx context.Context, identity Identity) (*entities.User, error)

	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, password string) error
	ChangePassword(ctx context.Context, identity Identity, req dto.ChangePasswordRequest) error

	Profile(ctx context.Context, identity Identity) (dto.Profile, error)
	UpdateProfile(ctx context.Context, identity Identity, req dto.ProfileRequest) (dto.Profile, error)
}

type authService struct {
	repo   repository.Repository
	tokens *token.Issuer
	kv     KeyValueStore
	mailer Mailer
}

func NewAuthService(repo repository.Repository, tokens *token.Issuer, kv KeyValueStore, mailer Mailer) AuthService {
	return &authService{repo: repo, tokens: tokens, kv: kv, mailer: mailer}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*entities.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, NewValidationError("password", "The password and confirm password must match.")
	}
	email := normalizeEmail(req.Email)
	taken, err := s.repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, persistence(err)
	}
	if taken {
		return nil, fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		FirstName:       strings.TrimSpace(req.FirstName),
		Email:           email,
		Password:        string(hash),
		Role:            constant.RoleSubscriber,
		PlanType:        constant.PlanNone,
		EmailVerifiedAt: &now,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("email", email).Msg("failed to register user")
		return nil, persistence(err)
	}

	zerolog.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	user, err := s.repo.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repository.ErrRecordNotFound) {
		return dto.LoginResponse{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err != nil {
		return dto.LoginResponse{}, persistence(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return dto.LoginResponse{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if _, ok := constant.ParseRole(string(user.Role)); !ok {
		return dto.LoginResponse{}, fmt.Errorf("%w: role not allowed", ErrForbidden)
	}

	signed, _, err := s.tokens.Issue(user.ID, user.Role.String())
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{
		Token:     signed,
		TokenType: "bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User: dto.UserSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			Email:     user.Email,
			Role:      user.Role,
		},
	}, nil
}

// Logout revokes the caller's token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, identity Identity) error {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 || identity.TokenID == "" {
		return nil
	}
	if err := s.kv.Set(ctx, revokedKeyPrefix+identity.TokenID, "1", ttl); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (Identity, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	userId, err := claims.UserID()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	role, ok := constant.ParseRole(claims.Role)
	if !ok {
		return Identity{}, fmt.Errorf("%w: unknown role %q", ErrForbidden, claims.Role)
	}
	_, revoked, err := s.kv.Get(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if revoked {
		return Identity{}, fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	}

	identity := Identity{UserID: userId, Role: role, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

func (s *authService) Me(ctx context.Context, identity Identity) (*entities.User, error) {
	user, err := s.repo.FindUserById(ctx, identity.UserID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound("user %d", identity.UserID)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return user, nil
}

func (s *authService) SendResetOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if _, err := s.repo.FindUserByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return notFound("user with email %s", email)
		}
		return persistence(err)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, otpKeyPrefix+email, otp, otpTTL); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := s.mailer.Send(ctx, email, "Password Reset OTP", "Your password reset OTP is: "+otp); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("email", email).Msg("failed to send reset otp")
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *authService) VerifyResetOTP(ctx context.Context, email, otp string) error {
	email = normalizeEmail(email)
	stored, ok, err := s.kv.Get(ctx, otpKeyPrefix+email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !ok || subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) != 1 {
		return NewValidationError("otp", "Invalid or expired OTP.")
	}
	if err := s.kv.Set(ctx, verifiedKeyPrefix+email, "1", otpTTL); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	_, verified, err := s.kv.Get(ctx, verifiedKeyPrefix+email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !verified {
		return fmt.Errorf("%w: OTP not verified or expired", ErrForbidden)
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return notFound("user with email %s", email)
	}
	if err != nil {
		return persistence(err)
	}
	if err := s.setPassword(ctx, user.ID, password); err != nil {
		return err
	}

	if err := s.kv.Delete(ctx, otpKeyPrefix+email, verifiedKeyPrefix+email); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("email", email).Msg("failed to clear reset keys")
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, identity Identity, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return NewValidationError("confirm_new_password", "New password and confirmation do not match.")
	}
	user, err := s.Me(ctx, identity)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("%w: the current password is incorrect", ErrForbidden)
	}
	return s.setPassword(ctx, user.ID, req.NewPassword)
}

func (s *authService) setPassword(ctx context.Context, userId uint, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, userId, string(hash)); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", userId).Msg("failed to update password")
		return persistence(err)
	}
	return nil
}

func (s *authService) Profile(ctx context.Context, identity Identity) (dto.Profile, error) {
	user, err := s.Me(ctx, identity)
	if err != nil {
		return dto.Profile{}, err
	}
	return toProfile(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, identity Identity, req dto.ProfileRequest) (dto.Profile, error) {
	user, err := s.Me(ctx, identity)
	if err != nil {
		return dto.Profile{}, err
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		taken, err := s.repo.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return dto.Profile{}, persistence(err)
		}
		if taken {
			return dto.Profile{}, NewValidationError("email", "The email has already been taken.")
		}
		user.Email = email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Country != nil {
		user.Country = req.Country
	}
	if req.City != nil {
		user.City = req.City
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("user_id", user.ID).Msg("failed to update profile")
		return dto.Profile{}, persistence(err)
	}
	return toProfile(user), nil
}

func toProfile(user *entities.User) dto.Profile {
	return dto.Profile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Email:     user.Email,
		Country:   user.Country,
		City:      user.City,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
