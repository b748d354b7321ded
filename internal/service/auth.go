package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventra/eventra-api/internal/domain"
	"github.com/eventra/eventra-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
	ErrInvalidOTP      = errors.New("invalid or expired code")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hashed string) error
}

// OTPStore holds pending password-reset codes with expiry.
type OTPStore interface {
	Put(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (string, error)
	Burn(ctx context.Context, email string) error
}

// OTPMailer delivers reset codes.
type OTPMailer interface {
	SendOTP(to, code string) error
}

type AuthService struct {
	repo   AuthUserRepository
	otp    OTPStore
	mailer OTPMailer
}

func NewAuthService(repo AuthUserRepository, otp OTPStore, mailer OTPMailer) *AuthService {
	return &AuthService{
		repo:   repo,
		otp:    otp,
		mailer: mailer,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// RequestPasswordReset stores a fresh code for the account and mails it.
// Unknown e-mails are reported to the caller as not found.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generateOTP -> %w", err)
	}

	if err = s.otp.Put(ctx, user.Email, code); err != nil {
		return fmt.Errorf("s.otp.Put -> %w", err)
	}

	if err = s.mailer.SendOTP(user.Email, code); err != nil {
		zap.L().Error("failed to send otp mail", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("s.mailer.SendOTP -> %w", err)
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	stored, err := s.otp.Get(ctx, user.Email)
	if err != nil {
		return ErrInvalidOTP
	}
	if stored != code {
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	if err = s.otp.Burn(ctx, user.Email); err != nil {
		zap.L().Warn("failed to burn otp", zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
