package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/relevant-recovery/recovery-backend/pkg/auth"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/security"
)

// Service authenticates the single configured admin.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Me(ctx context.Context) *AdminDTO
}

// LoginInput holds the submitted admin credentials.
type LoginInput struct {
	Email    string
	Password string
}

// AdminDTO is the admin identity returned to the console.
type AdminDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult pairs the minted token with the admin identity.
type LoginResult struct {
	Token string   `json:"token"`
	User  AdminDTO `json:"user"`
}

type service struct {
	jwt   config.JWTConfig
	admin config.AdminConfig
	logg  *logger.Logger
	now   func() time.Time
}

// NewService constructs the auth service from explicit config; there is no
// user table to consult.
func NewService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig, logg *logger.Logger) (Service, error) {
	if adminCfg.Email == "" {
		return nil, fmt.Errorf("admin email required")
	}
	if adminCfg.PasswordHash == "" && adminCfg.Password == "" {
		return nil, fmt.Errorf("admin credential required")
	}
	return &service{
		jwt:   jwtCfg,
		admin: adminCfg,
		logg:  logg,
		now:   time.Now,
	}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"credentials": "email and password are required"})
	}

	emailMatches := strings.EqualFold(email, s.admin.Email)
	passwordMatches := s.verifyPassword(ctx, input.Password)

	// Both checks always run so a failed login leaks nothing about which
	// field was wrong.
	if !emailMatches || !passwordMatches {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := pkgauth.MintAdminToken(s.jwt, s.now(), email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token")
	}

	return &LoginResult{
		Token: token,
		User:  *s.adminIdentity(),
	}, nil
}

func (s *service) Me(ctx context.Context) *AdminDTO {
	return s.adminIdentity()
}

func (s *service) adminIdentity() *AdminDTO {
	return &AdminDTO{
		ID:    "admin",
		Name:  "Admin",
		Email: strings.ToLower(s.admin.Email),
		Role:  pkgauth.AdminRole,
	}
}

// verifyPassword prefers the argon2id hash; the plaintext fallback exists for
// local development only and still compares in constant time.
func (s *service) verifyPassword(ctx context.Context, password string) bool {
	if s.admin.PasswordHash != "" {
		ok, err := security.VerifyPassword(password, s.admin.PasswordHash)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(ctx, "auth.password_hash.malformed", err)
			}
			return false
		}
		return ok
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
}
