package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	appErrors "github.com/noah-isme/campus-complaint-portal/pkg/errors"
)

type authUserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	IsInGroup(ctx context.Context, userID, group string) (bool, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RequestMeta carries client details recorded in the audit log.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// AuthConfig defines configuration for session issuance.
type AuthConfig struct {
	SessionSecret string
	SessionExpiry time.Duration
	Issuer        string
}

// AuthService authenticates principals, classifies them into a role and
// manages the signed session cookie payload.
type AuthService struct {
	repo      authUserRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config}
}

// Login verifies the credentials and returns the matching user. Invalid
// credentials surface as ErrInvalidCredentials, which callers treat as
// a normal outcome rather than a fault.
func (s *AuthService) Login(ctx context.Context, form models.LoginForm, meta RequestMeta) (*models.User, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	user, err := s.repo.FindByUsername(ctx, form.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:    &user.ID,
		Action:    models.AuditActionLogin,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record login audit log", zap.Error(err))
	}

	return user, nil
}

// Classify derives the role for an authenticated user. Superusers are
// admins; members of the staff group are staff; everyone else is a
// student. The function is total, so an authenticated user is never
// rejected for lacking a role.
func (s *AuthService) Classify(ctx context.Context, user *models.User) (models.Role, error) {
	if user.IsSuperuser {
		return models.RoleAdmin, nil
	}

	isStaff, err := s.repo.IsInGroup(ctx, user.ID, models.StaffGroupName)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve group membership")
	}
	if isStaff {
		return models.RoleStaff, nil
	}

	return models.RoleStudent, nil
}

// IssueSession signs a session token binding the user and role until expiry.
func (s *AuthService) IssueSession(user *models.User, role models.Role) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, nil
}

// ValidateSession parses and validates a session token returning the claims.
func (s *AuthService) ValidateSession(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session claims")
	}

	return claims, nil
}

// RecordLogout writes a logout audit entry. The session itself lives in
// the cookie, so ending it is the handler clearing that cookie.
func (s *AuthService) RecordLogout(ctx context.Context, userID string, meta RequestMeta) {
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:    &userID,
		Action:    models.AuditActionLogout,
		IPAddress: meta.IP,
		UserAgent: meta.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record logout audit log", zap.Error(err))
	}
}

// DashboardPath maps a role to its post-login landing page.
func DashboardPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/"
	case models.RoleStaff:
		return "/staff/"
	default:
		return "/student/"
	}
}
