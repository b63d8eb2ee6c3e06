package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = 30 * time.Minute
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountDisabled
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	pair, err := s.tokenPair(user, role)
	if err != nil {
		s.logger.Error("login token generation failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()),
	)
	return pair, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountDisabled
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	pair, err := s.tokenPair(user, role)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return pair, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	role, err := s.resolveRole(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := mapToAuthResponse(user, role)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	role, err := s.employeeRepo.FindRoleByID(ctx, employeeID.String())
	if err != nil {
		return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Email:      req.Email,
		Name:       req.Name,
		Password:   string(hashed),
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
	}

	s.logger.Info("register success",
		zap.String("user_id", user.ID.String()),
		zap.String("employee_id", employeeID.String()),
	)
	return mapToAuthResponse(user, role), nil
}

// ForgotPassword issues a fresh reset token and returns it for out-of-band
// delivery. Only the SHA-256 hash is stored. An unknown email returns an
// empty token and no error, so the endpoint does not leak account existence.
func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("forgot password for unknown email")
		return "", nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	plain := hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(plain))

	token := &PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.repo.CreateResetToken(ctx, token); err != nil {
		s.logger.Error("persist reset token failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("password reset token issued",
		zap.String("user_id", user.ID.String()),
	)
	return plain, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	sum := sha256.Sum256([]byte(token))
	stored, err := s.repo.GetResetToken(ctx, hex.EncodeToString(sum[:]))
	if err != nil {
		return autherrors.ErrResetTokenInvalid
	}
	if stored.UsedAt != nil || time.Now().UTC().After(stored.ExpiresAt) {
		return autherrors.ErrResetTokenInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, stored.UserID, string(hashed)); err != nil {
		s.logger.Error("reset password persist failed",
			zap.String("user_id", stored.UserID.String()),
			zap.Error(err),
		)
		return err
	}
	if err := s.repo.MarkResetTokenUsed(ctx, stored.ID); err != nil {
		s.logger.Error("mark reset token used failed", zap.Error(err))
		return err
	}

	s.logger.Info("password reset success",
		zap.String("user_id", stored.UserID.String()),
	)
	return nil
}

// resolveRole reads the linked employee's position; accounts without an
// employee record authenticate but hold no approval role.
func (s *service) resolveRole(ctx context.Context, user *User) (employee.Role, error) {
	if user.EmployeeID == nil {
		return employee.RoleStaff, nil
	}
	role, err := s.employeeRepo.FindRoleByID(ctx, user.EmployeeID.String())
	if err != nil {
		return "", employeeerrors.ErrEmployeeNotFound
	}
	return role, nil
}

func (s *service) tokenPair(user *User, role employee.Role) (TokenPairResponse, error) {
	access, err := s.generateToken(user, role, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}
	refresh, err := s.generateToken(user, role, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, err
	}
	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         mapToAuthResponse(user, role),
	}, nil
}

func (s *service) generateToken(user *User, role employee.Role, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    role.String(),
		"exp":     time.Now().Add(expiry).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = user.EmployeeID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(user *User, role employee.Role) AuthResponse {
	resp := AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  role.String(),
	}
	if user.EmployeeID != nil {
		resp.EmployeeID = user.EmployeeID.String()
	}
	return resp
}
