package usecase

import (
	"context"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress *string) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// ValidateSession resolves a bearer token to its session, cache first.
	// Returns nil, nil for unknown, revoked or expired tokens.
	ValidateSession(ctx context.Context, token string) (*entity.Session, error)
}

type authService struct {
	repo     *repository.Repository
	sessions cache.SessionCache
	config   *utils.Config
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	sessions cache.SessionCache,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	if sessions == nil {
		sessions = cache.NewNoopSessionCache()
	}
	return &authService{
		repo:     repo,
		sessions: sessions,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ipAddress *string) (*response.AuthResponse, error) {
	// 1. Validasi
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	// 2. Cari user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Remote("find user", err)
	}

	// 3. Cek password
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, apperr.Validation("", "invalid credentials")
	}

	// 4. Cek user aktif
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperr.Validation("", "account is deactivated")
	}

	// 5. Buat session, role di-snapshot di sini
	session, err := s.createSession(ctx, user, userAgent, ipAddress)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Remote("create session", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(session.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return apperr.Validation("token", "invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return apperr.Remote("revoke session", err)
	}

	if err := s.sessions.Delete(ctx, tokenUUID.String()); err != nil {
		s.log.Warn("Failed to evict cached session", zap.Error(err))
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}

	cached, err := s.sessions.Get(ctx, tokenUUID.String())
	if err != nil {
		s.log.Warn("Session cache unavailable", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, tokenUUID)
	if err != nil {
		return nil, apperr.Remote("find session", err)
	}
	if session == nil {
		return nil, nil
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		s.log.Warn("Failed to cache session", zap.Error(err))
	}

	return session, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, user *entity.User, userAgent, ipAddress *string) (*entity.Session, error) {
	now := time.Now()
	hours := s.config.Session.ExpiryHours
	if hours <= 0 {
		hours = 24
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		Role:      user.Role,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(time.Duration(hours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.sessions.Set(ctx, session); err != nil {
		s.log.Warn("Failed to cache session", zap.Error(err))
	}

	return session, nil
}
