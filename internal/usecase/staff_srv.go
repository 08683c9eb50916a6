package usecase

import (
	"context"
	"strings"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StaffService interface {
	// Provision creates or updates a back-office account. Replaying the same
	// id is safe.
	Provision(ctx context.Context, req *request.StaffRequest) (*response.StaffResponse, error)
}

type staffService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewStaffService(repo *repository.Repository, log *zap.Logger) StaffService {
	return &staffService{
		repo: repo,
		log:  log.With(zap.String("service", "staff")),
	}
}

func (s *staffService) Provision(ctx context.Context, req *request.StaffRequest) (*response.StaffResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Staff provisioning validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}

	id := uuid.New()
	if req.ID != nil {
		parsed, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, apperr.Validation("id", "invalid ID format")
		}
		id = parsed
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Cek user lama by id dan email
	current, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Remote("find user", err)
	}
	if req.IsUpdate && current == nil {
		return nil, apperr.NotFound("staff", id.String())
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Remote("find user by email", err)
	}
	if byEmail != nil && byEmail.ID != id {
		return nil, apperr.Conflict("email %s already registered", email)
	}

	// 3. Hash password (wajib untuk akun baru)
	var hash string
	if req.Password != "" {
		hash, err = utils.HashPassword(req.Password)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, apperr.Remote("hash password", err)
		}
	} else if current == nil {
		return nil, apperr.Validation("password", "required for a new account")
	}

	role := entity.RoleStaff
	if req.Role != "" {
		role = entity.Role(req.Role)
	}

	now := time.Now()
	createdAt := now
	if current != nil {
		createdAt = current.CreatedAt
	}

	user := &entity.User{
		Base: entity.Base{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}
	staff := &entity.Staff{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: now,
		},
		Department:     req.Department,
		Position:       req.Position,
		EmployeeNumber: req.EmployeeNumber,
		KTPNumber:      req.KTPNumber,
		Address:        req.Address,
	}

	// 4. Upsert users + staff dalam satu transaksi
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Upsert(ctx, user); err != nil {
			return apperr.Remote("upsert user", err)
		}
		if err := tx.Staff.Upsert(ctx, staff); err != nil {
			return apperr.Remote("upsert staff", err)
		}
		// sesi lama membawa snapshot role, paksa login ulang
		if current != nil && current.Role != role {
			if err := tx.Session.RevokeAllUserSessions(ctx, id); err != nil {
				return apperr.Remote("revoke sessions", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to provision staff", zap.Error(err), zap.String("staff_id", id.String()))
		return nil, err
	}

	s.log.Info("Staff provisioned",
		zap.String("staff_id", id.String()),
		zap.String("role", string(role)),
		zap.Bool("created", current == nil),
	)

	resp := response.StaffToResponse(user, staff, current == nil)
	return &resp, nil
}
