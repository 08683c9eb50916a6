package usecase

import (
	"context"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, role entity.Role, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, apperr.Remote("find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, role entity.Role, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if role != "" && !role.IsValid() {
		return nil, apperr.Validation("role", "unknown role "+string(role))
	}

	users, err := us.userRepo.FindAll(ctx, role, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get users", zap.Error(err))
		return nil, apperr.Remote("list users", err)
	}

	total, err := us.userRepo.CountAll(ctx, role)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, apperr.Remote("count users", err)
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}
