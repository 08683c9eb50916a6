package usecase

import (
	"context"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FleetService backs the read-only driver and vehicle screens of the admin UI.
type FleetService interface {
	ListDrivers(ctx context.Context, status entity.DriverStatus) ([]response.DriverResponse, error)
	ListVehicles(ctx context.Context, status entity.VehicleStatus) ([]response.VehicleResponse, error)
	DriverTransfers(ctx context.Context, driverID uuid.UUID) ([]response.TransferResponse, error)
	DriverNotifications(ctx context.Context, driverID uuid.UUID) ([]response.NotificationResponse, error)
}

type fleetService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFleetService(repo *repository.Repository, log *zap.Logger) FleetService {
	return &fleetService{
		repo: repo,
		log:  log.With(zap.String("service", "fleet")),
	}
}

func (s *fleetService) ListDrivers(ctx context.Context, status entity.DriverStatus) ([]response.DriverResponse, error) {
	drivers, err := s.repo.Driver.FindAll(ctx, status)
	if err != nil {
		return nil, apperr.Remote("list drivers", err)
	}

	resp := make([]response.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		resp = append(resp, response.DriverToResponse(d))
	}
	return resp, nil
}

func (s *fleetService) ListVehicles(ctx context.Context, status entity.VehicleStatus) ([]response.VehicleResponse, error) {
	vehicles, err := s.repo.Vehicle.FindAll(ctx, status)
	if err != nil {
		return nil, apperr.Remote("list vehicles", err)
	}

	resp := make([]response.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, response.VehicleToResponse(v))
	}
	return resp, nil
}

func (s *fleetService) requireDriver(ctx context.Context, driverID uuid.UUID) error {
	driver, err := s.repo.Driver.FindByID(ctx, driverID)
	if err != nil {
		return apperr.Remote("find driver", err)
	}
	if driver == nil {
		return apperr.NotFound("driver", driverID.String())
	}
	return nil
}

func (s *fleetService) DriverTransfers(ctx context.Context, driverID uuid.UUID) ([]response.TransferResponse, error) {
	if err := s.requireDriver(ctx, driverID); err != nil {
		return nil, err
	}

	transfers, err := s.repo.Transfer.FindByDriverID(ctx, driverID)
	if err != nil {
		return nil, apperr.Remote("list driver transfers", err)
	}

	resp := make([]response.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		resp = append(resp, response.TransferToResponse(t))
	}
	return resp, nil
}

func (s *fleetService) DriverNotifications(ctx context.Context, driverID uuid.UUID) ([]response.NotificationResponse, error) {
	if err := s.requireDriver(ctx, driverID); err != nil {
		return nil, err
	}

	notifications, err := s.repo.Notification.FindUnreadByDriverID(ctx, driverID)
	if err != nil {
		return nil, apperr.Remote("list driver notifications", err)
	}

	resp := make([]response.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, response.NotificationToResponse(n))
	}
	return resp, nil
}
