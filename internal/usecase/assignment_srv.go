package usecase

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentService interface {
	AssignDriver(ctx context.Context, transferID, driverID uuid.UUID) (*response.AssignDriverResponse, error)
	AssignVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (*response.BookingResponse, error)
	ReleaseDriver(ctx context.Context, driverID uuid.UUID) error
}

type assignmentService struct {
	repo      *repository.Repository
	publisher EventPublisher
	log       *zap.Logger
}

func NewAssignmentService(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) AssignmentService {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &assignmentService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "assignment")),
	}
}

func isClosedTransfer(status entity.TransferStatus) bool {
	return status == entity.TransferStatusCompleted || status == entity.TransferStatusCancelled
}

// AssignDriver binds the driver to the transfer and marks the driver busy in
// one transaction. Notifying the driver happens afterwards; if that fails the
// assignment stays and the response carries the notification error.
func (s *assignmentService) AssignDriver(ctx context.Context, transferID, driverID uuid.UUID) (*response.AssignDriverResponse, error) {
	var transfer *entity.Transfer

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		transfer, err = tx.Transfer.FindByID(ctx, transferID)
		if err != nil {
			return apperr.Remote("find transfer", err)
		}
		if transfer == nil {
			return apperr.NotFound("transfer", transferID.String())
		}
		if isClosedTransfer(transfer.Status) {
			return apperr.Conflict("transfer %s is already %s", transfer.CodeBooking, transfer.Status)
		}

		driver, err := tx.Driver.FindByID(ctx, driverID)
		if err != nil {
			return apperr.Remote("find driver", err)
		}
		if driver == nil {
			return apperr.NotFound("driver", driverID.String())
		}

		reassigned := transfer.DriverID == nil || *transfer.DriverID != driverID
		if reassigned && driver.Status != entity.DriverStatusStandby {
			return apperr.Conflict("driver %s is %s", driver.Name, driver.Status)
		}

		if err := tx.Transfer.AssignDriver(ctx, transferID, driverID); err != nil {
			return apperr.Remote("assign driver", err)
		}
		// driver lama dilepas kembali ke standby
		if transfer.DriverID != nil && *transfer.DriverID != driverID {
			if err := tx.Driver.UpdateStatus(ctx, *transfer.DriverID, entity.DriverStatusStandby); err != nil {
				return apperr.Remote("release previous driver", err)
			}
		}
		if err := tx.Driver.UpdateStatus(ctx, driverID, entity.DriverStatusBusy); err != nil {
			return apperr.Remote("update driver status", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Driver assignment failed",
			zap.Error(err),
			zap.String("transfer_id", transferID.String()),
			zap.String("driver_id", driverID.String()),
		)
		return nil, err
	}

	s.log.Info("Driver assigned",
		zap.String("transfer_id", transferID.String()),
		zap.String("driver_id", driverID.String()),
	)
	publishEvent(ctx, s.publisher, s.log, EventTransferDriverAssigned, DriverAssigned{
		TransferID: transferID.String(),
		DriverID:   driverID.String(),
		At:         time.Now(),
	})

	resp := &response.AssignDriverResponse{
		TransferID:     transferID.String(),
		DriverID:       driverID.String(),
		TransferStatus: entity.TransferStatusPending,
		DriverStatus:   entity.DriverStatusBusy,
	}

	created, err := s.notifyDriver(ctx, transfer, driverID)
	if err != nil {
		partial := apperr.PartialFailureError{Step: "driver notification", Err: err}
		s.log.Error("Driver assigned but notification failed",
			zap.Error(partial),
			zap.String("transfer_id", transferID.String()),
			zap.String("driver_id", driverID.String()),
		)
		resp.NotificationError = partial.Error()
		return resp, nil
	}
	resp.NotificationCreated = created

	return resp, nil
}

// notifyDriver writes at most one notification per transfer and driver.
func (s *assignmentService) notifyDriver(ctx context.Context, transfer *entity.Transfer, driverID uuid.UUID) (bool, error) {
	exists, err := s.repo.Notification.Exists(ctx, transfer.ID, driverID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	return s.repo.Notification.Create(ctx, &entity.DriverNotification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TransferID: transfer.ID,
		DriverID:   driverID,
		Message: fmt.Sprintf("Transfer %s: jemput di %s pukul %s",
			transfer.CodeBooking, transfer.PickupLocation, transfer.PickupTime.Format("02 Jan 2006 15:04")),
		Status: entity.NotificationStatusUnread,
	})
}

func (s *assignmentService) AssignVehicle(ctx context.Context, bookingID, vehicleID uuid.UUID) (*response.BookingResponse, error) {
	var booking *entity.Booking

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		booking, err = tx.Booking.FindByIDForUpdate(ctx, bookingID)
		if err != nil {
			return apperr.Remote("find booking", err)
		}
		if booking == nil {
			return apperr.NotFound("booking", bookingID.String())
		}
		if booking.Status.IsTerminal() || booking.Status == entity.BookingStatusOnRide {
			return apperr.Conflict("booking %s is %s, vehicle can no longer change", booking.CodeBooking, booking.Status)
		}
		if booking.VehicleID != nil && *booking.VehicleID == vehicleID {
			return nil
		}

		vehicle, err := tx.Vehicle.FindByID(ctx, vehicleID)
		if err != nil {
			return apperr.Remote("find vehicle", err)
		}
		if vehicle == nil {
			return apperr.NotFound("vehicle", vehicleID.String())
		}

		reserved, err := tx.Vehicle.UpdateStatusIf(ctx, vehicleID, entity.VehicleStatusBooked, entity.VehicleStatusAvailable)
		if err != nil {
			return apperr.Remote("reserve vehicle", err)
		}
		if !reserved {
			return apperr.Conflict("vehicle %s is not available", vehicle.LicensePlate)
		}

		if booking.VehicleID != nil {
			if _, err := tx.Vehicle.UpdateStatusIf(ctx, *booking.VehicleID, entity.VehicleStatusAvailable, entity.VehicleStatusBooked); err != nil {
				return apperr.Remote("release previous vehicle", err)
			}
		}

		if err := tx.Booking.AssignVehicle(ctx, bookingID, vehicleID); err != nil {
			return apperr.Remote("assign vehicle", err)
		}
		booking.VehicleID = &vehicleID
		return nil
	})
	if err != nil {
		s.log.Warn("Vehicle assignment failed",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("vehicle_id", vehicleID.String()),
		)
		return nil, err
	}

	s.log.Info("Vehicle assigned",
		zap.String("booking_id", bookingID.String()),
		zap.String("vehicle_id", vehicleID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *assignmentService) ReleaseDriver(ctx context.Context, driverID uuid.UUID) error {
	driver, err := s.repo.Driver.FindByID(ctx, driverID)
	if err != nil {
		return apperr.Remote("find driver", err)
	}
	if driver == nil {
		return apperr.NotFound("driver", driverID.String())
	}

	if err := s.repo.Driver.UpdateStatus(ctx, driverID, entity.DriverStatusStandby); err != nil {
		return apperr.Remote("release driver", err)
	}

	s.log.Info("Driver released", zap.String("driver_id", driverID.String()))
	return nil
}
