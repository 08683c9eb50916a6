package usecase

import (
	"rental-booking/internal/data/repository"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth          AuthService
	User          UserService
	Staff         StaffService
	Booking       BookingService
	Ledger        PaymentLedger
	Reconciler    StatusReconciler
	Assignment    AssignmentService
	DriverBalance DriverBalanceService
	Webhook       WebhookService
	Fleet         FleetService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	publisher EventPublisher,
	sessions cache.SessionCache,
	log *zap.Logger,
) *Service {
	ledger := NewPaymentLedger(repo, publisher, log)

	return &Service{
		Auth:          NewAuthService(repo, sessions, config, log),
		User:          NewUserService(repo.User, log),
		Staff:         NewStaffService(repo, log),
		Booking:       NewBookingService(repo, ledger, log),
		Ledger:        ledger,
		Reconciler:    NewStatusReconciler(repo, publisher, log),
		Assignment:    NewAssignmentService(repo, publisher, log),
		DriverBalance: NewDriverBalanceService(repo, publisher, log),
		Webhook:       NewWebhookService(repo, config, publisher, log),
		Fleet:         NewFleetService(repo, log),
	}
}
