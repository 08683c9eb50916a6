package usecase

import (
	"context"
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

type DriverBalanceService interface {
	// Adjust applies a signed nominal to the driver's saldo and writes the
	// matching histori_transaksi row. actorID is the operator doing it.
	Adjust(ctx context.Context, driverID uuid.UUID, actorID *uuid.UUID, req *request.AdjustBalanceRequest) (*response.TransactionHistoryResponse, error)
	History(ctx context.Context, driverID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionHistoryResponse], error)
}

type driverBalanceService struct {
	repo      *repository.Repository
	publisher EventPublisher
	log       *zap.Logger
}

func NewDriverBalanceService(repo *repository.Repository, publisher EventPublisher, log *zap.Logger) DriverBalanceService {
	if publisher == nil {
		publisher = NewNopPublisher()
	}
	return &driverBalanceService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "driver_balance")),
	}
}

func (s *driverBalanceService) Adjust(ctx context.Context, driverID uuid.UUID, actorID *uuid.UUID, req *request.AdjustBalanceRequest) (*response.TransactionHistoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Adjust balance validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("", utils.FormatValidationErrors(errs))
	}
	if req.Nominal.IsZero() {
		return nil, apperr.InvalidAmount("nominal")
	}

	kind := entity.TransactionKind(req.JenisTransaksi)
	if kind == entity.TransactionKindTopUp && req.Nominal.IsNegative() {
		return nil, apperr.InvalidAmount("nominal")
	}

	var history *entity.TransactionHistory
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		before, after, found, err := tx.Driver.AdjustSaldo(ctx, driverID, req.Nominal)
		if err != nil {
			return apperr.Remote("adjust saldo", err)
		}
		if !found {
			return apperr.NotFound("driver", driverID.String())
		}

		history = &entity.TransactionHistory{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			DriverID:       &driverID,
			UserID:         actorID,
			Nominal:        req.Nominal,
			SaldoAwal:      before,
			SaldoAkhir:     after,
			Keterangan:     req.Keterangan,
			JenisTransaksi: kind,
			Status:         entity.TransactionStatusCompleted,
		}
		if err := tx.TransactionHistory.Create(ctx, history); err != nil {
			return apperr.Remote("insert transaction history", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Driver balance adjustment failed", zap.Error(err), zap.String("driver_id", driverID.String()))
		return nil, err
	}

	if history.SaldoAkhir.IsNegative() {
		s.log.Warn("Driver saldo is negative",
			zap.String("driver_id", driverID.String()),
			zap.String("saldo", utils.FormatRupiah(history.SaldoAkhir)),
		)
	}

	s.log.Info("Driver saldo adjusted",
		zap.String("driver_id", driverID.String()),
		zap.String("nominal", req.Nominal.String()),
		zap.String("saldo_akhir", history.SaldoAkhir.String()),
	)
	publishEvent(ctx, s.publisher, s.log, EventDriverBalanceChanged, DriverBalanceChanged{
		DriverID:   driverID.String(),
		Nominal:    history.Nominal,
		SaldoAwal:  history.SaldoAwal,
		SaldoAkhir: history.SaldoAkhir,
		At:         history.CreatedAt,
	})

	resp := response.TransactionHistoryToResponse(history)
	return &resp, nil
}

func (s *driverBalanceService) History(ctx context.Context, driverID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TransactionHistoryResponse], error) {
	driver, err := s.repo.Driver.FindByID(ctx, driverID)
	if err != nil {
		return nil, apperr.Remote("find driver", err)
	}
	if driver == nil {
		return nil, apperr.NotFound("driver", driverID.String())
	}

	rows, err := s.repo.TransactionHistory.FindByDriverID(ctx, driverID, req.Limit(), req.Offset())
	if err != nil {
		return nil, apperr.Remote("list transaction history", err)
	}

	total, err := s.repo.TransactionHistory.CountByDriverID(ctx, driverID)
	if err != nil {
		return nil, apperr.Remote("count transaction history", err)
	}

	data := make([]response.TransactionHistoryResponse, 0, len(rows))
	for _, h := range rows {
		data = append(data, response.TransactionHistoryToResponse(h))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}
