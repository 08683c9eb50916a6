package usecase

import (
	"context"
	"testing"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/dto/request"
	"rental-booking/pkg/apperr"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func TestProvisionStaff_CreateThenUpdate(t *testing.T) {
	store := newMemStore()
	svc := NewStaffService(store.repository(), zap.NewNop())
	id := uuid.NewString()

	resp, err := svc.Provision(context.Background(), &request.StaffRequest{
		ID:         &id,
		FullName:   "Dewi Lestari",
		Email:      "Dewi@Rental.co.id",
		Password:   "rahasia123",
		Department: strPtr("Operasional"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	assert.Equal(t, entity.RoleStaff, resp.Role)
	assert.Equal(t, "dewi@rental.co.id", resp.Email)

	hash := store.users[uuid.MustParse(id)].PasswordHash
	assert.True(t, utils.CheckPassword(hash, "rahasia123"))

	token := uuid.New()
	store.sessions[token] = &entity.Session{
		UserID:    uuid.MustParse(id),
		Token:     token,
		Role:      entity.RoleStaff,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	// replay tanpa password: data diperbarui, password tetap
	resp, err = svc.Provision(context.Background(), &request.StaffRequest{
		ID:       &id,
		FullName: "Dewi Lestari",
		Email:    "dewi@rental.co.id",
		Role:     "admin",
		Position: strPtr("Supervisor"),
		IsUpdate: true,
	})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.Equal(t, "Supervisor", *resp.Position)
	assert.Equal(t, hash, store.users[uuid.MustParse(id)].PasswordHash)
	assert.Len(t, store.users, 1)
	assert.Len(t, store.staff, 1)

	// role berubah, sesi lama dicabut
	assert.NotNil(t, store.sessions[token].RevokedAt)
}

func TestProvisionStaff_Rejections(t *testing.T) {
	store := newMemStore()
	svc := NewStaffService(store.repository(), zap.NewNop())

	_, err := svc.Provision(context.Background(), &request.StaffRequest{
		FullName: "Andi",
		Email:    "andi@rental.co.id",
		Password: "rahasia123",
	})
	require.NoError(t, err)

	t.Run("email taken by another account", func(t *testing.T) {
		_, err := svc.Provision(context.Background(), &request.StaffRequest{
			FullName: "Andi Kedua",
			Email:    "ANDI@rental.co.id",
			Password: "rahasia123",
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("update of unknown id", func(t *testing.T) {
		id := uuid.NewString()
		_, err := svc.Provision(context.Background(), &request.StaffRequest{
			ID:       &id,
			FullName: "Rina",
			Email:    "rina@rental.co.id",
			IsUpdate: true,
		})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("new account without password", func(t *testing.T) {
		_, err := svc.Provision(context.Background(), &request.StaffRequest{
			FullName: "Rina",
			Email:    "rina@rental.co.id",
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("customer role is not provisionable", func(t *testing.T) {
		_, err := svc.Provision(context.Background(), &request.StaffRequest{
			FullName: "Rina",
			Email:    "rina@rental.co.id",
			Password: "rahasia123",
			Role:     "customer",
		})
		assert.True(t, apperr.IsValidation(err))
	})

	assert.Len(t, store.users, 1)
}
