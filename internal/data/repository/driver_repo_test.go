package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDriverRepository_AdjustSaldo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDriverRepository(mock, zap.NewNop())
	id := uuid.New()
	nominal := decimal.NewFromInt(-75000)

	t.Run("goes negative", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET saldo = saldo + $2::numeric")).
			WithArgs(id, nominal).
			WillReturnRows(mock.NewRows([]string{"before", "saldo"}).
				AddRow(decimal.NewFromInt(50000), decimal.NewFromInt(-25000)))

		before, after, found, err := repo.AdjustSaldo(context.Background(), id, nominal)
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, before.Equal(decimal.NewFromInt(50000)))
		assert.True(t, after.Equal(decimal.NewFromInt(-25000)))
	})

	t.Run("unknown driver", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SET saldo = saldo + $2::numeric")).
			WithArgs(id, nominal).
			WillReturnRows(mock.NewRows([]string{"before", "saldo"}))

		_, _, found, err := repo.AdjustSaldo(context.Background(), id, nominal)
		require.NoError(t, err)
		assert.False(t, found)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
