package cache

import (
	"context"
	"testing"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopSessionCache_AlwaysMisses(t *testing.T) {
	c := NewNoopSessionCache()
	token := uuid.New()

	require.NoError(t, c.Set(context.Background(), &entity.Session{Token: token}))

	got, err := c.Get(context.Background(), token.String())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(context.Background(), token.String()))
}

func TestSessionKey_Namespaced(t *testing.T) {
	assert.NotEqual(t, sessionKey("a"), sessionKey("b"))
	assert.Contains(t, sessionKey("abc"), "abc")
}
