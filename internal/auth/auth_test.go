package auth

import (
	"testing"
	"time"

	"github.com/kritika0598/AiFace/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: uuid.New(), Email: "face@example.com", Name: "Face Reader"}

	token, err := SignToken(user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := verifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims["id"])
	assert.Equal(t, user.Email, claims["email"])
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := verifyToken("not.a.token")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: uuid.New(), Email: "face@example.com"}
	token, err := SignToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = verifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	user := &models.User{ID: uuid.New()}
	token, err := SignToken(user, time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = verifyToken(token)
	assert.Error(t, err)
}
