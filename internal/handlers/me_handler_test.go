package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
)

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u-1", models.RoleDonor)

	status, body := env.do(t, http.MethodGet, "/api/me", "u-1", nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "DONOR", data["role"])
	assert.Equal(t, false, data["is_admin"])
	assert.Nil(t, data["donor_profile"])

	user, err := env.users.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.False(t, user.LastLoginAt.IsZero())

	status, _ = env.do(t, http.MethodPost, "/api/donor-profiles", "u-1", createBody("dp-1", "u-1"))
	require.Equal(t, http.StatusCreated, status)

	status, body = env.do(t, http.MethodGet, "/api/me", "u-1", nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["data"].(map[string]interface{})["donor_profile"].(map[string]interface{})
	assert.Equal(t, "dp-1", profile["id"])
}

func TestMe_NotSynced(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/me", "u-unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])

	status, _ = env.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
