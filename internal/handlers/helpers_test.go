package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/config"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

const testJWTSecret = "handler-test-secret"

type testEnv struct {
	app      *fiber.App
	users    *store.MemoryUserStore
	profiles *store.MemoryDonorProfileStore
}

// newTestEnv wires the donor, me and admin routes over in-memory stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: testJWTSecret, AdminUserIDs: "user_boot"}
	users := store.NewMemoryUserStore()
	profiles := store.NewMemoryDonorProfileStore()

	sync := services.NewUserSyncService(users)
	roles := services.NewRoleQueryService(users)
	profileService := services.NewDonorProfileService(profiles)

	donor := NewDonorHandler(profileService, metrics.Nop{})
	me := NewMeHandler(sync, roles, profileService)
	admin := NewAdminHandler(profileService, services.NewDashboardService(users, profiles))

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/me", middleware.JWTProtected(cfg), me.Me)

	donors := api.Group("/donor-profiles", middleware.JWTProtected(cfg))
	donors.Post("/", donor.Create)
	donors.Get("/me", donor.GetMine)
	donors.Get("/:id", donor.Get)
	donors.Patch("/:id", donor.Edit)
	donors.Delete("/:id", donor.Delete)
	donors.Post("/:id/donations", donor.RecordDonation)

	adm := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(roles, cfg))
	adm.Get("/donor-profiles", admin.ListProfiles)
	adm.Get("/donor-profiles/search", admin.SearchProfiles)
	adm.Get("/dashboard", middleware.SuperAdminRequired(roles), admin.Dashboard)

	return &testEnv{app: app, users: users, profiles: profiles}
}

func (e *testEnv) seedUser(t *testing.T, id string, role models.UserRole) {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), &models.User{ID: id, Email: id + "@example.com", Role: role}))
}

func mintToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// do sends a request as sub (anonymous when empty) and decodes the JSON body.
func (e *testEnv) do(t *testing.T, method, path, sub string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sub != "" {
		req.Header.Set("Authorization", "Bearer "+mintToken(t, sub))
	}
	return decode(t, e.app, req)
}

func decode(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}
