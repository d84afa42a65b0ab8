package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/identity"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

// recordingTransport keeps every event the sentry client sends.
type recordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *recordingTransport) Flush(time.Duration) bool              { return true }
func (t *recordingTransport) FlushWithContext(context.Context) bool { return true }
func (t *recordingTransport) Configure(sentry.ClientOptions)        {}
func (t *recordingTransport) Close()                                {}

func (t *recordingTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.events)
}

type unreachableProfileStore struct {
	*store.MemoryDonorProfileStore
}

func (unreachableProfileStore) GetByID(context.Context, string) (*models.DonorProfile, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func newSentryApp(t *testing.T, profiles store.DonorProfileStore) (*fiber.App, *recordingTransport) {
	t.Helper()
	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:       "https://public@sentry.example.com/1",
		Transport: transport,
	})
	require.NoError(t, err)

	h := NewDonorHandler(services.NewDonorProfileService(profiles), metrics.Nop{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		sentryfiber.SetHubOnContext(c, sentry.NewHub(client, sentry.NewScope()))
		c.Locals(identity.LocalsKey, &jwt.Token{Claims: jwt.MapClaims{"sub": "u-1"}})
		return c.Next()
	})
	app.Get("/donor-profiles/:id", h.Get)
	return app, transport
}

func TestWriteError_ReportsServerErrors(t *testing.T) {
	app, transport := newSentryApp(t, unreachableProfileStore{store.NewMemoryDonorProfileStore()})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/donor-profiles/dp-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, 1, transport.count())
	assert.Equal(t, "/donor-profiles/dp-1", transport.events[0].Tags["path"])
}

func TestWriteError_ClientErrorsNotReported(t *testing.T) {
	app, transport := newSentryApp(t, store.NewMemoryDonorProfileStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/donor-profiles/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, transport.count())
}
