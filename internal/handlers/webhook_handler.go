package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

var svixHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

type WebhookHandler struct {
	verifier *svix.Webhook
	sync     services.UserSync
	metrics  metrics.Recorder
}

func NewWebhookHandler(signingSecret string, sync services.UserSync, recorder metrics.Recorder) (*WebhookHandler, error) {
	wh, err := svix.NewWebhook(signingSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{verifier: wh, sync: sync, metrics: recorder}, nil
}

// HandleClerk verifies the Svix signature over the raw body before decoding
// anything, then hands the event to user sync.
func (h *WebhookHandler) HandleClerk(c *fiber.Ctx) error {
	payload := c.Body()

	headers := http.Header{}
	for _, name := range svixHeaders {
		headers.Set(name, c.Get(name))
	}
	if err := h.verifier.Verify(payload, headers); err != nil {
		slog.Warn("webhook signature rejected", "svix_id", c.Get("svix-id"), "error", err)
		h.metrics.RecordWebhookEvent("unknown", metrics.OutcomeRejected)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid signature"})
	}

	var event dto.ClerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.metrics.RecordWebhookEvent("unknown", metrics.OutcomeRejected)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook payload"})
	}

	if err := h.sync.Dispatch(c.UserContext(), &event); err != nil {
		slog.Error("webhook processing failed", "event_type", event.Type, "user_id", event.Data.ID, "error", err)
		h.metrics.RecordWebhookEvent(event.Type, metrics.OutcomeError)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error processing webhook"})
	}

	slog.Info("webhook processed", "event_type", event.Type, "user_id", event.Data.ID)
	h.metrics.RecordWebhookEvent(event.Type, metrics.OutcomeSuccess)
	return c.JSON(fiber.Map{"success": true})
}
