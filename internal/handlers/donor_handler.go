package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/identity"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
	"github.com/gofiber/fiber/v2"
)

type DonorHandler struct {
	profiles services.ProfileService
	metrics  metrics.Recorder
}

func NewDonorHandler(profiles services.ProfileService, recorder metrics.Recorder) *DonorHandler {
	return &DonorHandler{profiles: profiles, metrics: recorder}
}

func (h *DonorHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDonorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return h.reject(c, "create", "Invalid request body")
	}
	if req.BloodType != "" && !models.BloodType(req.BloodType).Valid() {
		return h.reject(c, "create", "Invalid blood type. Must be one of: "+validBloodTypes())
	}
	if req.Latitude == nil || req.Longitude == nil {
		return h.reject(c, "create", "latitude and longitude are required")
	}
	lastDonation, err := parseDate("lastDonationDate", req.LastDonationDate)
	if err != nil {
		return h.fail(c, "create", err)
	}

	profile, err := h.profiles.Create(c.UserContext(), identity.UserID(c), services.CreateProfileInput{
		DonorProfileID:   req.DonorProfileID,
		UserID:           req.UserID,
		BloodType:        models.BloodType(req.BloodType),
		Location:         req.Location,
		Latitude:         *req.Latitude,
		Longitude:        *req.Longitude,
		LastDonationDate: lastDonation,
		DonationCount:    req.DonationCount,
		MedicalNotes:     req.MedicalNotes,
	})
	if err != nil {
		return h.fail(c, "create", err)
	}

	h.metrics.RecordProfileOperation("create", metrics.OutcomeSuccess)
	return c.Status(fiber.StatusCreated).JSON(dto.Result{
		Success: true,
		Data:    profile,
		Message: "Donor profile created successfully",
	})
}

func (h *DonorHandler) Get(c *fiber.Ctx) error {
	profile, err := h.profiles.Get(c.UserContext(), identity.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, profile)
}

func (h *DonorHandler) GetMine(c *fiber.Ctx) error {
	profile, err := h.profiles.GetMine(c.UserContext(), identity.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, fiber.StatusOK, profile)
}

func (h *DonorHandler) Edit(c *fiber.Ctx) error {
	var req dto.EditDonorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return h.reject(c, "edit", "Invalid request body")
	}
	lastDonation, err := parseDate("lastDonationDate", req.LastDonationDate)
	if err != nil {
		return h.fail(c, "edit", err)
	}
	patch := store.DonorProfilePatch{
		Location:         req.Location,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		MedicalNotes:     req.MedicalNotes,
		LastDonationDate: lastDonation,
		DonationCount:    req.DonationCount,
	}

	profile, err := h.profiles.Edit(c.UserContext(), identity.UserID(c), c.Params("id"), patch)
	if err != nil {
		return h.fail(c, "edit", err)
	}
	h.metrics.RecordProfileOperation("edit", metrics.OutcomeSuccess)
	return writeData(c, fiber.StatusOK, profile)
}

func (h *DonorHandler) Delete(c *fiber.Ctx) error {
	if err := h.profiles.Delete(c.UserContext(), identity.UserID(c), c.Params("id")); err != nil {
		return h.fail(c, "delete", err)
	}
	h.metrics.RecordProfileOperation("delete", metrics.OutcomeSuccess)
	return c.JSON(dto.Result{Success: true, Message: "Donor profile deleted"})
}

// RecordDonation accepts an empty body, in which case the donation is dated now.
func (h *DonorHandler) RecordDonation(c *fiber.Ctx) error {
	var req dto.RecordDonationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return h.reject(c, "record_donation", "Invalid request body")
		}
	}

	donatedAt, err := parseDate("donatedAt", req.DonatedAt)
	if err != nil {
		return h.fail(c, "record_donation", err)
	}

	profile, err := h.profiles.RecordDonation(c.UserContext(), identity.UserID(c), c.Params("id"), donatedAt)
	if err != nil {
		return h.fail(c, "record_donation", err)
	}
	h.metrics.RecordProfileOperation("record_donation", metrics.OutcomeSuccess)
	return writeData(c, fiber.StatusOK, profile)
}

func (h *DonorHandler) reject(c *fiber.Ctx, action, msg string) error {
	h.metrics.RecordProfileOperation(action, metrics.OutcomeRejected)
	return badRequest(c, msg)
}

func (h *DonorHandler) fail(c *fiber.Ctx, action string, err error) error {
	h.metrics.RecordProfileOperation(action, outcomeFor(statusFor(err)))
	return writeError(c, err)
}

func validBloodTypes() string {
	names := make([]string, len(models.BloodTypes))
	for i, bt := range models.BloodTypes {
		names[i] = string(bt)
	}
	return strings.Join(names, ", ")
}
