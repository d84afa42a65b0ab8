package dto

import (
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
)

// CreateDonorProfileRequest is the body of POST /api/donor-profiles.
// Latitude and longitude are pointers so a legitimate 0 is distinguishable
// from a missing value. Dates arrive as strings: browser date inputs post
// YYYY-MM-DD, API clients post RFC 3339.
type CreateDonorProfileRequest struct {
	DonorProfileID   string   `json:"donorProfileId"`
	UserID           string   `json:"userId"`
	BloodType        string   `json:"bloodType"`
	Location         string   `json:"location"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	LastDonationDate *string  `json:"lastDonationDate"`
	DonationCount    *int     `json:"donationCount"`
	MedicalNotes     *string  `json:"medicalNotes"`
}

// EditDonorProfileRequest is the merge-patch body of PATCH /api/donor-profiles/:id.
type EditDonorProfileRequest struct {
	Location         *string  `json:"location"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	MedicalNotes     *string  `json:"medicalNotes"`
	LastDonationDate *string  `json:"lastDonationDate"`
	DonationCount    *int     `json:"donationCount"`
}

type RecordDonationRequest struct {
	DonatedAt *string `json:"donatedAt"`
}

type MeResponse struct {
	User         *models.User         `json:"user"`
	Role         models.UserRole      `json:"role"`
	IsAdmin      bool                 `json:"is_admin"`
	DonorProfile *models.DonorProfile `json:"donor_profile,omitempty"`
}

type DashboardStats struct {
	TotalUsers        int64                      `json:"total_users"`
	TotalDonors       int64                      `json:"total_donors"`
	DonorsByBloodType map[models.BloodType]int64 `json:"donors_by_blood_type"`
}
