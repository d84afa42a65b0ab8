// Package store holds the persistence ports used by the services and their
// gorm and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// UserPatch is a merge-patch over a User. Nil fields are left untouched.
type UserPatch struct {
	Email           *string
	FirstName       *string
	LastName        *string
	PhoneNumber     *string
	IsEmailVerified *bool
	IsPhoneVerified *bool
	Role            *models.UserRole
	Status          *models.UserStatus
	UpdatedAt       time.Time
}

// DonorProfilePatch is a merge-patch over the mutable DonorProfile fields.
type DonorProfilePatch struct {
	Location         *string
	Latitude         *float64
	Longitude        *float64
	MedicalNotes     *string
	LastDonationDate *time.Time
	DonationCount    *int
}

func (p DonorProfilePatch) IsEmpty() bool {
	return p.Location == nil && p.Latitude == nil && p.Longitude == nil &&
		p.MedicalNotes == nil && p.LastDonationDate == nil && p.DonationCount == nil
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	// FindByID returns soft-deleted users as well; ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
}

// DonorProfileStore performs no authorization or validation.
type DonorProfileStore interface {
	Create(ctx context.Context, profile *models.DonorProfile) error
	GetByID(ctx context.Context, id string) (*models.DonorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*models.DonorProfile, error)
	Edit(ctx context.Context, id string, patch DonorProfilePatch) (*models.DonorProfile, error)
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.DonorProfile, error)
	UpdateLastDonationDate(ctx context.Context, id string, date time.Time) (*models.DonorProfile, error)
	// IncrementDonationCount adds one at the storage layer, never as a
	// read-modify-write from the caller.
	IncrementDonationCount(ctx context.Context, id string) (*models.DonorProfile, error)
	// SearchByBloodTypeAndLocation matches the blood type exactly and the
	// location by case-sensitive substring.
	SearchByBloodTypeAndLocation(ctx context.Context, bloodType models.BloodType, location string) ([]models.DonorProfile, error)
	CountByBloodType(ctx context.Context) (map[models.BloodType]int64, error)
}
