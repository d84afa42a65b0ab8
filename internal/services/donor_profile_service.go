package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

// ProfileService is the only place donor-profile authorization and
// validation happen; the store underneath trusts its callers.
type ProfileService interface {
	Create(ctx context.Context, requester string, in CreateProfileInput) (*models.DonorProfile, error)
	Get(ctx context.Context, requester, donorProfileID string) (*models.DonorProfile, error)
	GetMine(ctx context.Context, requester string) (*models.DonorProfile, error)
	Edit(ctx context.Context, requester, donorProfileID string, patch store.DonorProfilePatch) (*models.DonorProfile, error)
	Delete(ctx context.Context, requester, donorProfileID string) error
	RecordDonation(ctx context.Context, requester, donorProfileID string, at *time.Time) (*models.DonorProfile, error)
	List(ctx context.Context) ([]models.DonorProfile, error)
	Search(ctx context.Context, bloodType, location string) ([]models.DonorProfile, error)
}

type CreateProfileInput struct {
	DonorProfileID   string
	UserID           string
	BloodType        models.BloodType
	Location         string
	Latitude         float64
	Longitude        float64
	LastDonationDate *time.Time
	DonationCount    *int
	MedicalNotes     *string
}

type DonorProfileService struct {
	profiles store.DonorProfileStore
	now      func() time.Time
}

func NewDonorProfileService(profiles store.DonorProfileStore) *DonorProfileService {
	return &DonorProfileService{
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *DonorProfileService) Create(ctx context.Context, requester string, in CreateProfileInput) (*models.DonorProfile, error) {
	const action = "create_donor_profile"

	if requester == "" {
		return nil, s.fail(ctx, action, requester, ErrUnauthorized)
	}
	if requester != in.UserID {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: cannot create profile for another user", ErrForbidden))
	}
	if in.DonorProfileID == "" || in.UserID == "" || in.BloodType == "" || strings.TrimSpace(in.Location) == "" {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: donorProfileId, userId, bloodType, and location are required", ErrInvalidArgument))
	}
	if !in.BloodType.Valid() {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: invalid blood type %q", ErrInvalidArgument, in.BloodType))
	}
	if in.DonationCount != nil && *in.DonationCount < 0 {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: donationCount must not be negative", ErrInvalidArgument))
	}

	// Existence checks and the insert are separate round trips; two racing
	// creates can both pass them. The primary key still rejects the loser.
	if err := s.ensureAbsent(ctx, in); err != nil {
		return nil, s.fail(ctx, action, requester, err)
	}

	profile := models.DonorProfile{
		ID:               in.DonorProfileID,
		UserID:           in.UserID,
		BloodType:        in.BloodType,
		LastDonationDate: s.now(),
		Location:         in.Location,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		MedicalNotes:     in.MedicalNotes,
	}
	if in.LastDonationDate != nil {
		profile.LastDonationDate = *in.LastDonationDate
	}
	if in.DonationCount != nil {
		profile.DonationCount = *in.DonationCount
	}

	if err := s.profiles.Create(ctx, &profile); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			err = fmt.Errorf("%w: donor profile %s", ErrAlreadyExists, in.DonorProfileID)
		} else {
			err = storageFailure(err)
		}
		return nil, s.fail(ctx, action, requester, err)
	}
	return &profile, nil
}

func (s *DonorProfileService) ensureAbsent(ctx context.Context, in CreateProfileInput) error {
	_, err := s.profiles.GetByID(ctx, in.DonorProfileID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: donor profile %s", ErrAlreadyExists, in.DonorProfileID)
	case !errors.Is(err, store.ErrNotFound):
		return storageFailure(err)
	}

	_, err = s.profiles.GetByUserID(ctx, in.UserID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: donor profile already exists for this user", ErrAlreadyExists)
	case !errors.Is(err, store.ErrNotFound):
		return storageFailure(err)
	}
	return nil
}

// Get returns any profile to any authenticated caller. Only mutations are
// owner-restricted.
func (s *DonorProfileService) Get(ctx context.Context, requester, donorProfileID string) (*models.DonorProfile, error) {
	const action = "get_donor_profile"

	if requester == "" {
		return nil, s.fail(ctx, action, requester, ErrUnauthorized)
	}
	profile, err := s.load(ctx, donorProfileID)
	if err != nil {
		return nil, s.fail(ctx, action, requester, err)
	}
	return profile, nil
}

func (s *DonorProfileService) GetMine(ctx context.Context, requester string) (*models.DonorProfile, error) {
	const action = "get_own_donor_profile"

	if requester == "" {
		return nil, s.fail(ctx, action, requester, ErrUnauthorized)
	}
	profile, err := s.profiles.GetByUserID(ctx, requester)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: donor profile not found", ErrNotFound)
		} else {
			err = storageFailure(err)
		}
		return nil, s.fail(ctx, action, requester, err)
	}
	return profile, nil
}

func (s *DonorProfileService) Edit(ctx context.Context, requester, donorProfileID string, patch store.DonorProfilePatch) (*models.DonorProfile, error) {
	const action = "edit_donor_profile"

	if _, err := s.loadOwned(ctx, requester, donorProfileID, "cannot edit another user's profile"); err != nil {
		return nil, s.fail(ctx, action, requester, err)
	}
	if patch.IsEmpty() {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: no editable fields supplied", ErrInvalidArgument))
	}
	if patch.Location != nil && strings.TrimSpace(*patch.Location) == "" {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: location must not be empty", ErrInvalidArgument))
	}
	if patch.DonationCount != nil && *patch.DonationCount < 0 {
		return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: donationCount must not be negative", ErrInvalidArgument))
	}

	updated, err := s.profiles.Edit(ctx, donorProfileID, patch)
	if err != nil {
		return nil, s.fail(ctx, action, requester, s.mapStoreErr(err))
	}
	return updated, nil
}

func (s *DonorProfileService) Delete(ctx context.Context, requester, donorProfileID string) error {
	const action = "delete_donor_profile"

	if _, err := s.loadOwned(ctx, requester, donorProfileID, "cannot delete another user's profile"); err != nil {
		return s.fail(ctx, action, requester, err)
	}
	if err := s.profiles.DeleteByID(ctx, donorProfileID); err != nil {
		return s.fail(ctx, action, requester, s.mapStoreErr(err))
	}
	return nil
}

// RecordDonation stamps the donation date (now when at is nil) and bumps the
// counter by one.
func (s *DonorProfileService) RecordDonation(ctx context.Context, requester, donorProfileID string, at *time.Time) (*models.DonorProfile, error) {
	const action = "record_donation"

	if _, err := s.loadOwned(ctx, requester, donorProfileID, "cannot record a donation on another user's profile"); err != nil {
		return nil, s.fail(ctx, action, requester, err)
	}

	donatedAt := s.now()
	if at != nil {
		if at.After(donatedAt) {
			return nil, s.fail(ctx, action, requester, fmt.Errorf("%w: donation date is in the future", ErrInvalidArgument))
		}
		donatedAt = *at
	}

	if _, err := s.profiles.UpdateLastDonationDate(ctx, donorProfileID, donatedAt); err != nil {
		return nil, s.fail(ctx, action, requester, s.mapStoreErr(err))
	}
	updated, err := s.profiles.IncrementDonationCount(ctx, donorProfileID)
	if err != nil {
		return nil, s.fail(ctx, action, requester, s.mapStoreErr(err))
	}
	return updated, nil
}

func (s *DonorProfileService) List(ctx context.Context) ([]models.DonorProfile, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list_donor_profiles", "", storageFailure(err))
	}
	return profiles, nil
}

func (s *DonorProfileService) Search(ctx context.Context, bloodType, location string) ([]models.DonorProfile, error) {
	const action = "search_donor_profiles"

	bt := models.BloodType(bloodType)
	if !bt.Valid() {
		return nil, s.fail(ctx, action, "", fmt.Errorf("%w: invalid blood type %q", ErrInvalidArgument, bloodType))
	}
	profiles, err := s.profiles.SearchByBloodTypeAndLocation(ctx, bt, location)
	if err != nil {
		return nil, s.fail(ctx, action, "", storageFailure(err))
	}
	return profiles, nil
}

func (s *DonorProfileService) load(ctx context.Context, donorProfileID string) (*models.DonorProfile, error) {
	profile, err := s.profiles.GetByID(ctx, donorProfileID)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	return profile, nil
}

// loadOwned runs the shared guard for mutations: authenticated, present,
// owned by the requester.
func (s *DonorProfileService) loadOwned(ctx context.Context, requester, donorProfileID, forbidden string) (*models.DonorProfile, error) {
	if requester == "" {
		return nil, ErrUnauthorized
	}
	profile, err := s.load(ctx, donorProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != requester {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, forbidden)
	}
	return profile, nil
}

func (s *DonorProfileService) mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: donor profile not found", ErrNotFound)
	}
	return storageFailure(err)
}

func (s *DonorProfileService) fail(ctx context.Context, action, requester string, err error) error {
	logFailure(ctx, action, requester, err)
	return err
}
