package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"gorm.io/gorm"
)

type GormDonorProfileStore struct {
	db *gorm.DB
}

func NewGormDonorProfileStore(db *gorm.DB) *GormDonorProfileStore {
	return &GormDonorProfileStore{db: db}
}

func (s *GormDonorProfileStore) Create(ctx context.Context, profile *models.DonorProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create donor profile: %w", err)
	}
	return nil
}

func (s *GormDonorProfileStore) GetByID(ctx context.Context, id string) (*models.DonorProfile, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormDonorProfileStore) GetByUserID(ctx context.Context, userID string) (*models.DonorProfile, error) {
	return s.first(ctx, "user_id = ?", userID)
}

func (s *GormDonorProfileStore) first(ctx context.Context, query string, arg string) (*models.DonorProfile, error) {
	var profile models.DonorProfile
	if err := s.db.WithContext(ctx).Where(query, arg).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get donor profile: %w", err)
	}
	return &profile, nil
}

func (s *GormDonorProfileStore) Edit(ctx context.Context, id string, patch DonorProfilePatch) (*models.DonorProfile, error) {
	updates := map[string]interface{}{}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.Latitude != nil {
		updates["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		updates["longitude"] = *patch.Longitude
	}
	if patch.MedicalNotes != nil {
		updates["medical_notes"] = *patch.MedicalNotes
	}
	if patch.LastDonationDate != nil {
		updates["last_donation_date"] = *patch.LastDonationDate
	}
	if patch.DonationCount != nil {
		updates["donation_count"] = *patch.DonationCount
	}
	return s.update(ctx, id, updates)
}

func (s *GormDonorProfileStore) DeleteByID(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DonorProfile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete donor profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every profile. There is no pagination.
func (s *GormDonorProfileStore) ListAll(ctx context.Context) ([]models.DonorProfile, error) {
	var profiles []models.DonorProfile
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list donor profiles: %w", err)
	}
	return profiles, nil
}

func (s *GormDonorProfileStore) UpdateLastDonationDate(ctx context.Context, id string, date time.Time) (*models.DonorProfile, error) {
	return s.update(ctx, id, map[string]interface{}{"last_donation_date": date})
}

func (s *GormDonorProfileStore) IncrementDonationCount(ctx context.Context, id string) (*models.DonorProfile, error) {
	return s.update(ctx, id, map[string]interface{}{
		"donation_count": gorm.Expr("donation_count + ?", 1),
	})
}

func (s *GormDonorProfileStore) SearchByBloodTypeAndLocation(ctx context.Context, bloodType models.BloodType, location string) ([]models.DonorProfile, error) {
	var profiles []models.DonorProfile
	err := s.db.WithContext(ctx).
		Where("blood_type = ? AND location LIKE ?", bloodType, "%"+escapeLike(location)+"%").
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search donor profiles: %w", err)
	}
	return profiles, nil
}

func (s *GormDonorProfileStore) CountByBloodType(ctx context.Context) (map[models.BloodType]int64, error) {
	var rows []struct {
		BloodType models.BloodType
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&models.DonorProfile{}).
		Select("blood_type, count(*) AS total").
		Group("blood_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count donor profiles: %w", err)
	}

	counts := make(map[models.BloodType]int64, len(rows))
	for _, r := range rows {
		counts[r.BloodType] = r.Total
	}
	return counts, nil
}

func (s *GormDonorProfileStore) update(ctx context.Context, id string, updates map[string]interface{}) (*models.DonorProfile, error) {
	updates["updated_at"] = time.Now().UTC()

	result := s.db.WithContext(ctx).Model(&models.DonorProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update donor profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// escapeLike makes LIKE treat the user's input literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
