package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
)

// MemoryUserStore is a UserStore backed by a map, for tests and local runs.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; ok {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.Role == "" {
		user.Role = models.RoleUnassigned
	}
	if user.Status == "" {
		user.Status = models.StatusPending
	}
	s.users[user.ID] = cloneUser(*user)
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user = cloneUser(user)
	return &user, nil
}

func (s *MemoryUserStore) Update(_ context.Context, id string, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		phone := *patch.PhoneNumber
		user.PhoneNumber = &phone
	}
	if patch.IsEmailVerified != nil {
		user.IsEmailVerified = *patch.IsEmailVerified
	}
	if patch.IsPhoneVerified != nil {
		user.IsPhoneVerified = *patch.IsPhoneVerified
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	user.UpdatedAt = patch.UpdatedAt
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = time.Now().UTC()
	}
	s.users[id] = user
	out := cloneUser(user)
	return &out, nil
}

func (s *MemoryUserStore) SoftDelete(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.DeletedAt = &at
	user.Status = models.StatusDeleted
	user.UpdatedAt = at
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.LastLoginAt = at
	s.users[id] = user
	return nil
}

func (s *MemoryUserStore) CountActive(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, u := range s.users {
		if u.DeletedAt == nil {
			total++
		}
	}
	return total, nil
}

// MemoryDonorProfileStore is a DonorProfileStore backed by a map. All
// mutations, the increment included, happen under one lock.
type MemoryDonorProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]models.DonorProfile
}

func NewMemoryDonorProfileStore() *MemoryDonorProfileStore {
	return &MemoryDonorProfileStore{profiles: make(map[string]models.DonorProfile)}
}

func (s *MemoryDonorProfileStore) Create(_ context.Context, profile *models.DonorProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; ok {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
	s.profiles[profile.ID] = cloneProfile(*profile)
	return nil
}

func (s *MemoryDonorProfileStore) GetByID(_ context.Context, id string) (*models.DonorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = cloneProfile(p)
	return &p, nil
}

func (s *MemoryDonorProfileStore) GetByUserID(_ context.Context, userID string) (*models.DonorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.sortedLocked() {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryDonorProfileStore) Edit(_ context.Context, id string, patch DonorProfilePatch) (*models.DonorProfile, error) {
	return s.mutate(id, func(p *models.DonorProfile) {
		if patch.Location != nil {
			p.Location = *patch.Location
		}
		if patch.Latitude != nil {
			p.Latitude = *patch.Latitude
		}
		if patch.Longitude != nil {
			p.Longitude = *patch.Longitude
		}
		if patch.MedicalNotes != nil {
			notes := *patch.MedicalNotes
			p.MedicalNotes = &notes
		}
		if patch.LastDonationDate != nil {
			p.LastDonationDate = *patch.LastDonationDate
		}
		if patch.DonationCount != nil {
			p.DonationCount = *patch.DonationCount
		}
	})
}

func (s *MemoryDonorProfileStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *MemoryDonorProfileStore) ListAll(_ context.Context) ([]models.DonorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

func (s *MemoryDonorProfileStore) UpdateLastDonationDate(_ context.Context, id string, date time.Time) (*models.DonorProfile, error) {
	return s.mutate(id, func(p *models.DonorProfile) {
		p.LastDonationDate = date
	})
}

func (s *MemoryDonorProfileStore) IncrementDonationCount(_ context.Context, id string) (*models.DonorProfile, error) {
	return s.mutate(id, func(p *models.DonorProfile) {
		p.DonationCount++
	})
}

func (s *MemoryDonorProfileStore) SearchByBloodTypeAndLocation(_ context.Context, bloodType models.BloodType, location string) ([]models.DonorProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.DonorProfile, 0)
	for _, p := range s.sortedLocked() {
		if p.BloodType == bloodType && strings.Contains(p.Location, location) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *MemoryDonorProfileStore) CountByBloodType(_ context.Context) (map[models.BloodType]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[models.BloodType]int64)
	for _, p := range s.profiles {
		counts[p.BloodType]++
	}
	return counts, nil
}

func (s *MemoryDonorProfileStore) mutate(id string, apply func(p *models.DonorProfile)) (*models.DonorProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	apply(&p)
	p.UpdatedAt = time.Now().UTC()
	s.profiles[id] = p
	out := cloneProfile(p)
	return &out, nil
}

// sortedLocked returns copies ordered by creation time. Callers hold mu.
func (s *MemoryDonorProfileStore) sortedLocked() []models.DonorProfile {
	out := make([]models.DonorProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func cloneUser(u models.User) models.User {
	if u.PhoneNumber != nil {
		phone := *u.PhoneNumber
		u.PhoneNumber = &phone
	}
	if u.DeletedAt != nil {
		at := *u.DeletedAt
		u.DeletedAt = &at
	}
	return u
}

func cloneProfile(p models.DonorProfile) models.DonorProfile {
	if p.MedicalNotes != nil {
		notes := *p.MedicalNotes
		p.MedicalNotes = &notes
	}
	return p
}
