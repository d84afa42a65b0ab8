package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

type DashboardService struct {
	users    store.UserStore
	profiles store.DonorProfileStore
}

func NewDashboardService(users store.UserStore, profiles store.DonorProfileStore) *DashboardService {
	return &DashboardService{users: users, profiles: profiles}
}

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	totalUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	byType, err := s.profiles.CountByBloodType(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	stats := &dto.DashboardStats{
		TotalUsers:        totalUsers,
		DonorsByBloodType: make(map[models.BloodType]int64, len(models.BloodTypes)),
	}
	for _, bt := range models.BloodTypes {
		stats.DonorsByBloodType[bt] = byType[bt]
		stats.TotalDonors += byType[bt]
	}
	return stats, nil
}

func (s *DashboardService) fail(ctx context.Context, err error) error {
	err = storageFailure(err)
	logFailure(ctx, "dashboard_stats", "", err)
	return err
}
