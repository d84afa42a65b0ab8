package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

// RoleQuery answers privilege questions for gating admin views. The boolean
// helpers fail soft: an unknown user or a failed lookup both mean "no role".
type RoleQuery interface {
	LookupRole(ctx context.Context, id string) (models.UserRole, error)
	GetRole(ctx context.Context, id string) (models.UserRole, bool)
	IsAdmin(ctx context.Context, id string) bool
	IsSuperAdmin(ctx context.Context, id string) bool
	GetUserByIdentity(ctx context.Context, id string) *models.User
}

type RoleQueryService struct {
	users store.UserStore
}

func NewRoleQueryService(users store.UserStore) *RoleQueryService {
	return &RoleQueryService{users: users}
}

// LookupRole returns ErrNotFound for unknown or soft-deleted users and
// ErrStorageFailure when the lookup itself failed.
func (s *RoleQueryService) LookupRole(ctx context.Context, id string) (models.UserRole, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty identity", ErrNotFound)
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return "", storageFailure(err)
	}
	if user.IsDeleted() {
		return "", fmt.Errorf("%w: user %s is deleted", ErrNotFound, id)
	}
	return user.Role, nil
}

func (s *RoleQueryService) GetRole(ctx context.Context, id string) (models.UserRole, bool) {
	role, err := s.LookupRole(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStorageFailure) {
			slog.ErrorContext(ctx, "role lookup failed", "action", "get_role", "user_id", id, "error", err.Error())
		} else {
			slog.DebugContext(ctx, "no role for identity", "user_id", id)
		}
		return "", false
	}
	return role, true
}

func (s *RoleQueryService) IsAdmin(ctx context.Context, id string) bool {
	role, ok := s.GetRole(ctx, id)
	return ok && (role == models.RoleAdmin || role == models.RoleSuperAdmin)
}

func (s *RoleQueryService) IsSuperAdmin(ctx context.Context, id string) bool {
	role, ok := s.GetRole(ctx, id)
	return ok && role == models.RoleSuperAdmin
}

// GetUserByIdentity returns the synced user, soft-deleted ones included, or
// nil on any failure.
func (s *RoleQueryService) GetUserByIdentity(ctx context.Context, id string) *models.User {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.ErrorContext(ctx, "user lookup failed", "action", "get_user", "user_id", id, "error", err.Error())
		}
		return nil
	}
	return user
}
