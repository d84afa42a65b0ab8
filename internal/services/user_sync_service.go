package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/dto"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/models"
	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/store"
)

// UserSync mirrors identity-provider user state into the local users table.
type UserSync interface {
	Dispatch(ctx context.Context, event *dto.ClerkEvent) error
	OnUserCreated(ctx context.Context, data *dto.ClerkUserData) (*models.User, error)
	OnUserUpdated(ctx context.Context, data *dto.ClerkUserData) (*models.User, error)
	OnUserDeleted(ctx context.Context, id string) error
	TouchLastLogin(ctx context.Context, id string) error
}

type UserSyncService struct {
	users store.UserStore
	now   func() time.Time
}

func NewUserSyncService(users store.UserStore) *UserSyncService {
	return &UserSyncService{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Dispatch routes a verified webhook event. A duplicate user.created is
// logged and swallowed so the provider does not keep redelivering it.
func (s *UserSyncService) Dispatch(ctx context.Context, event *dto.ClerkEvent) error {
	switch event.Type {
	case dto.EventUserCreated:
		_, err := s.OnUserCreated(ctx, &event.Data)
		if errors.Is(err, ErrDuplicateIdentity) {
			slog.WarnContext(ctx, "user already synced, skipping create", "user_id", event.Data.ID, "event_type", event.Type)
			return nil
		}
		return err
	case dto.EventUserUpdated:
		_, err := s.OnUserUpdated(ctx, &event.Data)
		return err
	case dto.EventUserDeleted:
		return s.OnUserDeleted(ctx, event.Data.ID)
	default:
		slog.InfoContext(ctx, "unhandled webhook event type", "event_type", event.Type)
		return nil
	}
}

func (s *UserSyncService) OnUserCreated(ctx context.Context, data *dto.ClerkUserData) (*models.User, error) {
	if data.ID == "" {
		err := fmt.Errorf("%w: user id is required", ErrInvalidArgument)
		logFailure(ctx, "sync_user_created", "", err)
		return nil, err
	}

	now := s.now()
	user := models.User{
		ID:          data.ID,
		Email:       firstEmail(data),
		FirstName:   stringOrEmpty(data.FirstName),
		LastName:    stringOrEmpty(data.LastName),
		LastLoginAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
		// Provider-assigned roles are not honoured; admins come from ADMIN_USER_IDS.
		Role:   models.RoleUnassigned,
		Status: models.StatusPending,
	}
	if len(data.EmailAddresses) > 0 {
		user.IsEmailVerified = data.EmailAddresses[0].Verification.IsVerified()
	}
	if len(data.PhoneNumbers) > 0 {
		phone := data.PhoneNumbers[0].PhoneNumber
		user.PhoneNumber = &phone
		user.IsPhoneVerified = data.PhoneNumbers[0].Verification.IsVerified()
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			err = fmt.Errorf("%w: %s", ErrDuplicateIdentity, data.ID)
		} else {
			err = storageFailure(err)
		}
		logFailure(ctx, "sync_user_created", data.ID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "user synced", "action", "sync_user_created", "user_id", user.ID)
	return &user, nil
}

// OnUserUpdated applies a merge-patch: fields the payload does not carry are
// left untouched. Role is reset to UNASSIGNED on every update.
func (s *UserSyncService) OnUserUpdated(ctx context.Context, data *dto.ClerkUserData) (*models.User, error) {
	if data.ID == "" {
		err := fmt.Errorf("%w: user id is required", ErrInvalidArgument)
		logFailure(ctx, "sync_user_updated", "", err)
		return nil, err
	}

	role := models.RoleUnassigned
	patch := store.UserPatch{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Role:      &role,
		UpdatedAt: s.now(),
	}
	if len(data.EmailAddresses) > 0 {
		email := data.EmailAddresses[0].EmailAddress
		verified := data.EmailAddresses[0].Verification.IsVerified()
		patch.Email = &email
		patch.IsEmailVerified = &verified
	}
	if len(data.PhoneNumbers) > 0 {
		phone := data.PhoneNumbers[0].PhoneNumber
		verified := data.PhoneNumbers[0].Verification.IsVerified()
		patch.PhoneNumber = &phone
		patch.IsPhoneVerified = &verified
	}

	user, err := s.users.Update(ctx, data.ID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: user %s", ErrNotFound, data.ID)
		} else {
			err = storageFailure(err)
		}
		logFailure(ctx, "sync_user_updated", data.ID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "user synced", "action", "sync_user_updated", "user_id", user.ID)
	return user, nil
}

// OnUserDeleted soft-deletes the user. Donor profiles are left in place.
func (s *UserSyncService) OnUserDeleted(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	if err := s.users.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: user %s", ErrNotFound, id)
		} else {
			err = storageFailure(err)
		}
		logFailure(ctx, "sync_user_deleted", id, err)
		return err
	}

	slog.InfoContext(ctx, "user soft deleted", "action", "sync_user_deleted", "user_id", id)
	return nil
}

// TouchLastLogin stamps the login time. Callers treat failure as non-fatal.
func (s *UserSyncService) TouchLastLogin(ctx context.Context, id string) error {
	if err := s.users.TouchLastLogin(ctx, id, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = fmt.Errorf("%w: user %s", ErrNotFound, id)
		} else {
			err = storageFailure(err)
		}
		logFailure(ctx, "touch_last_login", id, err)
		return err
	}
	return nil
}

func firstEmail(data *dto.ClerkUserData) string {
	if len(data.EmailAddresses) == 0 {
		return ""
	}
	return data.EmailAddresses[0].EmailAddress
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
