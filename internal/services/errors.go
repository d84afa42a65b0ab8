package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrUnauthorized      = errors.New("unauthorized: user must be logged in")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrStorageFailure    = errors.New("storage failure")
	ErrDuplicateIdentity = errors.New("user already exists for this identity")
)

func storageFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

// logFailure records a rejected or failed operation. Storage failures are
// logged at error level so they reach the system_logs sink; business
// rejections stay at warn.
func logFailure(ctx context.Context, action, userID string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrStorageFailure) {
		level = slog.LevelError
	}
	slog.Log(ctx, level, "operation failed", "action", action, "user_id", userID, "error", err.Error())
}
