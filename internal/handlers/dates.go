package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/donor-registry/internal/services"
)

const dateOnly = "2006-01-02"

// parseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date (taken as
// midnight UTC). Nil and blank values mean the field was not supplied.
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be an RFC 3339 timestamp or a YYYY-MM-DD date", services.ErrInvalidArgument, field)
}
