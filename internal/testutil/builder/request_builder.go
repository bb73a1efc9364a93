//go:build unit || integration

package builder

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequestMap returns a valid create request body as a map so
// tests can drop or override individual fields.
func CreateBookingRequestMap(resourceID uuid.UUID) map[string]any {
	start := BaseTime.Add(24 * time.Hour)
	return map[string]any{
		"resource_id": resourceID.String(),
		"start_time":  start.Format(time.RFC3339),
		"end_time":    start.Add(time.Hour).Format(time.RFC3339),
		"purpose":     "weekly seminar",
		"category":    "class",
	}
}
