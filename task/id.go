package task

import (
	"fmt"
	"time"

	"github.com/amonks/tasklist/internal/ids"
	"github.com/google/uuid"
)

// GenerateID creates a task ID of the form <unix-millis>_<suffix>. The
// suffix hashes a random UUID with the timestamp, so IDs stay unique across
// reloads and across processes sharing one store.
func GenerateID(now time.Time) string {
	suffix := ids.GenerateWithTimestamp(uuid.NewString(), now, ids.DefaultLength)
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suffix)
}
