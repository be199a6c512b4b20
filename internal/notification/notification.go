package notification

import (
	"time"
)

// Feed retention: only the newest entries are kept.
const Keep = 50

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
