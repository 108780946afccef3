package domain

import "time"

// Preference is the last query a chat browsed, restored on its next session.
type Preference struct {
	ChatID     int64
	Category   Category
	SearchTerm string
	UpdatedAt  time.Time
}
