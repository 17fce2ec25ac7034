package types

import "time"

// WAHA session states.
const (
	WahaStatusActive   = "active"
	WahaStatusInactive = "inactive"
)

// ValidWahaStatus reports whether status is a defined session state.
func ValidWahaStatus(status string) bool {
	return status == WahaStatusActive || status == WahaStatusInactive
}

// WahaSession is a WhatsApp gateway session owned by a user. Sessions
// persist even though the gateway itself is not available yet.
type WahaSession struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
