package position

import "time"

// Position is a node in the organizational hierarchy. The boss-position
// relation forms a forest; the system relies on it being acyclic.
type Position struct {
	ID             string
	Name           string
	DepartmentID   *string
	BossPositionID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
