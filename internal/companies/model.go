package companies

import "time"

// Company groups job offers under a single employer account.
type Company struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
