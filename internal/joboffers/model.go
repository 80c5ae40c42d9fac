package joboffers

import "time"

// JobOffer is an open position candidates can apply to. Skills lists the
// required skills used to score incoming CVs.
type JobOffer struct {
	ID          string
	CompanyID   string
	RecruiterID string
	Title       string
	Description string
	Skills      []string
	IsActive    bool
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptsApplications reports whether the offer is open at the given instant.
func (o JobOffer) AcceptsApplications(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.Deadline != nil && now.After(*o.Deadline) {
		return false
	}
	return true
}
