package candidates

import "time"

// CV is the candidate's current resume. Each candidate keeps exactly one
// CV row; re-uploading replaces the previous one.
type CV struct {
	ID            string
	UserID        string
	FileName      string
	StorageKey    string
	MimeType      string
	SizeBytes     int64
	ExtractedText string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
