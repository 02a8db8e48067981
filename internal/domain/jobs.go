package domain

// Application statuses
const (
	StatusPending      = "pending"
	StatusInterviewing = "interviewing"
	StatusOffered      = "offered"
	StatusAccepted     = "accepted"
	StatusRejected     = "rejected"
	StatusWithdrawn    = "withdrawn"
)

// JobListing Model
type JobListing struct {
	Title      string `json:"title"`      // Job title
	Company    string `json:"company"`    // Hiring company
	Applicants int    `json:"applicants"` // Incremented once per successful application, never decremented
}

// Application Model
type Application struct {
	ID           string `json:"id"`             // Random UUID
	JobListingID string `json:"job_listing_id"` // Catalog key of the listing applied to
	JobTitle     string `json:"job_title"`      // Copied from the listing at application time
	Company      string `json:"company"`        // Copied from the listing at application time
	DateApplied  string `json:"date_applied"`   // YYYY-MM-DD
	Status       string `json:"status"`         // One of the Status* constants
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Key returns the application identity
func (a Application) Key() string { return a.ID }

// ValidStatus reports whether s is a known application status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInterviewing, StatusOffered, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}
