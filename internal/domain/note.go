package domain

// Note Model
type Note struct {
	ID      string `json:"id"`      // Random UUID
	Title   string `json:"title"`   // Note title
	Content string `json:"content"` // Note body
	Date    string `json:"date"`    // RFC 3339 UTC, refreshed on every update
}

// Key returns the note identity
func (n Note) Key() string { return n.ID }
