package domain

// User Model
type User struct {
	Username     string             `json:"-"`                // Key of the users document, never stored inside the value
	PasswordHash string             `json:"password"`         // Hashed password (PHC string, bcrypt or legacy hex digest)
	Role         string             `json:"role,omitempty"`   // Free-text role tag: admin, customer, ...
	Grades       map[string]float64 `json:"grades,omitempty"` // Subject to score (student portal)
}

// UserAttrs are the optional attributes supplied at registration
type UserAttrs struct {
	Role   string             // Role tag
	Grades map[string]float64 // Grades by subject
}
