package models

// Role represents a user role
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// User represents the authenticated identity. Patients log in with the
// email of their patient record; PatientID links back to it.
type User struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	PatientID string `json:"patientId,omitempty"`
}

// Valid reports whether the stored user carries the fields a session needs.
func (u User) Valid() bool {
	return u.ID != "" && u.Email != "" && (u.Role == RoleAdmin || u.Role == RolePatient)
}

// AdminAccount is a configured administrator login.
type AdminAccount struct {
	ID           string
	Email        string
	PasswordHash string
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
