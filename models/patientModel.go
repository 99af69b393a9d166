package models

// Patient model
type Patient struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DateOfBirth  string `json:"dob"`
	Contact      string `json:"contact"`
	HealthInfo   string `json:"healthInfo"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	IsActive     bool   `json:"isActive"`
}

// PatientProfile is the outward view of a patient; it never carries credentials.
type PatientProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dob"`
	Contact     string `json:"contact"`
	HealthInfo  string `json:"healthInfo"`
	Email       string `json:"email"`
	IsActive    bool   `json:"isActive"`
}

func (p Patient) Profile() PatientProfile {
	return PatientProfile{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Contact:     p.Contact,
		HealthInfo:  p.HealthInfo,
		Email:       p.Email,
		IsActive:    p.IsActive,
	}
}

// Profiles projects a patient list onto profiles, keeping order.
func Profiles(patients []Patient) []PatientProfile {
	profiles := make([]PatientProfile, 0, len(patients))
	for _, p := range patients {
		profiles = append(profiles, p.Profile())
	}
	return profiles
}

// PatientForm carries the administrator's patient form. On update an empty
// Password keeps the stored credentials.
type PatientForm struct {
	Name            string `json:"name"`
	DateOfBirth     string `json:"dob"`
	Contact         string `json:"contact"`
	HealthInfo      string `json:"healthInfo"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	IsActive        *bool  `json:"isActive"`
}

// PasswordChange is submitted by a patient changing their own password.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
