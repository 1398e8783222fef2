package domain

import "time"

// User representa una cuenta registrada. El borrado es lógico via IsDeleted.
type User struct {
	ID              string    `json:"id"`
	RoleID          string    `json:"role_id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	CvURL           string    `json:"cv_url,omitempty"`
	CvExtractedText string    `json:"-"`
	ExperienceYears int       `json:"experience_years"`
	IsDeleted       bool      `json:"-"`
	CreatedAt       time.Time `json:"created_at"`

	Role *Role `json:"-"`
}

// RoleName devuelve el nombre del rol o "User" si el rol no está cargado.
func (u User) RoleName() string {
	if u.Role == nil || u.Role.Name == "" {
		return "User"
	}
	return u.Role.Name
}
