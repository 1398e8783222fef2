package domain

// Nombres de rol sembrados como datos de referencia.
const (
	RoleCandidate = "Candidate"
	RoleAdmin     = "Admin"
)

// Role es dato de referencia: los usuarios nuevos reciben el rol Candidate.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
