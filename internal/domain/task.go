package domain

import "time"

// Estados de una tarea de carrera.
const (
	TaskStatusPending    = 0
	TaskStatusInProgress = 1
	TaskStatusDone       = 2
)

// CareerTask es una tarea de preparación sugerida o creada por el usuario.
// SessionID es opcional: una tarea puede originarse en una sesión concreta.
type CareerTask struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	SessionID    string     `json:"session_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ResourceLink string     `json:"resource_link,omitempty"`
	Status       int        `json:"status"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
