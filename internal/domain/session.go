package domain

import "time"

// Estados de una sesión de entrevista simulada.
const (
	SessionStatusInProgress = 0
	SessionStatusFinished   = 1
	SessionStatusAbandoned  = 2
)

// InterviewSession registra una entrevista simulada de un usuario contra una posición.
type InterviewSession struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	JobPositionID   string     `json:"job_position_id"`
	DifficultyLevel int        `json:"difficulty_level"`
	DurationMode    int        `json:"duration_mode"`
	Status          int        `json:"status"`
	TotalScore      *float64   `json:"total_score,omitempty"`
	CareerFitRating *int       `json:"career_fit_rating,omitempty"`
	OverallFeedback string     `json:"overall_feedback,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

// SessionDetail es una pregunta/respuesta dentro de una sesión.
type SessionDetail struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	OrderIndex       int       `json:"order_index"`
	QuestionContent  string    `json:"question_content"`
	AnswerContent    string    `json:"answer_content,omitempty"`
	AnswerAudioURL   string    `json:"answer_audio_url,omitempty"`
	AiFeedback       string    `json:"ai_feedback,omitempty"`
	Score            *float64  `json:"score,omitempty"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
