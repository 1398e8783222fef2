package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mockmate/internal/domain"
)

// SessionRepository persiste sesiones de entrevista y sus detalles.
type SessionRepository interface {
	Create(ctx context.Context, session domain.InterviewSession) error
	GetByID(ctx context.Context, id string) (domain.InterviewSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.InterviewSession, error)
	ListDetails(ctx context.Context, sessionID string) ([]domain.SessionDetail, error)
	Finish(ctx context.Context, id string, status int, endedAt time.Time) error
}

// PgSessionRepository implementa SessionRepository usando pgxpool.
type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

const sessionColumns = `
	id, user_id, job_position_id, difficulty_level, duration_mode, status,
	total_score, career_fit_rating, COALESCE(overall_feedback, ''), started_at, ended_at
`

func (r *PgSessionRepository) Create(ctx context.Context, session domain.InterviewSession) error {
	const query = `
		INSERT INTO interview_sessions
			(id, user_id, job_position_id, difficulty_level, duration_mode, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.JobPositionID,
		session.DifficultyLevel,
		session.DurationMode,
		session.Status,
		session.StartedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.InterviewSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM interview_sessions WHERE id = $1`
	return scanSession(r.pool.QueryRow(ctx, query, id))
}

func (r *PgSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.InterviewSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM interview_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.InterviewSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *PgSessionRepository) ListDetails(ctx context.Context, sessionID string) ([]domain.SessionDetail, error) {
	const query = `
		SELECT id, session_id, order_index, question_content,
			COALESCE(answer_content, ''), COALESCE(answer_audio_url, ''),
			COALESCE(ai_feedback, ''), score, time_taken_seconds, created_at
		FROM session_details
		WHERE session_id = $1
		ORDER BY order_index
	`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.SessionDetail
	for rows.Next() {
		var d domain.SessionDetail
		err := rows.Scan(
			&d.ID,
			&d.SessionID,
			&d.OrderIndex,
			&d.QuestionContent,
			&d.AnswerContent,
			&d.AnswerAudioURL,
			&d.AiFeedback,
			&d.Score,
			&d.TimeTakenSeconds,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PgSessionRepository) Finish(ctx context.Context, id string, status int, endedAt time.Time) error {
	const query = `UPDATE interview_sessions SET status = $2, ended_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status, endedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanSession(row pgx.Row) (domain.InterviewSession, error) {
	var s domain.InterviewSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.JobPositionID,
		&s.DifficultyLevel,
		&s.DurationMode,
		&s.Status,
		&s.TotalScore,
		&s.CareerFitRating,
		&s.OverallFeedback,
		&s.StartedAt,
		&s.EndedAt,
	)
	if err != nil {
		return domain.InterviewSession{}, err
	}
	return s, nil
}
