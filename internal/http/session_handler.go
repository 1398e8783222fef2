package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mockmate/internal/domain"
	"mockmate/internal/repository"
)

// SessionHandler registra y consulta sesiones de entrevista del usuario.
// Solo tracking: la generación de preguntas y el scoring viven fuera de
// este servicio.
type SessionHandler struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
}

func NewSessionHandler(logger *zap.Logger, sessions repository.SessionRepository) *SessionHandler {
	return &SessionHandler{logger: logger, sessions: sessions}
}

// Create maneja POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		JobPositionID   string `json:"job_position_id" binding:"required"`
		DifficultyLevel int    `json:"difficulty_level" binding:"min=0,max=2"`
		DurationMode    int    `json:"duration_mode" binding:"min=0,max=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session := domain.InterviewSession{
		ID:              uuid.NewString(),
		UserID:          claims.Subject,
		JobPositionID:   req.JobPositionID,
		DifficultyLevel: req.DifficultyLevel,
		DurationMode:    req.DurationMode,
		Status:          domain.SessionStatusInProgress,
		StartedAt:       time.Now().UTC(),
	}
	if err := h.sessions.Create(c.Request.Context(), session); err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// List maneja GET /api/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	sessions, err := h.sessions.ListByUser(c.Request.Context(), claims.Subject)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// Get maneja GET /api/sessions/:id e incluye los detalles de la sesión.
func (h *SessionHandler) Get(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	details, err := h.sessions.ListDetails(c.Request.Context(), session.ID)
	if err != nil {
		h.logger.Error("list session details failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "details": details})
}

// Finish maneja POST /api/sessions/:id/finish.
func (h *SessionHandler) Finish(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Abandoned bool `json:"abandoned"`
	}
	// Cuerpo vacío cuenta como finalización normal.
	_ = c.ShouldBindJSON(&req)

	status := domain.SessionStatusFinished
	if req.Abandoned {
		status = domain.SessionStatusAbandoned
	}
	if err := h.sessions.Finish(c.Request.Context(), session.ID, status, time.Now().UTC()); err != nil {
		h.logger.Error("finish session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not finish session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "finished"})
}

func (h *SessionHandler) ownedSession(c *gin.Context) (domain.InterviewSession, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.InterviewSession{}, false
	}

	session, err := h.sessions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return domain.InterviewSession{}, false
		}
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return domain.InterviewSession{}, false
	}
	if session.UserID != claims.Subject {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return domain.InterviewSession{}, false
	}
	return session, true
}
