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

// TaskHandler maneja las tareas de carrera del usuario autenticado.
type TaskHandler struct {
	logger *zap.Logger
	tasks  repository.TaskRepository
}

func NewTaskHandler(logger *zap.Logger, tasks repository.TaskRepository) *TaskHandler {
	return &TaskHandler{logger: logger, tasks: tasks}
}

// Create maneja POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Title        string     `json:"title" binding:"required,max=200"`
		Description  string     `json:"description"`
		ResourceLink string     `json:"resource_link" binding:"omitempty,url"`
		SessionID    string     `json:"session_id"`
		Deadline     *time.Time `json:"deadline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task := domain.CareerTask{
		ID:           uuid.NewString(),
		UserID:       claims.Subject,
		SessionID:    req.SessionID,
		Title:        req.Title,
		Description:  req.Description,
		ResourceLink: req.ResourceLink,
		Status:       domain.TaskStatusPending,
		Deadline:     req.Deadline,
	}
	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		h.logger.Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// List maneja GET /api/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	tasks, err := h.tasks.ListByUser(c.Request.Context(), claims.Subject)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateStatus maneja PATCH /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	var req struct {
		Status int `json:"status" binding:"min=0,max=2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid task status request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var completedAt *time.Time
	if req.Status == domain.TaskStatusDone {
		now := time.Now().UTC()
		completedAt = &now
	}
	if err := h.tasks.UpdateStatus(c.Request.Context(), task.ID, req.Status, completedAt); err != nil {
		h.logger.Error("update task status failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
		return
	}

	task.Status = req.Status
	task.CompletedAt = completedAt
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Delete maneja DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.ownedTask(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		h.logger.Error("delete task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ownedTask(c *gin.Context) (domain.CareerTask, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.CareerTask{}, false
	}

	task, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return domain.CareerTask{}, false
		}
		h.logger.Error("get task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load task"})
		return domain.CareerTask{}, false
	}
	if task.UserID != claims.Subject {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return domain.CareerTask{}, false
	}
	return task, true
}
