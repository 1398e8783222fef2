package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mockmate/internal/domain"
	"mockmate/internal/service"
)

type mockTaskRepo struct {
	tasks map[string]domain.CareerTask
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]domain.CareerTask)}
}

func (m *mockTaskRepo) Create(_ context.Context, task domain.CareerTask) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (domain.CareerTask, error) {
	task, ok := m.tasks[id]
	if !ok {
		return domain.CareerTask{}, pgx.ErrNoRows
	}
	return task, nil
}

func (m *mockTaskRepo) ListByUser(_ context.Context, userID string) ([]domain.CareerTask, error) {
	var out []domain.CareerTask
	for _, task := range m.tasks {
		if task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, id string, status int, completedAt *time.Time) error {
	task, ok := m.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	task.Status = status
	task.CompletedAt = completedAt
	m.tasks[id] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.tasks, id)
	return nil
}

type taskTestEnv struct {
	router *gin.Engine
	jwtSvc *service.JWTService
	repo   *mockTaskRepo
}

func newTaskTestEnv() *taskTestEnv {
	gin.SetMode(gin.TestMode)
	jwtSvc := service.NewJWTService("test-secret", "mockmate", "mockmate-web")
	repo := newMockTaskRepo()
	handler := NewTaskHandler(zap.NewNop(), repo)

	router := gin.New()
	group := router.Group("/api/tasks", JWTAuthMiddleware(jwtSvc))
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.PATCH("/:id/status", handler.UpdateStatus)
	group.DELETE("/:id", handler.Delete)

	return &taskTestEnv{router: router, jwtSvc: jwtSvc, repo: repo}
}

func (e *taskTestEnv) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.jwtSvc.Generate(domain.User{ID: userID, Email: userID + "@x.com"})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func (e *taskTestEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandler_CreateAndList(t *testing.T) {
	env := newTaskTestEnv()
	token := env.tokenFor(t, "u1")

	rec := env.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"title":       "Practicar system design",
		"description": "Repasar colas y particionado",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/tasks", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Tasks []domain.CareerTask `json:"tasks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(body.Tasks) != 1 || body.Tasks[0].Title != "Practicar system design" {
		t.Fatalf("unexpected tasks: %+v", body.Tasks)
	}
	if body.Tasks[0].Status != domain.TaskStatusPending {
		t.Fatalf("expected pending status, got %d", body.Tasks[0].Status)
	}
}

func TestTaskHandler_UpdateStatusDone(t *testing.T) {
	env := newTaskTestEnv()
	token := env.tokenFor(t, "u1")

	env.repo.tasks["t1"] = domain.CareerTask{ID: "t1", UserID: "u1", Title: "Leer sobre goroutines"}

	rec := env.do(t, http.MethodPatch, "/api/tasks/t1/status", token, gin.H{"status": domain.TaskStatusDone})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", rec.Code, rec.Body.String())
	}
	stored := env.repo.tasks["t1"]
	if stored.Status != domain.TaskStatusDone {
		t.Fatalf("expected done status, got %d", stored.Status)
	}
	if stored.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
}

func TestTaskHandler_OtherUsersTaskIsHidden(t *testing.T) {
	env := newTaskTestEnv()
	env.repo.tasks["t1"] = domain.CareerTask{ID: "t1", UserID: "u1", Title: "Privada"}

	intruder := env.tokenFor(t, "u2")

	rec := env.do(t, http.MethodPatch, "/api/tasks/t1/status", intruder, gin.H{"status": domain.TaskStatusInProgress})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign task, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/tasks/t1", intruder, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on delete of foreign task, got %d", rec.Code)
	}
	if _, ok := env.repo.tasks["t1"]; !ok {
		t.Fatalf("task should not have been deleted")
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	env := newTaskTestEnv()
	token := env.tokenFor(t, "u1")
	env.repo.tasks["t1"] = domain.CareerTask{ID: "t1", UserID: "u1", Title: "Temporal"}

	rec := env.do(t, http.MethodDelete, "/api/tasks/t1", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := env.repo.tasks["t1"]; ok {
		t.Fatalf("task should be gone")
	}
}
