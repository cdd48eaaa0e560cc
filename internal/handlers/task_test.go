package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/dto"
	"github.com/taskboard/taskboard/internal/middleware"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	router      *gin.Engine
	issuer      *auth.TokenIssuer
	userService *services.UserService
	taskService *services.TaskService
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Task{})
	suite.Require().NoError(err)

	suite.issuer = auth.NewTokenIssuer("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	suite.userService = services.NewUserService(userRepo, suite.issuer, &recordingMailer{}, "http://localhost:8000")
	suite.taskService = services.NewTaskService(taskRepo, userRepo)

	handler := NewTaskHandler(suite.taskService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	tasks := suite.router.Group("/api/tasks")
	tasks.Use(middleware.RequireAuth(suite.issuer))
	{
		tasks.POST("", handler.CreateTask)
		tasks.GET("", handler.ListTasks)
		tasks.GET("/:id", handler.GetTask)
		tasks.PATCH("/:id", handler.UpdateTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createUserWithToken(email string) (*models.User, string) {
	user, err := suite.userService.Register(services.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "secret1",
	})
	suite.Require().NoError(err)

	token, err := suite.issuer.Issue(user.ID, user.Email)
	suite.Require().NoError(err)

	return user, token
}

func (suite *TaskHandlerTestSuite) createTask(title string, userID uint64) *models.Task {
	task, err := suite.taskService.Create(services.CreateTaskInput{Title: title, UserID: userID})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskHandlerTestSuite) request(method, url string, payload interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	_, token := suite.createUserWithToken("a@x.com")

	w := suite.request(http.MethodPost, "/api/tasks", map[string]string{
		"title":       "Buy milk",
		"description": "2 liters",
	}, token)

	suite.Equal(http.StatusCreated, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Buy milk", response.Title)
	suite.Equal(models.TaskStatusPending, response.Status)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_RequiresToken() {
	w := suite.request(http.MethodPost, "/api/tasks", map[string]string{
		"title": "Buy milk",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_BlankTitle() {
	_, token := suite.createUserWithToken("a@x.com")

	w := suite.request(http.MethodPost, "/api/tasks", map[string]string{
		"title": "   ",
	}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks() {
	user, token := suite.createUserWithToken("a@x.com")
	suite.createTask("Buy milk", user.ID)
	suite.createTask("Walk dog", user.ID)

	other, _ := suite.createUserWithToken("b@x.com")
	suite.createTask("Unrelated", other.ID)

	w := suite.request(http.MethodGet, "/api/tasks", nil, token)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(2, response.Total)
}

func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	user, token := suite.createUserWithToken("a@x.com")
	suite.createTask("Buy milk", user.ID)

	w := suite.request(http.MethodGet, "/api/tasks?status=completed", nil, token)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(0, response.Total)
	suite.Empty(response.Tasks)
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatus() {
	_, token := suite.createUserWithToken("a@x.com")

	w := suite.request(http.MethodGet, "/api/tasks?status=archived", nil, token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	user, token := suite.createUserWithToken("a@x.com")
	task := suite.createTask("Buy milk", user.ID)

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, token)
	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(task.ID, response.ID)
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	_, token := suite.createUserWithToken("a@x.com")

	w := suite.request(http.MethodGet, "/api/tasks/999", nil, token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask() {
	user, token := suite.createUserWithToken("a@x.com")
	task := suite.createTask("Buy milk", user.ID)

	w := suite.request(http.MethodPatch, fmt.Sprintf("/api/tasks/%d", task.ID), map[string]string{
		"status": "completed",
	}, token)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.TaskStatusCompleted, response.Status)
	suite.Equal("Buy milk", response.Title)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	user, token := suite.createUserWithToken("a@x.com")
	task := suite.createTask("Buy milk", user.ID)

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, token)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), nil, token)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil, token)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
