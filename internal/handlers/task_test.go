package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/vholenko/it-task-manager/internal/database"
	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
	"github.com/vholenko/it-task-manager/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.Position{},
		&models.TaskType{},
		&models.Worker{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	workerRepo := repository.NewWorkerRepository(suite.db)
	taskTypeRepo := repository.NewTaskTypeRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, workerRepo, taskTypeRepo)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestWorker(username string) *models.Worker {
	worker := &models.Worker{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(worker)
	return worker
}

func (suite *TaskHandlerTestSuite) createTestTaskType(name string) *models.TaskType {
	taskType := &models.TaskType{Name: name}
	suite.db.Create(taskType)
	return taskType
}

func (suite *TaskHandlerTestSuite) createTestTask(name string, priority models.TaskPriority, typeID uint64) *models.Task {
	task := &models.Task{
		Name:       name,
		Deadline:   time.Now().AddDate(0, 0, 7),
		Priority:   priority,
		TaskTypeID: typeID,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	worker := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Fix login",
		"description":  "Broken since Friday",
		"deadline":     "2025-01-10",
		"priority":     "High",
		"task_type_id": taskType.ID,
		"assignee_ids": []uint64{worker.ID},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, worker.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Fix login", response["name"])
	assert.Equal(suite.T(), "High", response["priority"])
	assert.Equal(suite.T(), "2025-01-10", response["deadline"])

	assignees := response["assignees"].([]interface{})
	assert.Len(suite.T(), assignees, 1)
	assert.Equal(suite.T(), "alice", assignees[0].(map[string]interface{})["username"])
}

// TestCreateTask_UnknownTaskType tests the reference validation
func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownTaskType() {
	worker := suite.createTestWorker("alice")

	requestBody := map[string]interface{}{
		"name":         "Fix login",
		"deadline":     "2025-01-10",
		"priority":     "High",
		"task_type_id": 42,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, worker.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response["code"])
}

// TestCreateTask_BadDeadline tests deadline format validation
func (suite *TaskHandlerTestSuite) TestCreateTask_BadDeadline() {
	worker := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")

	requestBody := map[string]interface{}{
		"name":         "Fix login",
		"deadline":     "next week",
		"priority":     "High",
		"task_type_id": taskType.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, worker.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateStatus_Success applies the flag and confirms it
func (suite *TaskHandlerTestSuite) TestUpdateStatus_Success() {
	worker := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)

	body := []byte(`{"is_completed": true}`)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1/status", body, worker.ID)
	setIDParam(c, task.ID)

	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Task status updated successfully", response["message"])
	assert.Equal(suite.T(), true, response["task"].(map[string]interface{})["is_completed"])
}

// TestUpdateStatus_NullIsNoOp leaves the task unchanged and emits no
// confirmation
func (suite *TaskHandlerTestSuite) TestUpdateStatus_NullIsNoOp() {
	worker := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)

	body := []byte(`{"is_completed": null}`)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1/status", body, worker.ID)
	setIDParam(c, task.ID)

	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.NotContains(suite.T(), response, "message")

	var stored models.Task
	suite.db.First(&stored, task.ID)
	assert.False(suite.T(), stored.IsCompleted)
}

// TestUpdateStatus_NotFound returns 404 for an unknown task
func (suite *TaskHandlerTestSuite) TestUpdateStatus_NotFound() {
	worker := suite.createTestWorker("alice")

	body := []byte(`{"is_completed": true}`)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/42/status", body, worker.ID)
	setIDParam(c, 42)

	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestReplaceAssignees_Success swaps the assignee set
func (suite *TaskHandlerTestSuite) TestReplaceAssignees_Success() {
	alice := suite.createTestWorker("alice")
	bob := suite.createTestWorker("bob")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, WorkerID: alice.ID})

	requestBody := map[string]interface{}{
		"worker_ids": []uint64{bob.ID},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignees", body, alice.ID)
	setIDParam(c, task.ID)

	suite.handler.ReplaceAssignees(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	assignees := response["assignees"].([]interface{})
	assert.Len(suite.T(), assignees, 1)
	assert.Equal(suite.T(), "bob", assignees[0].(map[string]interface{})["username"])
}

// TestReplaceAssignees_UnknownWorker reports invalid ids with field detail
func (suite *TaskHandlerTestSuite) TestReplaceAssignees_UnknownWorker() {
	alice := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)

	requestBody := map[string]interface{}{
		"worker_ids": []uint64{alice.ID, 99},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignees", body, alice.ID)
	setIDParam(c, task.ID)

	suite.handler.ReplaceAssignees(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response["code"])

	details := response["details"].([]interface{})
	assert.Equal(suite.T(), "assignees", details[0].(map[string]interface{})["field"])
}

// TestReplaceAssignees_ClearSet unassigns everyone with an empty set
func (suite *TaskHandlerTestSuite) TestReplaceAssignees_ClearSet() {
	alice := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, WorkerID: alice.ID})

	body := []byte(`{"worker_ids": []}`)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignees", body, alice.ID)
	setIDParam(c, task.ID)

	suite.handler.ReplaceAssignees(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var assignments int64
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignments)
	assert.Equal(suite.T(), int64(0), assignments)
}

// TestGetAssignees_PrefillsForm returns the current set for the edit form
func (suite *TaskHandlerTestSuite) TestGetAssignees_PrefillsForm() {
	alice := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, WorkerID: alice.ID})

	c, w := suite.createAuthContext("GET", "/api/tasks/1/assignees", nil, alice.ID)
	setIDParam(c, task.ID)

	suite.handler.GetAssignees(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	assignees := response["assignees"].([]interface{})
	assert.Len(suite.T(), assignees, 1)
	assert.Equal(suite.T(), "alice", assignees[0].(map[string]interface{})["username"])
}

// TestListTasks_FilterIgnoresSort reproduces the filter-beats-sort listing
// behavior over HTTP
func (suite *TaskHandlerTestSuite) TestListTasks_FilterIgnoresSort() {
	worker := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")

	later := &models.Task{Name: "foo later", Deadline: time.Now().AddDate(0, 0, 9), Priority: models.PriorityLow, TaskTypeID: taskType.ID}
	soon := &models.Task{Name: "foo soon", Deadline: time.Now().AddDate(0, 0, 1), Priority: models.PriorityUrgent, TaskTypeID: taskType.ID}
	other := &models.Task{Name: "bar", Deadline: time.Now().AddDate(0, 0, 2), Priority: models.PriorityHigh, TaskTypeID: taskType.ID}
	suite.db.Create(later)
	suite.db.Create(soon)
	suite.db.Create(other)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, worker.ID)
	c.Request.URL.RawQuery = "name=foo&sort_by=priority"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 2)
	assert.Equal(suite.T(), "foo soon", tasks[0].(map[string]interface{})["name"])
	assert.Equal(suite.T(), "foo later", tasks[1].(map[string]interface{})["name"])
}

// TestDeleteTask_Success removes the task and its assignment rows
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	alice := suite.createTestWorker("alice")
	taskType := suite.createTestTaskType("Bug")
	task := suite.createTestTask("Fix login", models.PriorityHigh, taskType.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, WorkerID: alice.ID})

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, alice.ID)
	setIDParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks int64
	suite.db.Model(&models.Task{}).Count(&tasks)
	assert.Equal(suite.T(), int64(0), tasks)

	var assignments int64
	suite.db.Model(&models.TaskAssignment{}).Count(&assignments)
	assert.Equal(suite.T(), int64(0), assignments)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
