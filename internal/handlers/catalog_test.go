package handlers

import (
	"encoding/json"
	"net/http"
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

// CatalogHandlerTestSuite defines the test suite for CatalogHandler
type CatalogHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *CatalogHandler
}

// SetupTest runs before each test
func (suite *CatalogHandlerTestSuite) SetupTest() {
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

	positionRepo := repository.NewPositionRepository(suite.db)
	taskTypeRepo := repository.NewTaskTypeRepository(suite.db)
	catalogService := services.NewCatalogService(positionRepo, taskTypeRepo)
	suite.handler = NewCatalogHandler(catalogService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *CatalogHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestCreatePosition_Success tests successful position creation
func (suite *CatalogHandlerTestSuite) TestCreatePosition_Success() {
	body := []byte(`{"name": "DevOps Engineer"}`)

	c, w := createTestContext("POST", "/api/positions", body)

	suite.handler.CreatePosition(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "DevOps Engineer", response["name"])
}

// TestCreatePosition_BlankName rejects whitespace-only names
func (suite *CatalogHandlerTestSuite) TestCreatePosition_BlankName() {
	body := []byte(`{"name": "   "}`)

	c, w := createTestContext("POST", "/api/positions", body)

	suite.handler.CreatePosition(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListPositions_OrderedByName returns positions alphabetically
func (suite *CatalogHandlerTestSuite) TestListPositions_OrderedByName() {
	suite.db.Create(&models.Position{Name: "QA Engineer"})
	suite.db.Create(&models.Position{Name: "Backend Developer"})
	suite.db.Create(&models.Position{Name: "Project Manager"})

	c, w := createTestContext("GET", "/api/positions", nil)

	suite.handler.ListPositions(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	positions := response["positions"].([]interface{})
	assert.Len(suite.T(), positions, 3)
	assert.Equal(suite.T(), "Backend Developer", positions[0].(map[string]interface{})["name"])
	assert.Equal(suite.T(), "Project Manager", positions[1].(map[string]interface{})["name"])
	assert.Equal(suite.T(), "QA Engineer", positions[2].(map[string]interface{})["name"])
}

// TestDeletePosition_Success removes an unreferenced position
func (suite *CatalogHandlerTestSuite) TestDeletePosition_Success() {
	position := &models.Position{Name: "QA Engineer"}
	suite.db.Create(position)

	c, w := createTestContext("DELETE", "/api/positions/1", nil)
	setIDParam(c, position.ID)

	suite.handler.DeletePosition(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Position{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeletePosition_HeldByWorker blocks the delete with a conflict
func (suite *CatalogHandlerTestSuite) TestDeletePosition_HeldByWorker() {
	position := &models.Position{Name: "QA Engineer"}
	suite.db.Create(position)
	suite.db.Create(&models.Worker{
		Username:     "alice",
		PasswordHash: "hashedpassword",
		PositionID:   &position.ID,
	})

	c, w := createTestContext("DELETE", "/api/positions/1", nil)
	setIDParam(c, position.ID)

	suite.handler.DeletePosition(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CONFLICT", response["code"])

	// The position survives the blocked delete
	var count int64
	suite.db.Model(&models.Position{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeletePosition_NotFound returns 404 for an unknown position
func (suite *CatalogHandlerTestSuite) TestDeletePosition_NotFound() {
	c, w := createTestContext("DELETE", "/api/positions/42", nil)
	setIDParam(c, 42)

	suite.handler.DeletePosition(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateTaskType_Success tests successful task type creation
func (suite *CatalogHandlerTestSuite) TestCreateTaskType_Success() {
	body := []byte(`{"name": "Refactoring"}`)

	c, w := createTestContext("POST", "/api/task-types", body)

	suite.handler.CreateTaskType(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Refactoring", response["name"])
}

// TestDeleteTaskType_UsedByTask blocks the delete with a conflict
func (suite *CatalogHandlerTestSuite) TestDeleteTaskType_UsedByTask() {
	taskType := &models.TaskType{Name: "Bug"}
	suite.db.Create(taskType)
	suite.db.Create(&models.Task{
		Name:       "Fix login",
		Deadline:   time.Now().AddDate(0, 0, 7),
		Priority:   models.PriorityHigh,
		TaskTypeID: taskType.ID,
	})

	c, w := createTestContext("DELETE", "/api/task-types/1", nil)
	setIDParam(c, taskType.ID)

	suite.handler.DeleteTaskType(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var count int64
	suite.db.Model(&models.TaskType{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeleteTaskType_Unreferenced succeeds once no task uses the type
func (suite *CatalogHandlerTestSuite) TestDeleteTaskType_Unreferenced() {
	taskType := &models.TaskType{Name: "Bug"}
	suite.db.Create(taskType)

	c, w := createTestContext("DELETE", "/api/task-types/1", nil)
	setIDParam(c, taskType.ID)

	suite.handler.DeleteTaskType(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.TaskType{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func TestCatalogHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}
