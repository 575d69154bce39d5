package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/vholenko/it-task-manager/internal/config"
	"github.com/vholenko/it-task-manager/internal/database"
	"github.com/vholenko/it-task-manager/internal/handlers"
	"github.com/vholenko/it-task-manager/internal/middleware"
	"github.com/vholenko/it-task-manager/internal/repository"
	"github.com/vholenko/it-task-manager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("task_session", store))

	// Initialize repositories
	db := database.GetDB()
	positionRepo := repository.NewPositionRepository(db)
	taskTypeRepo := repository.NewTaskTypeRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(workerRepo, positionRepo)
	workerService := services.NewWorkerService(workerRepo, positionRepo)
	taskService := services.NewTaskService(taskRepo, workerRepo, taskTypeRepo)
	catalogService := services.NewCatalogService(positionRepo, taskTypeRepo)
	dashboardService := services.NewDashboardService(workerRepo, taskRepo, taskService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	workerHandler := handlers.NewWorkerHandler(workerService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task manager is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.Index)

		// Worker routes (protected; create/delete are admin-only)
		workers := api.Group("/workers")
		workers.Use(middleware.RequireAuth())
		{
			workers.GET("", workerHandler.ListWorkers)
			workers.POST("", middleware.RequireSuperuser(), workerHandler.CreateWorker)
			workers.GET("/:id", workerHandler.GetWorker)
			workers.PATCH("/:id/position", workerHandler.UpdatePosition)
			workers.DELETE("/:id", middleware.RequireSuperuser(), workerHandler.DeleteWorker)
		}

		// Task routes (protected; delete is admin-only)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/urgent-high", taskHandler.ListUrgentHigh)
			tasks.GET("/completed", taskHandler.ListCompleted)
			tasks.GET("/due-soon", taskHandler.ListDueSoon)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
			tasks.DELETE("/:id", middleware.RequireSuperuser(), taskHandler.DeleteTask)
			// Replacing the assignee set is POST-only: the form prefill is a
			// separate GET, so a page load can never submit a reassignment.
			tasks.GET("/:id/assignees", taskHandler.GetAssignees)
			tasks.POST("/:id/assignees", taskHandler.ReplaceAssignees)
		}

		// Reference data (protected; mutations are admin-only)
		positions := api.Group("/positions")
		positions.Use(middleware.RequireAuth())
		{
			positions.GET("", catalogHandler.ListPositions)
			positions.POST("", middleware.RequireSuperuser(), catalogHandler.CreatePosition)
			positions.DELETE("/:id", middleware.RequireSuperuser(), catalogHandler.DeletePosition)
		}

		taskTypes := api.Group("/task-types")
		taskTypes.Use(middleware.RequireAuth())
		{
			taskTypes.GET("", catalogHandler.ListTaskTypes)
			taskTypes.POST("", middleware.RequireSuperuser(), catalogHandler.CreateTaskType)
			taskTypes.DELETE("/:id", middleware.RequireSuperuser(), catalogHandler.DeleteTaskType)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
