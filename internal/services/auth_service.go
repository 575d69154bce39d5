package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vholenko/it-task-manager/internal/constants"
	"github.com/vholenko/it-task-manager/internal/models"
	"github.com/vholenko/it-task-manager/internal/repository"
	"github.com/vholenko/it-task-manager/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrWorkerNotFound       = errors.New("worker not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and worker registration.
type AuthService struct {
	workerRepo   repository.WorkerRepository
	positionRepo repository.PositionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(workerRepo repository.WorkerRepository, positionRepo repository.PositionRepository) *AuthService {
	return &AuthService{
		workerRepo:   workerRepo,
		positionRepo: positionRepo,
	}
}

// SignupInput represents the required information to register a worker.
type SignupInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	Email       string
	PositionID  *uint64
	IsSuperuser bool
}

// Signup registers a new worker. The position reference, when given, is
// validated before anything is persisted.
func (s *AuthService) Signup(input SignupInput) (*models.Worker, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.workerRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	result, err := validation.PositionRef(s.positionRepo, input.PositionID)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, newValidationError(result)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	worker := &models.Worker{
		Username:     username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		PositionID:   input.PositionID,
		IsSuperuser:  input.IsSuperuser,
	}

	if err := s.workerRepo.Create(worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	return s.workerRepo.FindByID(worker.ID, "Position")
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated worker.
func (s *AuthService) Login(input LoginInput) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return worker, nil
}

// GetWorker retrieves a worker by ID.
func (s *AuthService) GetWorker(id uint64) (*models.Worker, error) {
	worker, err := s.workerRepo.FindByID(id, "Position")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}

	return worker, nil
}
