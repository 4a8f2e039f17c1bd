package service

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/notifications"
	usererrors "github.com/shayzimm/yallambee-booking-app-backend/internal/users/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/users/repository"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/users/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/sanitizer"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

// Login failures share one message so responses don't reveal whether an
// email is registered.
const badCredentialsMessage = "Invalid email or password"

type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error)
	Update(ctx context.Context, id string, updates *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    *token.Manager
	publisher notifications.Publisher
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	tokens *token.Manager,
	publisher notifications.Publisher,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	req.Username = sanitizer.NormalizeName(req.Username)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.FirstName = sanitizer.NormalizeName(req.FirstName)
	req.LastName = sanitizer.NormalizeName(req.LastName)

	if err := s.validator.ValidateRegistration(req); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Registration validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DOB:          req.DOB,
		PasswordHash: string(hash),
		IsAdmin:      req.IsAdmin,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, usererrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("Email is already registered")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	signed, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID, "email", user.Email)
	if err := s.publisher.PublishUserEvent(ctx, notifications.EventUserRegistered, notifications.UserEvent{UserID: user.ID}); err != nil {
		s.cfg.Log.Warn("Failed to publish user event", "user_id", user.ID, "error", err)
	}

	return &AuthResult{User: user, Token: signed}, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		s.cfg.Log.Warn("Login validation failed", "error", err)
		return nil, apperrors.Validation("Login validation failed", map[string]any{"error": err.Error()})
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.Unauthorized(badCredentialsMessage)
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized(badCredentialsMessage)
	}

	signed, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return &AuthResult{User: user, Token: signed}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.User, int64, error) {
	var count int64
	var users []*model.User
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count users", "error", errCount)
			errCount = apperrors.Internal("Failed to count users", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		users, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list users", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve users", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return users, count, nil
}

func (s *userService) Update(ctx context.Context, id string, updates *model.UserUpdate) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to check user existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("User update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged, err := s.mergeUserUpdates(existing, updates)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, usererrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("Email is already registered")
		}
		s.cfg.Log.Error("Failed to update user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	s.cfg.Log.Info("User updated successfully", "id", id)
	return merged, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *userService) mergeUserUpdates(existing *model.User, updates *model.UserUpdate) (*model.User, error) {
	merged := *existing

	if updates.Username != "" {
		merged.Username = sanitizer.NormalizeName(updates.Username)
	}
	if updates.Email != "" {
		merged.Email = sanitizer.NormalizeEmail(updates.Email)
	}
	if updates.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(updates.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Internal("Failed to hash password", err)
		}
		merged.PasswordHash = string(hash)
	}
	if updates.FirstName != "" {
		merged.FirstName = sanitizer.NormalizeName(updates.FirstName)
	}
	if updates.LastName != "" {
		merged.LastName = sanitizer.NormalizeName(updates.LastName)
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.DOB != nil {
		merged.DOB = *updates.DOB
	}
	if updates.IsAdmin != nil {
		merged.IsAdmin = *updates.IsAdmin
	}

	return &merged, nil
}
