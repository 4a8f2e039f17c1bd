package service

import (
	"context"
	"errors"
	"sync"

	propertyerrors "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/properties/repository"
	"github.com/shayzimm/yallambee-booking-app-backend/internal/properties/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/sanitizer"
)

type PropertyService interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error)
	Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error)
	Delete(ctx context.Context, id string) error
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(
	repo repository.PropertyRepository,
	validator *validator.PropertyValidator,
	cfg *config.Config,
) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	s.applyDefaults(property)
	s.sanitize(property)
	if err := s.validate(property); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property", "error", err)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created successfully", "id", property.ID, "name", property.Name)
	return nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}

	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertyerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve property", err)
	}

	return property, nil
}

func (s *propertyService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Property, int64, error) {
	var count int64
	var properties []*model.Property
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count properties", "error", errCount)
			errCount = apperrors.Internal("Failed to count properties", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		properties, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list properties", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve properties", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return properties, count, nil
}

func (s *propertyService) Update(ctx context.Context, id string, updates *model.PropertyUpdate) (*model.Property, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Property ID cannot be empty")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertyerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid property ID format")
		}
		return nil, apperrors.Internal("Failed to check property existence", err)
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Property update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergePropertyUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update property", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update property", err)
	}

	s.cfg.Log.Info("Property updated successfully", "id", id)
	return merged, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Property ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, propertyerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Property", id)
		}
		if errors.Is(err, propertyerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid property ID format")
		}
		return apperrors.Internal("Failed to delete property", err)
	}

	s.cfg.Log.Info("Property deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *propertyService) applyDefaults(p *model.Property) {
	if p.AgeRestriction == 0 {
		p.AgeRestriction = model.DefaultAgeRestriction
	}
}

func (s *propertyService) sanitize(p *model.Property) {
	p.Name = sanitizer.NormalizeName(p.Name)
	p.Description = sanitizer.TrimAndNormalize(p.Description)
	p.Location.City = sanitizer.NormalizePlace(p.Location.City)
	p.Location.State = sanitizer.NormalizePlace(p.Location.State)
}

func (s *propertyService) mergePropertyUpdates(existing *model.Property, updates *model.PropertyUpdate) *model.Property {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != "" {
		merged.Description = updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Availability != nil {
		merged.Availability = updates.Availability
	}
	if updates.Images != nil {
		merged.Images = updates.Images
	}
	if updates.Location != nil {
		merged.Location = *updates.Location
	}
	if updates.AgeRestriction != nil {
		merged.AgeRestriction = *updates.AgeRestriction
	}

	return &merged
}

func (s *propertyService) validate(property *model.Property) error {
	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "error", err)
		return apperrors.Validation("Property validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
