package service

import (
	"context"
	"testing"
	"time"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/properties/validator"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

type mockPropertyRepository struct {
	createFunc   func(ctx context.Context, property *model.Property) error
	findByIDFunc func(ctx context.Context, id string) (*model.Property, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Property, error)
	updateFunc   func(ctx context.Context, id string, property *model.Property) error
	deleteFunc   func(ctx context.Context, id string) error
	countFunc    func(ctx context.Context) (int64, error)
}

func (m *mockPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, property)
	}
	property.ID = "64f1b2a3c4d5e6f7a8b9c0e1"
	return nil
}

func (m *mockPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPropertyRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Property{}, nil
}

func (m *mockPropertyRepository) Update(ctx context.Context, id string, property *model.Property) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, property)
	}
	return nil
}

func (m *mockPropertyRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPropertyRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  "json",
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func newTestService(repo *mockPropertyRepository, cfg *config.Config) *propertyService {
	if cfg == nil {
		cfg = testConfig()
	}
	return &propertyService{
		repo:      repo,
		validator: validator.NewPropertyValidator(cfg.Log),
		cfg:       cfg,
	}
}

func validProperty() *model.Property {
	return &model.Property{
		Name:        "Yallambee Tiny Home",
		Description: "Off-grid tiny home overlooking the valley.",
		Price:       250,
		Location:    model.Location{City: "Mudgee", State: "NSW"},
	}
}

func TestCreate_SanitizesAndValidates(t *testing.T) {
	var stored *model.Property
	repo := &mockPropertyRepository{
		createFunc: func(ctx context.Context, property *model.Property) error {
			stored = property
			return nil
		},
	}
	svc := newTestService(repo, nil)

	property := validProperty()
	property.Name = "  Yallambee   Tiny Home  "
	property.Location.City = " Mudgee "

	if err := svc.Create(context.Background(), property); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Name != "Yallambee Tiny Home" {
		t.Errorf("expected normalized name, got %q", stored.Name)
	}
	if stored.Location.City != "Mudgee" {
		t.Errorf("expected trimmed city, got %q", stored.Location.City)
	}
	if stored.AgeRestriction != model.DefaultAgeRestriction {
		t.Errorf("expected default age restriction %d, got %d", model.DefaultAgeRestriction, stored.AgeRestriction)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *model.Property)
	}{
		{"short name", func(p *model.Property) { p.Name = "ab" }},
		{"short description", func(p *model.Property) { p.Description = "tiny" }},
		{"negative price", func(p *model.Property) { p.Price = -10 }},
		{"missing city", func(p *model.Property) { p.Location.City = "" }},
		{"bad image url", func(p *model.Property) { p.Images = []string{"not a url"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockPropertyRepository{
				createFunc: func(ctx context.Context, property *model.Property) error {
					t.Fatal("Create should not reach the repository")
					return nil
				},
			}
			svc := newTestService(repo, nil)

			property := validProperty()
			tt.mutate(property)

			err := svc.Create(context.Background(), property)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
		})
	}
}

func TestUpdate_MergesPartialPatch(t *testing.T) {
	existing := validProperty()
	existing.ID = "64f1b2a3c4d5e6f7a8b9c0e1"

	var stored *model.Property
	repo := &mockPropertyRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Property, error) {
			p := *existing
			return &p, nil
		},
		updateFunc: func(ctx context.Context, id string, property *model.Property) error {
			stored = property
			return nil
		},
	}
	svc := newTestService(repo, nil)

	newPrice := 300.0
	updated, err := svc.Update(context.Background(), existing.ID, &model.PropertyUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Price != newPrice || updated.Price != newPrice {
		t.Errorf("expected price %v, got %v", newPrice, stored.Price)
	}
	if stored.Name != existing.Name {
		t.Errorf("untouched fields must survive the merge, got name %q", stored.Name)
	}
}

func TestGetAll_ReturnsCountAndPage(t *testing.T) {
	repo := &mockPropertyRepository{
		countFunc: func(ctx context.Context) (int64, error) { return 7, nil },
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Property, error) {
			return []*model.Property{validProperty()}, nil
		},
	}
	svc := newTestService(repo, nil)

	properties, total, err := svc.GetAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("expected total 7, got %d", total)
	}
	if len(properties) != 1 {
		t.Errorf("expected 1 property, got %d", len(properties))
	}
}
