package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/utils"
)

type GeneratorService struct {
	generatorStore GeneratorStore
}

func NewGeneratorService(generatorStore GeneratorStore) *GeneratorService {
	return &GeneratorService{generatorStore: generatorStore}
}

type GeneratorInput struct {
	SerialNumber string
	Brand        string
	Model        string
	PowerKVA     float64
	Notes        string
}

func (s *GeneratorService) Create(ctx context.Context, principal model.Principal, input GeneratorInput) (*model.Generator, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	serial := utils.NormalizeSerial(input.SerialNumber)
	if serial == "" || strings.TrimSpace(input.Brand) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, ErrInvalidInput
	}
	if input.PowerKVA <= 0 {
		return nil, ErrInvalidInput
	}

	if _, err := s.generatorStore.GetBySerialNumber(ctx, serial); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	generator := &model.Generator{
		SerialNumber: serial,
		Brand:        strings.TrimSpace(input.Brand),
		Model:        strings.TrimSpace(input.Model),
		PowerKVA:     input.PowerKVA,
		Status:       model.GeneratorStatusAvailable,
		Notes:        strings.TrimSpace(input.Notes),
	}

	if err := s.generatorStore.Create(ctx, generator); err != nil {
		return nil, err
	}

	return generator, nil
}

func (s *GeneratorService) Get(ctx context.Context, principal model.Principal, id string) (*model.Generator, error) {
	generator, err := s.generatorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return generator, nil
}

func (s *GeneratorService) Update(ctx context.Context, principal model.Principal, id string, input GeneratorInput) (*model.Generator, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	generator, err := s.generatorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	serial := utils.NormalizeSerial(input.SerialNumber)
	if serial == "" || strings.TrimSpace(input.Brand) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, ErrInvalidInput
	}
	if input.PowerKVA <= 0 {
		return nil, ErrInvalidInput
	}

	if serial != generator.SerialNumber {
		if _, err := s.generatorStore.GetBySerialNumber(ctx, serial); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	generator.SerialNumber = serial
	generator.Brand = strings.TrimSpace(input.Brand)
	generator.Model = strings.TrimSpace(input.Model)
	generator.PowerKVA = input.PowerKVA
	generator.Notes = strings.TrimSpace(input.Notes)

	if err := s.generatorStore.Update(ctx, generator); err != nil {
		return nil, err
	}

	return generator, nil
}

// Retire takes a generator permanently out of the rental pool. Rented
// units must come back first.
func (s *GeneratorService) Retire(ctx context.Context, principal model.Principal, id string) (*model.Generator, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	generator, err := s.generatorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if generator.Status == model.GeneratorStatusRented {
		return nil, ErrConflict
	}

	generator.Status = model.GeneratorStatusRetired
	generator.CurrentCustomerID = nil
	if err := s.generatorStore.Update(ctx, generator); err != nil {
		return nil, err
	}

	return generator, nil
}

func (s *GeneratorService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	generator, err := s.generatorStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if generator.Status == model.GeneratorStatusRented {
		return ErrConflict
	}

	return s.generatorStore.Delete(ctx, id)
}

func (s *GeneratorService) List(ctx context.Context, principal model.Principal, filter repository.GeneratorListFilter) ([]model.Generator, error) {
	return s.generatorStore.List(ctx, filter)
}
