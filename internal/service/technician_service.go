package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
)

type TechnicianService struct {
	technicianStore TechnicianStore
}

func NewTechnicianService(technicianStore TechnicianStore) *TechnicianService {
	return &TechnicianService{technicianStore: technicianStore}
}

type TechnicianInput struct {
	Name     string
	Phone    string
	Email    string
	IsActive *bool
}

func (s *TechnicianService) Create(ctx context.Context, principal model.Principal, input TechnicianInput) (*model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	technician := &model.Technician{
		Name:     name,
		Phone:    strings.TrimSpace(input.Phone),
		Email:    strings.TrimSpace(input.Email),
		IsActive: true,
	}
	if input.IsActive != nil {
		technician.IsActive = *input.IsActive
	}

	if err := s.technicianStore.Create(ctx, technician); err != nil {
		return nil, err
	}

	return technician, nil
}

func (s *TechnicianService) Get(ctx context.Context, principal model.Principal, id string) (*model.Technician, error) {
	technician, err := s.technicianStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return technician, nil
}

func (s *TechnicianService) Update(ctx context.Context, principal model.Principal, id string, input TechnicianInput) (*model.Technician, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	technician, err := s.technicianStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	technician.Name = name
	technician.Phone = strings.TrimSpace(input.Phone)
	technician.Email = strings.TrimSpace(input.Email)
	if input.IsActive != nil {
		technician.IsActive = *input.IsActive
	}

	if err := s.technicianStore.Update(ctx, technician); err != nil {
		return nil, err
	}

	return technician, nil
}

func (s *TechnicianService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.technicianStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.technicianStore.Delete(ctx, id)
}

func (s *TechnicianService) List(ctx context.Context, principal model.Principal, filter repository.TechnicianListFilter) ([]model.Technician, error) {
	return s.technicianStore.List(ctx, filter)
}
