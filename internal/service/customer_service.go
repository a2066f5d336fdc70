package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
)

type CustomerService struct {
	customerStore CustomerStore
}

func NewCustomerService(customerStore CustomerStore) *CustomerService {
	return &CustomerService{customerStore: customerStore}
}

type CustomerInput struct {
	Name           string
	DocumentNumber string
	Phone          string
	Email          string
	Address        string
}

func (s *CustomerService) Create(ctx context.Context, principal model.Principal, input CustomerInput) (*model.Customer, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(input.Name)
	document := strings.TrimSpace(input.DocumentNumber)
	if name == "" || document == "" {
		return nil, ErrInvalidInput
	}

	customer := &model.Customer{
		Name:           name,
		DocumentNumber: document,
		Phone:          strings.TrimSpace(input.Phone),
		Email:          strings.TrimSpace(input.Email),
		Address:        strings.TrimSpace(input.Address),
	}

	if err := s.customerStore.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, principal model.Principal, id string) (*model.Customer, error) {
	customer, err := s.customerStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, principal model.Principal, id string, input CustomerInput) (*model.Customer, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	customer, err := s.customerStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	document := strings.TrimSpace(input.DocumentNumber)
	if name == "" || document == "" {
		return nil, ErrInvalidInput
	}

	customer.Name = name
	customer.DocumentNumber = document
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.Email = strings.TrimSpace(input.Email)
	customer.Address = strings.TrimSpace(input.Address)

	if err := s.customerStore.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.customerStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.customerStore.Delete(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, principal model.Principal, filter repository.CustomerListFilter) ([]model.Customer, error) {
	return s.customerStore.List(ctx, filter)
}
