package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
)

type ChecklistService struct {
	checklistStore ChecklistStore
	generatorStore GeneratorStore
	customerStore  CustomerStore
}

func NewChecklistService(
	checklistStore ChecklistStore,
	generatorStore GeneratorStore,
	customerStore CustomerStore,
) *ChecklistService {
	return &ChecklistService{
		checklistStore: checklistStore,
		generatorStore: generatorStore,
		customerStore:  customerStore,
	}
}

type ChecklistInput struct {
	GeneratorID     string
	CustomerID      string
	Direction       model.ChecklistDirection
	FuelLevelOK     bool
	HoursMeter      float64
	VisualDamage    bool
	CablesIncluded  bool
	GroundingTested bool
	Notes           string
}

// Create records the hand-off inspection and flips the generator's rental
// state: a DELIVERY checklist sends an available unit out to the customer,
// a RETURN checklist brings it back to the pool.
func (s *ChecklistService) Create(ctx context.Context, principal model.Principal, input ChecklistInput) (*model.RentalChecklist, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	generatorID, err := uuid.Parse(input.GeneratorID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.Direction != model.ChecklistDirectionDelivery && input.Direction != model.ChecklistDirectionReturn {
		return nil, ErrInvalidInput
	}
	if input.HoursMeter < 0 {
		return nil, ErrInvalidInput
	}

	generator, err := s.generatorStore.GetByID(ctx, input.GeneratorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.customerStore.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch input.Direction {
	case model.ChecklistDirectionDelivery:
		if generator.Status != model.GeneratorStatusAvailable {
			return nil, ErrConflict
		}
	case model.ChecklistDirectionReturn:
		if generator.Status != model.GeneratorStatusRented {
			return nil, ErrConflict
		}
		if generator.CurrentCustomerID == nil || *generator.CurrentCustomerID != customerID {
			return nil, ErrConflict
		}
	}

	checklist := &model.RentalChecklist{
		GeneratorID:     generatorID,
		CustomerID:      customerID,
		Direction:       input.Direction,
		FuelLevelOK:     input.FuelLevelOK,
		HoursMeter:      input.HoursMeter,
		VisualDamage:    input.VisualDamage,
		CablesIncluded:  input.CablesIncluded,
		GroundingTested: input.GroundingTested,
		Notes:           input.Notes,
		FilledByUserID:  principal.UserID,
	}

	if err := s.checklistStore.Create(ctx, checklist); err != nil {
		return nil, err
	}

	switch input.Direction {
	case model.ChecklistDirectionDelivery:
		generator.Status = model.GeneratorStatusRented
		generator.CurrentCustomerID = &customerID
	case model.ChecklistDirectionReturn:
		generator.Status = model.GeneratorStatusAvailable
		generator.CurrentCustomerID = nil
	}
	if input.HoursMeter > generator.HoursMeter {
		generator.HoursMeter = input.HoursMeter
	}
	if err := s.generatorStore.Update(ctx, generator); err != nil {
		return nil, err
	}

	return checklist, nil
}

func (s *ChecklistService) Get(ctx context.Context, principal model.Principal, id string) (*model.RentalChecklist, error) {
	checklist, err := s.checklistStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return checklist, nil
}

func (s *ChecklistService) List(ctx context.Context, principal model.Principal, filter repository.ChecklistListFilter) ([]model.RentalChecklist, error) {
	return s.checklistStore.List(ctx, filter)
}
