package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

const visitDateLayout = "2006-01-02"

type AssignmentService struct {
	assignmentStore AssignmentStore
	reportStore     ReportStore
	technicianStore TechnicianStore
	generatorStore  GeneratorStore
}

func NewAssignmentService(
	assignmentStore AssignmentStore,
	reportStore ReportStore,
	technicianStore TechnicianStore,
	generatorStore GeneratorStore,
) *AssignmentService {
	return &AssignmentService{
		assignmentStore: assignmentStore,
		reportStore:     reportStore,
		technicianStore: technicianStore,
		generatorStore:  generatorStore,
	}
}

type CreateAssignmentInput struct {
	TechnicianID string
	GeneratorID  string
	VisitDate    string
	StartTime    string
	EndTime      string
	Description  string
}

// Create schedules a new maintenance visit. The candidate slot is checked
// against a fresh snapshot of the technician's day before persisting; the
// database exclusion constraint catches the losing side of a concurrent
// double-booking that the snapshot could not see.
func (s *AssignmentService) Create(ctx context.Context, principal model.Principal, input CreateAssignmentInput) (*model.MaintenanceAssignment, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	technicianID, err := uuid.Parse(input.TechnicianID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	generatorID, err := uuid.Parse(input.GeneratorID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	visitDate, err := time.Parse(visitDateLayout, input.VisitDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	startTime, err := schedule.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return nil, &schedule.ValidationError{Reason: err.Error()}
	}
	endTime, err := schedule.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return nil, &schedule.ValidationError{Reason: err.Error()}
	}

	technician, err := s.technicianStore.GetByID(ctx, input.TechnicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !technician.IsActive {
		return nil, ErrConflict
	}

	if _, err := s.generatorStore.GetByID(ctx, input.GeneratorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assignment := &model.MaintenanceAssignment{
		TechnicianID: technicianID,
		GeneratorID:  generatorID,
		VisitDate:    visitDate,
		StartTime:    startTime,
		EndTime:      endTime,
		Status:       schedule.StatusScheduled,
		Description:  input.Description,
	}

	snapshot, err := s.assignmentStore.SnapshotForTechnicianDay(ctx, technicianID, visitDate)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(assignment.Slot(), snapshot); err != nil {
		return nil, err
	}

	if err := s.assignmentStore.Create(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return assignment, nil
}

type RescheduleAssignmentInput struct {
	VisitDate   string
	StartTime   string
	EndTime     string
	Description *string
}

// Reschedule moves a visit to a new date or time range. Only visits still
// in SCHEDULED status can move; the visit's own slot is excluded from the
// conflict check so it never conflicts with itself.
func (s *AssignmentService) Reschedule(ctx context.Context, principal model.Principal, id string, input RescheduleAssignmentInput) (*model.MaintenanceAssignment, error) {
	if !principal.CanManageSchedule() {
		return nil, ErrPermissionDenied
	}

	assignment, err := s.assignmentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if assignment.Status != schedule.StatusScheduled {
		return nil, &schedule.InvalidTransitionError{From: assignment.Status, To: assignment.Status}
	}

	visitDate, err := time.Parse(visitDateLayout, input.VisitDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	startTime, err := schedule.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return nil, &schedule.ValidationError{Reason: err.Error()}
	}
	endTime, err := schedule.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return nil, &schedule.ValidationError{Reason: err.Error()}
	}

	assignment.VisitDate = visitDate
	assignment.StartTime = startTime
	assignment.EndTime = endTime
	if input.Description != nil {
		assignment.Description = *input.Description
	}

	snapshot, err := s.assignmentStore.SnapshotForTechnicianDay(ctx, assignment.TechnicianID, visitDate)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(assignment.Slot(), snapshot); err != nil {
		return nil, err
	}

	if err := s.assignmentStore.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return assignment, nil
}

// Start marks the visit in progress. Only the assigned technician may
// start it, and only from SCHEDULED.
func (s *AssignmentService) Start(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error) {
	assignment, err := s.ownAssignment(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if err := schedule.Transition(assignment.Status, schedule.StatusInProgress, false); err != nil {
		return nil, err
	}

	now := time.Now()
	assignment.Status = schedule.StatusInProgress
	assignment.StartedAt = &now
	if err := s.assignmentStore.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.markGeneratorInMaintenance(ctx, assignment.GeneratorID)

	return assignment, nil
}

// Complete closes out the visit. The lifecycle guard requires a filed
// report; without one the visit stays IN_PROGRESS.
func (s *AssignmentService) Complete(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error) {
	assignment, err := s.ownAssignment(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	reportFiled, err := s.reportStore.ExistsForAssignment(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}

	if err := schedule.Transition(assignment.Status, schedule.StatusCompleted, reportFiled); err != nil {
		return nil, err
	}

	now := time.Now()
	assignment.Status = schedule.StatusCompleted
	assignment.FinishedAt = &now
	if err := s.assignmentStore.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.releaseGeneratorFromMaintenance(ctx, assignment.GeneratorID)

	return assignment, nil
}

// Cancel retires the visit from the calendar. The office can cancel any
// non-terminal visit; a technician only their own.
func (s *AssignmentService) Cancel(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error) {
	var assignment *model.MaintenanceAssignment
	var err error

	if principal.CanManageSchedule() {
		assignment, err = s.assignmentStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	} else {
		assignment, err = s.ownAssignment(ctx, principal, id)
		if err != nil {
			return nil, err
		}
	}

	wasInProgress := assignment.Status == schedule.StatusInProgress

	if err := schedule.Transition(assignment.Status, schedule.StatusCancelled, false); err != nil {
		return nil, err
	}

	now := time.Now()
	assignment.Status = schedule.StatusCancelled
	assignment.CancelledAt = &now
	if err := s.assignmentStore.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if wasInProgress {
		s.releaseGeneratorFromMaintenance(ctx, assignment.GeneratorID)
	}

	return assignment, nil
}

func (s *AssignmentService) Get(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error) {
	assignment, err := s.assignmentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if principal.IsTechnician() {
		if principal.TechnicianID == nil || *principal.TechnicianID != assignment.TechnicianID {
			return nil, ErrPermissionDenied
		}
	}

	return assignment, nil
}

func (s *AssignmentService) List(ctx context.Context, principal model.Principal, filter repository.AssignmentListFilter) ([]model.MaintenanceAssignment, error) {
	if principal.IsTechnician() {
		if principal.TechnicianID == nil {
			return nil, ErrPermissionDenied
		}
		technicianID := principal.TechnicianID.String()
		filter.TechnicianID = &technicianID
	}

	return s.assignmentStore.List(ctx, filter)
}

// ownAssignment loads the assignment and checks it belongs to the calling
// technician.
func (s *AssignmentService) ownAssignment(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error) {
	if !principal.IsTechnician() || principal.TechnicianID == nil {
		return nil, ErrPermissionDenied
	}

	assignment, err := s.assignmentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if assignment.TechnicianID != *principal.TechnicianID {
		return nil, ErrPermissionDenied
	}

	return assignment, nil
}

// Generator status tracking is best effort: the visit transition has
// already been persisted, and a failed status flip must not undo it.
func (s *AssignmentService) markGeneratorInMaintenance(ctx context.Context, generatorID uuid.UUID) {
	generator, err := s.generatorStore.GetByID(ctx, generatorID.String())
	if err != nil {
		return
	}
	if generator.Status != model.GeneratorStatusAvailable {
		return
	}
	generator.Status = model.GeneratorStatusMaintenance
	_ = s.generatorStore.Update(ctx, generator)
}

func (s *AssignmentService) releaseGeneratorFromMaintenance(ctx context.Context, generatorID uuid.UUID) {
	generator, err := s.generatorStore.GetByID(ctx, generatorID.String())
	if err != nil {
		return
	}
	if generator.Status != model.GeneratorStatusMaintenance {
		return
	}
	generator.Status = model.GeneratorStatusAvailable
	_ = s.generatorStore.Update(ctx, generator)
}
