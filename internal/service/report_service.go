package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

type ReportService struct {
	reportStore     ReportStore
	assignmentStore AssignmentStore
	generatorStore  GeneratorStore
	uploader        PhotoUploader
}

func NewReportService(
	reportStore ReportStore,
	assignmentStore AssignmentStore,
	generatorStore GeneratorStore,
	uploader PhotoUploader,
) *ReportService {
	return &ReportService{
		reportStore:     reportStore,
		assignmentStore: assignmentStore,
		generatorStore:  generatorStore,
		uploader:        uploader,
	}
}

type FileReportInput struct {
	Summary    string
	HoursMeter *float64
	PartsUsed  string
	// Optional photo attached by the technician; uploaded to the file
	// service before the report row is written.
	PhotoFilename string
	PhotoContent  []byte
}

// File records the maintenance report for a visit in progress. One report
// per visit; completing the visit requires this to exist first.
func (s *ReportService) File(ctx context.Context, principal model.Principal, assignmentID string, input FileReportInput) (*model.MaintenanceReport, error) {
	if !principal.IsTechnician() || principal.TechnicianID == nil {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(input.Summary) == "" {
		return nil, ErrInvalidInput
	}

	assignment, err := s.assignmentStore.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if assignment.TechnicianID != *principal.TechnicianID {
		return nil, ErrPermissionDenied
	}
	if assignment.Status != schedule.StatusInProgress {
		return nil, &schedule.PreconditionError{Reason: "report can only be filed for a visit in progress"}
	}

	exists, err := s.reportStore.ExistsForAssignment(ctx, assignment.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	report := &model.MaintenanceReport{
		AssignmentID: assignment.ID,
		TechnicianID: assignment.TechnicianID,
		Summary:      input.Summary,
		HoursMeter:   input.HoursMeter,
		PartsUsed:    input.PartsUsed,
	}

	if len(input.PhotoContent) > 0 && s.uploader != nil {
		url, err := s.uploader.UploadReportPhoto(ctx, input.PhotoFilename, input.PhotoContent)
		if err != nil {
			return nil, err
		}
		report.PhotoURL = &url
	}

	if err := s.reportStore.Create(ctx, report); err != nil {
		return nil, err
	}

	if input.HoursMeter != nil {
		s.updateGeneratorHours(ctx, assignment.GeneratorID, *input.HoursMeter)
	}

	return report, nil
}

func (s *ReportService) GetByAssignment(ctx context.Context, principal model.Principal, assignmentID string) (*model.MaintenanceReport, error) {
	id, err := uuid.Parse(assignmentID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	report, err := s.reportStore.GetByAssignmentID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if principal.IsTechnician() {
		if principal.TechnicianID == nil || *principal.TechnicianID != report.TechnicianID {
			return nil, ErrPermissionDenied
		}
	}

	return report, nil
}

func (s *ReportService) ListMine(ctx context.Context, principal model.Principal) ([]model.MaintenanceReport, error) {
	if !principal.IsTechnician() || principal.TechnicianID == nil {
		return nil, ErrPermissionDenied
	}
	return s.reportStore.ListByTechnician(ctx, *principal.TechnicianID)
}

// The hours meter only moves forward; a lower reading in the report is
// kept on the report but ignored on the generator.
func (s *ReportService) updateGeneratorHours(ctx context.Context, generatorID uuid.UUID, hours float64) {
	generator, err := s.generatorStore.GetByID(ctx, generatorID.String())
	if err != nil {
		return
	}
	if hours <= generator.HoursMeter {
		return
	}
	generator.HoursMeter = hours
	_ = s.generatorStore.Update(ctx, generator)
}
