package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

// Store interfaces consumed by the services, satisfied by the concrete
// repositories. Services accept these so tests can substitute in-memory
// fakes.

type AssignmentStore interface {
	Create(ctx context.Context, assignment *model.MaintenanceAssignment) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceAssignment, error)
	Update(ctx context.Context, assignment *model.MaintenanceAssignment) error
	SnapshotForTechnicianDay(ctx context.Context, technicianID uuid.UUID, date time.Time) ([]schedule.Slot, error)
	List(ctx context.Context, filter repository.AssignmentListFilter) ([]model.MaintenanceAssignment, error)
	ListActiveBefore(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error)
	ListForDay(ctx context.Context, date time.Time) ([]model.MaintenanceAssignment, error)
}

type ReportStore interface {
	Create(ctx context.Context, report *model.MaintenanceReport) error
	GetByAssignmentID(ctx context.Context, assignmentID uuid.UUID) (*model.MaintenanceReport, error)
	ExistsForAssignment(ctx context.Context, assignmentID uuid.UUID) (bool, error)
	ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]model.MaintenanceReport, error)
}

type TechnicianStore interface {
	Create(ctx context.Context, technician *model.Technician) error
	GetByID(ctx context.Context, id string) (*model.Technician, error)
	Update(ctx context.Context, technician *model.Technician) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.TechnicianListFilter) ([]model.Technician, error)
}

type GeneratorStore interface {
	Create(ctx context.Context, generator *model.Generator) error
	GetByID(ctx context.Context, id string) (*model.Generator, error)
	GetBySerialNumber(ctx context.Context, serial string) (*model.Generator, error)
	Update(ctx context.Context, generator *model.Generator) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.GeneratorListFilter) ([]model.Generator, error)
}

type CustomerStore interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repository.CustomerListFilter) ([]model.Customer, error)
}

type ChecklistStore interface {
	Create(ctx context.Context, checklist *model.RentalChecklist) error
	GetByID(ctx context.Context, id string) (*model.RentalChecklist, error)
	List(ctx context.Context, filter repository.ChecklistListFilter) ([]model.RentalChecklist, error)
}

// PhotoUploader pushes report photos to the hosted file service.
type PhotoUploader interface {
	UploadReportPhoto(ctx context.Context, filename string, content []byte) (string, error)
}
