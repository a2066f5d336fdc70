package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.MaintenanceReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) GetByAssignmentID(ctx context.Context, assignmentID uuid.UUID) (*model.MaintenanceReport, error) {
	var report model.MaintenanceReport
	err := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ExistsForAssignment(ctx context.Context, assignmentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceReport{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *model.MaintenanceReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *ReportRepository) ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]model.MaintenanceReport, error) {
	var reports []model.MaintenanceReport
	err := r.db.WithContext(ctx).
		Where("technician_id = ?", technicianID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
