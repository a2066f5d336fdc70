package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
)

// MaintenanceAssignment is one technician's scheduled work on one generator
// on one calendar day. Start and end are local times of day; a visit never
// spans two days. The technicians' calendar is additionally guarded by a
// database exclusion constraint over active visits.
type MaintenanceAssignment struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TechnicianID uuid.UUID          `gorm:"type:uuid;not null;index" json:"technician_id"`
	GeneratorID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"generator_id"`
	VisitDate    time.Time          `gorm:"type:date;not null;index" json:"visit_date"`
	StartTime    schedule.TimeOfDay `gorm:"column:start_minute;type:smallint;not null" json:"start_time"`
	EndTime      schedule.TimeOfDay `gorm:"column:end_minute;type:smallint;not null" json:"end_time"`
	Status       schedule.Status    `gorm:"type:assignment_status;not null;default:SCHEDULED" json:"status"`
	Description  string             `gorm:"type:text" json:"description"`
	StartedAt    *time.Time         `json:"started_at"`
	FinishedAt   *time.Time         `json:"finished_at"`
	CancelledAt  *time.Time         `json:"cancelled_at"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (MaintenanceAssignment) TableName() string {
	return "maintenance_assignments"
}

func (a *MaintenanceAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Slot is the scheduling view of the assignment used by the conflict check.
func (a *MaintenanceAssignment) Slot() schedule.Slot {
	return schedule.Slot{
		ID:           a.ID,
		TechnicianID: a.TechnicianID,
		Date:         a.VisitDate,
		Start:        a.StartTime,
		End:          a.EndTime,
		Status:       a.Status,
	}
}
