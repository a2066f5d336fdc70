package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceReport is filed by the technician for a visit. A visit cannot
// be completed until its report exists; one report per assignment.
type MaintenanceReport struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"assignment_id"`
	TechnicianID uuid.UUID `gorm:"type:uuid;not null;index" json:"technician_id"`
	Summary      string    `gorm:"type:text;not null" json:"summary"`
	HoursMeter   *float64  `json:"hours_meter"`
	PartsUsed    string    `gorm:"type:text" json:"parts_used"`
	PhotoURL     *string   `gorm:"type:text" json:"photo_url"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaintenanceReport) TableName() string {
	return "maintenance_reports"
}

func (r *MaintenanceReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
