package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratorStatus string

const (
	GeneratorStatusAvailable   GeneratorStatus = "AVAILABLE"
	GeneratorStatusRented      GeneratorStatus = "RENTED"
	GeneratorStatusMaintenance GeneratorStatus = "MAINTENANCE"
	GeneratorStatusRetired     GeneratorStatus = "RETIRED"
)

type Generator struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	SerialNumber      string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"serial_number"`
	Brand             string          `gorm:"type:varchar(128);not null" json:"brand"`
	Model             string          `gorm:"type:varchar(128);not null" json:"model"`
	PowerKVA          float64         `gorm:"not null" json:"power_kva"`
	Status            GeneratorStatus `gorm:"type:generator_status;not null;default:AVAILABLE" json:"status"`
	CurrentCustomerID *uuid.UUID      `gorm:"type:uuid" json:"current_customer_id"`
	HoursMeter        float64         `json:"hours_meter"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Generator) TableName() string {
	return "generators"
}

func (g *Generator) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
