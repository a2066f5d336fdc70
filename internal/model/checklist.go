package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChecklistDirection string

const (
	ChecklistDirectionDelivery ChecklistDirection = "DELIVERY"
	ChecklistDirectionReturn   ChecklistDirection = "RETURN"
)

// RentalChecklist records the hand-off inspection when a generator goes out
// to a customer or comes back.
type RentalChecklist struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	GeneratorID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"generator_id"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	Direction       ChecklistDirection `gorm:"type:checklist_direction;not null" json:"direction"`
	FuelLevelOK     bool               `gorm:"not null" json:"fuel_level_ok"`
	HoursMeter      float64            `gorm:"not null" json:"hours_meter"`
	VisualDamage    bool               `gorm:"not null" json:"visual_damage"`
	CablesIncluded  bool               `gorm:"not null" json:"cables_included"`
	GroundingTested bool               `gorm:"not null" json:"grounding_tested"`
	Notes           string             `gorm:"type:text" json:"notes"`
	FilledByUserID  uuid.UUID          `gorm:"type:uuid;not null" json:"filled_by_user_id"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
}

func (RentalChecklist) TableName() string {
	return "rental_checklists"
}

func (c *RentalChecklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
