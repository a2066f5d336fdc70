package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	DocumentNumber string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"document_number"`
	Phone          string         `gorm:"type:varchar(32)" json:"phone"`
	Email          string         `gorm:"type:varchar(255)" json:"email"`
	Address        string         `gorm:"type:text" json:"address"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
