package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned client-side so the models behave the same on Postgres and
// on the in-memory SQLite used in tests.

func (a *Aircraft) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (c *AircraftComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (v *MaintenanceVisit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
