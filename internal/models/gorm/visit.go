package gorm

import (
	"time"

	"github.com/shopspring/decimal"

	"skybound/flightline/internal/caldate"
	"skybound/flightline/internal/constants"
)

type MaintenanceVisit struct {
	ID                   string              `gorm:"column:id;primaryKey"`
	AircraftID           string              `gorm:"column:aircraft_id;type:uuid;index"`
	ComponentID          *string             `gorm:"column:component_id;type:uuid;index"`
	VisitDate            caldate.Date        `gorm:"column:visit_date;type:date"`
	VisitType            constants.VisitType `gorm:"column:visit_type"`
	Description          string              `gorm:"column:description"`
	TotalCost            *decimal.Decimal    `gorm:"column:total_cost;type:decimal(10,2)"`
	HoursAtVisit         *float64            `gorm:"column:hours_at_visit"`
	Notes                *string             `gorm:"column:notes"`
	DateOutOfMaintenance *caldate.Date       `gorm:"column:date_out_of_maintenance;type:date"`
	ComponentDueHours    *float64            `gorm:"column:component_due_hours"`
	ComponentDueDate     *caldate.Date       `gorm:"column:component_due_date;type:date"`
	NextDueHours         *float64            `gorm:"column:next_due_hours"`
	NextDueDate          *caldate.Date       `gorm:"column:next_due_date;type:date"`
	CreatedAt            time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (MaintenanceVisit) TableName() string {
	return "maintenance_visits"
}
