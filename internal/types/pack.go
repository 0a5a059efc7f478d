package types

import (
	"time"

	"github.com/google/uuid"
)

// Pack is one identified vehicle battery-pack configuration. The
// (oem, model, variant, year, market) tuple is its natural identity.
// Packs are never hard-deleted; IsActive=false hides them everywhere.
type Pack struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OEM          string     `gorm:"not null;column:oem;uniqueIndex:uq_pack_identity,priority:1" json:"oem"`
	Model        string     `gorm:"not null;column:model;uniqueIndex:uq_pack_identity,priority:2" json:"model"`
	Variant      string     `gorm:"column:variant;uniqueIndex:uq_pack_identity,priority:3" json:"variant"`
	Year         int        `gorm:"not null;column:year;uniqueIndex:uq_pack_identity,priority:4" json:"year"`
	Market       string     `gorm:"column:market;uniqueIndex:uq_pack_identity,priority:5" json:"market"`
	FuelType     string     `gorm:"column:fuel_type" json:"fuel_type"`
	VehicleClass string     `gorm:"column:vehicle_class" json:"vehicle_class"`
	Drivetrain   string     `gorm:"column:drivetrain" json:"drivetrain"`
	Platform     string     `gorm:"column:platform" json:"platform"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid;index;column:created_by" json:"created_by,omitempty"`
	Creator      *User      `gorm:"foreignKey:CreatedBy;references:ID" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (Pack) TableName() string {
	return "pack"
}
