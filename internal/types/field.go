package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Field is one attribute within a domain. SelectOptions holds the
// allowed strings (JSON array) when DataType is "select".
type Field struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DomainID      uuid.UUID      `gorm:"type:uuid;not null;index;column:domain_id;uniqueIndex:uq_domain_field_name,priority:1" json:"domain_id"`
	Domain        *Domain        `gorm:"constraint:OnDelete:CASCADE;foreignKey:DomainID;references:ID" json:"-"`
	Name          string         `gorm:"not null;column:name;uniqueIndex:uq_domain_field_name,priority:2" json:"name"`
	DisplayName   string         `gorm:"not null;column:display_name" json:"display_name"`
	Unit          string         `gorm:"column:unit" json:"unit"`
	DataType      string         `gorm:"not null;default:text;column:data_type" json:"data_type"`
	SelectOptions datatypes.JSON `gorm:"column:select_options" json:"select_options,omitempty"`
	SortOrder     int            `gorm:"not null;default:0;column:sort_order" json:"sort_order"`
	Description   string         `gorm:"column:description" json:"description"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	IsActive      bool           `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
}

func (Field) TableName() string {
	return "field"
}
