package types

import (
	"time"

	"github.com/google/uuid"
)

type Component struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	ComponentType string     `gorm:"column:component_type" json:"component_type"`
	Description   string     `gorm:"column:description" json:"description"`
	CreatedBy     *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
}

func (Component) TableName() string {
	return "component"
}

// PackComponent links a component into a pack, optionally under a
// specific domain.
type PackComponent struct {
	PackID      uuid.UUID  `gorm:"type:uuid;primaryKey;column:pack_id" json:"pack_id"`
	ComponentID uuid.UUID  `gorm:"type:uuid;primaryKey;column:component_id" json:"component_id"`
	DomainID    *uuid.UUID `gorm:"type:uuid;column:domain_id" json:"domain_id,omitempty"`
	Notes       string     `gorm:"column:notes" json:"notes"`
}

func (PackComponent) TableName() string {
	return "pack_component"
}
