package types

import (
	"time"

	"github.com/google/uuid"
)

// Domain groups related fields ("Cell", "Housing", ...). SortOrder
// gives the stable display order used by the resolver output.
type Domain struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	SortOrder   int        `gorm:"not null;default:0;column:sort_order" json:"sort_order"`
	IsDefault   bool       `gorm:"not null;default:false;column:is_default" json:"is_default"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
}

func (Domain) TableName() string {
	return "domain"
}
