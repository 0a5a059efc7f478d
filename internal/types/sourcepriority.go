package types

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SourcePriority is one user's trust ranking over the source types,
// stored as a JSON array of the 8 source-type strings. Writes are
// validated as an exact permutation of SourceTypes before persisting.
type SourcePriority struct {
	UserID        uuid.UUID      `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PriorityOrder datatypes.JSON `gorm:"not null;column:priority_order" json:"priority_order"`
}

func (SourcePriority) TableName() string {
	return "source_priority"
}

// SourcePriorityResponse is the decoded form returned by the
// preferences endpoints.
type SourcePriorityResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	PriorityOrder []string  `json:"priority_order"`
}
