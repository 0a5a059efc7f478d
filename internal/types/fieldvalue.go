package types

import (
	"time"

	"github.com/google/uuid"
)

// FieldValue is one contributed datum for a (pack, field) pair. Several
// rows may exist for the same pair, even from the same source type;
// ranking between them is the resolver's job. ValueNumeric is only set
// when the field is number-typed and the text parsed cleanly; the text
// may legitimately carry annotations that defeat parsing.
type FieldValue struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PackID        uuid.UUID `gorm:"type:uuid;not null;index:idx_value_pack_field,priority:1;column:pack_id" json:"pack_id"`
	Pack          *Pack     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PackID;references:ID" json:"-"`
	FieldID       uuid.UUID `gorm:"type:uuid;not null;index:idx_value_pack_field,priority:2;column:field_id" json:"field_id"`
	Field         *Field    `gorm:"constraint:OnDelete:CASCADE;foreignKey:FieldID;references:ID" json:"-"`
	ValueText     string    `gorm:"column:value_text" json:"value_text"`
	ValueNumeric  *float64  `gorm:"column:value_numeric" json:"value_numeric,omitempty"`
	SourceType    string    `gorm:"not null;index:idx_value_pack_field,priority:3;column:source_type" json:"source_type"`
	SourceDetail  string    `gorm:"not null;column:source_detail" json:"source_detail"`
	ContributedBy uuid.UUID `gorm:"type:uuid;not null;column:contributed_by" json:"contributed_by"`
	Contributor   *User     `gorm:"foreignKey:ContributedBy;references:ID" json:"-"`
	IsActive      bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (FieldValue) TableName() string {
	return "field_value"
}
