package types

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ValueID   uuid.UUID   `gorm:"type:uuid;not null;index;column:value_id" json:"value_id"`
	Value     *FieldValue `gorm:"constraint:OnDelete:CASCADE;foreignKey:ValueID;references:ID" json:"-"`
	AuthorID  uuid.UUID   `gorm:"type:uuid;not null;column:author_id" json:"author_id"`
	Author    *User       `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
	Text      string      `gorm:"not null;column:text" json:"text"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}

func (Comment) TableName() string {
	return "comment"
}
