package types

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a metadata row pointing at an externally stored file.
// The backend does not serve or store file bytes itself.
type Attachment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PackID           *uuid.UUID `gorm:"type:uuid;index;column:pack_id" json:"pack_id,omitempty"`
	FieldID          *uuid.UUID `gorm:"type:uuid;index;column:field_id" json:"field_id,omitempty"`
	DomainID         *uuid.UUID `gorm:"type:uuid;column:domain_id" json:"domain_id,omitempty"`
	FileType         string     `gorm:"not null;column:file_type" json:"file_type"`
	FilePath         string     `gorm:"not null;column:file_path" json:"file_path"`
	OriginalFilename string     `gorm:"not null;column:original_filename" json:"original_filename"`
	FileSizeBytes    *int64     `gorm:"column:file_size_bytes" json:"file_size_bytes,omitempty"`
	UploadedBy       uuid.UUID  `gorm:"type:uuid;not null;column:uploaded_by" json:"uploaded_by"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachment"
}
