package types

import (
	"time"

	"github.com/google/uuid"
)

// ValueResponse is a field value enriched with its contributor's
// display name and comment count, as the resolver and the value
// endpoints return it.
type ValueResponse struct {
	ID              uuid.UUID `json:"id"`
	PackID          uuid.UUID `json:"pack_id"`
	FieldID         uuid.UUID `json:"field_id"`
	ValueText       string    `json:"value_text"`
	ValueNumeric    *float64  `json:"value_numeric,omitempty"`
	SourceType      string    `json:"source_type"`
	SourceDetail    string    `json:"source_detail"`
	ContributedBy   uuid.UUID `json:"contributed_by"`
	ContributorName string    `json:"contributor_name,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CommentCount    int       `json:"comment_count"`
}

// ResolvedField is one field of a pack with its winning value and the
// full ranked alternative set.
type ResolvedField struct {
	FieldID          uuid.UUID       `json:"field_id"`
	FieldName        string          `json:"field_name"`
	DisplayName      string          `json:"display_name"`
	Unit             string          `json:"unit,omitempty"`
	DataType         string          `json:"data_type"`
	ResolvedValue    *ValueResponse  `json:"resolved_value,omitempty"`
	AlternativeCount int             `json:"alternative_count"`
	AllValues        []ValueResponse `json:"all_values"`
}

// DomainResolvedFields groups resolved fields under their domain.
type DomainResolvedFields struct {
	DomainID   uuid.UUID       `json:"domain_id"`
	DomainName string          `json:"domain_name"`
	SortOrder  int             `json:"sort_order"`
	Fields     []ResolvedField `json:"fields"`
}

// CompareFieldEntry is one row of the comparison table: the reference
// pack's field metadata plus each compared pack's resolved value. Packs
// missing the field map to a nil entry.
type CompareFieldEntry struct {
	FieldID      uuid.UUID                    `json:"field_id"`
	FieldName    string                       `json:"field_name"`
	DisplayName  string                       `json:"display_name"`
	Unit         string                       `json:"unit,omitempty"`
	DataType     string                       `json:"data_type"`
	ValuesByPack map[uuid.UUID]*ValueResponse `json:"values_by_pack"`
}

type CompareDomainEntry struct {
	DomainID   uuid.UUID           `json:"domain_id"`
	DomainName string              `json:"domain_name"`
	SortOrder  int                 `json:"sort_order"`
	Fields     []CompareFieldEntry `json:"fields"`
}

type CompareResponse struct {
	Packs   []PackResponse       `json:"packs"`
	Domains []CompareDomainEntry `json:"domains"`
}

// PackResponse is a pack plus its creator's display name.
type PackResponse struct {
	Pack
	CreatedByName string `json:"created_by_name,omitempty"`
}

type PackDetailResponse struct {
	PackResponse
	Domains []DomainResolvedFields `json:"domains"`
}

type PackListResponse struct {
	Items    []PackResponse `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	ValueID    uuid.UUID `json:"value_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
