package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "nestflow_backend/internals/features/activities/model"
)

/* ===================== REQUESTS ===================== */

type CreateActivityRequest struct {
	ChildID     uuid.UUID       `json:"child_id" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=CHECK_IN CHECK_OUT PHOTO MEAL NAP INCIDENT NOTE MEDICATION"`
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty"`
	MediaURL    *string         `json:"media_url" validate:"omitempty,max=2048"`
	Metadata    *map[string]any `json:"metadata" validate:"omitempty"`
}

func (r CreateActivityRequest) ToModel(authorID uuid.UUID) *model.ActivityModel {
	m := &model.ActivityModel{
		ChildID:     r.ChildID,
		AuthorID:    &authorID,
		Type:        r.Type,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		MediaURL:    r.MediaURL,
	}
	if r.Metadata != nil {
		if raw, err := encodeMetadata(*r.Metadata); err == nil {
			m.Metadata = raw
		}
	}
	return m
}

// BulkCreate fans one logical event out into one row per child id.
type BulkCreateActivityRequest struct {
	ChildIDs    []uuid.UUID     `json:"child_ids" validate:"required,min=1,dive,required"`
	Type        string          `json:"type" validate:"required,oneof=CHECK_IN CHECK_OUT PHOTO MEAL NAP INCIDENT NOTE MEDICATION"`
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty"`
	MediaURL    *string         `json:"media_url" validate:"omitempty,max=2048"`
	Metadata    *map[string]any `json:"metadata" validate:"omitempty"`
}

func (r BulkCreateActivityRequest) ToModels(authorID uuid.UUID) []*model.ActivityModel {
	out := make([]*model.ActivityModel, 0, len(r.ChildIDs))
	for _, childID := range r.ChildIDs {
		single := CreateActivityRequest{
			ChildID:     childID,
			Type:        r.Type,
			Title:       r.Title,
			Description: r.Description,
			MediaURL:    r.MediaURL,
			Metadata:    r.Metadata,
		}
		out = append(out, single.ToModel(authorID))
	}
	return out
}

func encodeMetadata(meta map[string]any) (datatypes.JSON, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

/* ===================== QUERIES ===================== */

type ListActivityQuery struct {
	ChildID *uuid.UUID `query:"childId"`
	Limit   int        `query:"limit"`
}

/* ===================== RESPONSES ===================== */

type ActivityResponse struct {
	ID          uuid.UUID      `json:"id"`
	ChildID     uuid.UUID      `json:"child_id"`
	AuthorID    *uuid.UUID     `json:"author_id,omitempty"`
	AuthorName  string         `json:"author_name"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	MediaURL    *string        `json:"media_url,omitempty"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

func NewActivityResponse(m *model.ActivityModel, authorName string) *ActivityResponse {
	if m == nil {
		return nil
	}
	return &ActivityResponse{
		ID:          m.ID,
		ChildID:     m.ChildID,
		AuthorID:    m.AuthorID,
		AuthorName:  authorName,
		Type:        m.Type,
		Title:       m.Title,
		Description: m.Description,
		MediaURL:    m.MediaURL,
		Metadata:    m.Metadata,
		Timestamp:   m.CreatedAt,
	}
}
