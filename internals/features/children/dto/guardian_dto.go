package dto

import (
	"strings"

	"github.com/google/uuid"

	model "nestflow_backend/internals/features/children/model"
)

type CreateGuardianRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=160"`
	Relation  string  `json:"relation" validate:"required,min=1,max=60"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Email     *string `json:"email" validate:"omitempty,email"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=2048"`
}

func (r CreateGuardianRequest) ToModel(childID uuid.UUID) *model.GuardianModel {
	return &model.GuardianModel{
		ChildID:   childID,
		Name:      strings.TrimSpace(r.Name),
		Relation:  strings.TrimSpace(r.Relation),
		Phone:     r.Phone,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
	}
}
