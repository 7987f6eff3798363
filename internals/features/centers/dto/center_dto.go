package dto

import (
	"strings"

	model "nestflow_backend/internals/features/centers/model"
)

type UpdateCenterRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=160"`
	Address *string `json:"address" validate:"omitempty"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// ApplyToModel applies only the fields that were sent.
func (r *UpdateCenterRequest) ApplyToModel(m *model.CenterModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		m.Address = trimPtr(*r.Address)
	}
	if r.Phone != nil {
		m.Phone = trimPtr(*r.Phone)
	}
	if r.Email != nil {
		m.Email = trimPtr(*r.Email)
	}
}

func trimPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
