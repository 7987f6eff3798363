package dto

import (
	"github.com/google/uuid"

	userModel "nestflow_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=6"`
	Role      string     `json:"role" validate:"required,oneof=ADMIN TEACHER PARENT"`
	FirstName *string    `json:"first_name" validate:"omitempty,max=80"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=80"`
	CenterID  *uuid.UUID `json:"center_id" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	CenterID  *uuid.UUID `json:"center_id,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func NewUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
		CenterID:  u.CenterID,
	}
}
