package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "nestflow_backend/internals/features/users/auth/dto"
	userModel "nestflow_backend/internals/features/users/user/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type UserController struct{ DB *gorm.DB }

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/users — messaging contacts within the caller's center.
// Optional ?role=TEACHER filter.
func (h *UserController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	q := h.DB.Model(&userModel.UserModel{}).
		Where("center_id = ? AND is_active = ?", centerID, true)
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var users []userModel.UserModel
	if err := q.Order("first_name, last_name").Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]authDTO.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, authDTO.NewUserResponse(&users[i]))
	}
	return helper.JsonOK(c, "OK", out)
}
