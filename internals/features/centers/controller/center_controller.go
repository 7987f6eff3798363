package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	centerDTO "nestflow_backend/internals/features/centers/dto"
	centerModel "nestflow_backend/internals/features/centers/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type CenterController struct{ DB *gorm.DB }

func NewCenterController(db *gorm.DB) *CenterController {
	return &CenterController{DB: db}
}

var validateCenter = validator.New()

// GET /api/centers/me
func (h *CenterController) GetMine(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var center centerModel.CenterModel
	if err := h.DB.First(&center, "id = ?", centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", center)
}

// PUT /api/centers/me (ADMIN)
func (h *CenterController) UpdateMine(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req centerDTO.UpdateCenterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateCenter.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var center centerModel.CenterModel
	if err := h.DB.First(&center, "id = ?", centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	req.ApplyToModel(&center)
	if err := h.DB.Save(&center).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update center")
	}
	return helper.JsonOK(c, "Center updated", center)
}
