package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	childDTO "nestflow_backend/internals/features/children/dto"
	childModel "nestflow_backend/internals/features/children/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

// GuardianController rides on the child controller's tenant scoping.
type GuardianController struct{ DB *gorm.DB }

func NewGuardianController(db *gorm.DB) *GuardianController {
	return &GuardianController{DB: db}
}

// GET /api/children/:id/guardians
func (h *GuardianController) ListForChild(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	children := ChildController{DB: h.DB}
	child, err := children.FindScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var guardians []childModel.GuardianModel
	if err := h.DB.Where("child_id = ?", child.ID).Order("name").Find(&guardians).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", guardians)
}

// POST /api/children/:id/guardians (ADMIN, TEACHER)
func (h *GuardianController) CreateForChild(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	children := ChildController{DB: h.DB}
	child, err := children.FindScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var req childDTO.CreateGuardianRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateChild.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(child.ID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create guardian")
	}
	return helper.JsonCreated(c, "Guardian created", m)
}
