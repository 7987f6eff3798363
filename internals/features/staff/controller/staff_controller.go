package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	staffDTO "nestflow_backend/internals/features/staff/dto"
	staffModel "nestflow_backend/internals/features/staff/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type StaffController struct{ DB *gorm.DB }

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

var validateStaff = validator.New()

func (h *StaffController) findScoped(id string, centerID uuid.UUID) (*staffModel.StaffMemberModel, error) {
	var m staffModel.StaffMemberModel
	if err := h.DB.First(&m, "id = ? AND center_id = ?", id, centerID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== LIST =====================
// GET /api/staff
func (h *StaffController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var staff []staffModel.StaffMemberModel
	if err := h.DB.
		Where("center_id = ?", centerID).
		Order("last_name ASC, first_name ASC").
		Find(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*staffDTO.StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, staffDTO.NewStaffResponse(&staff[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// ===================== GET BY ID =====================
// GET /api/staff/:id
func (h *StaffController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", staffDTO.NewStaffResponse(m))
}

// ===================== CREATE =====================
// POST /api/staff
func (h *StaffController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req staffDTO.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStaff.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel(centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create staff member")
	}
	return helper.JsonCreated(c, "Staff member created", staffDTO.NewStaffResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/staff/:id
func (h *StaffController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var req staffDTO.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateStaff.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.ApplyToModel(m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update staff member")
	}
	return helper.JsonOK(c, "Staff member updated", staffDTO.NewStaffResponse(m))
}

// ===================== DELETE =====================
// DELETE /api/staff/:id
func (h *StaffController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Staff member not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete staff member")
	}
	return helper.JsonOK(c, "Staff member deleted", fiber.Map{"id": m.ID})
}
