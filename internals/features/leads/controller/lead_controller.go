package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	leadDTO "nestflow_backend/internals/features/leads/dto"
	leadModel "nestflow_backend/internals/features/leads/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type LeadController struct{ DB *gorm.DB }

func NewLeadController(db *gorm.DB) *LeadController {
	return &LeadController{DB: db}
}

var validateLead = validator.New()

func (h *LeadController) findScoped(id string, centerID uuid.UUID) (*leadModel.LeadModel, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m leadModel.LeadModel
	if err := h.DB.First(&m, "id = ? AND center_id = ?", leadID, centerID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== LIST =====================
// GET /api/leads?stage=&page=&per_page=
func (h *LeadController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&leadModel.LeadModel{}).Where("center_id = ?", centerID)
	if stage := c.Query("stage"); stage != "" {
		q = q.Where("stage = ?", stage)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var leads []leadModel.LeadModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&leads).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*leadDTO.LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, leadDTO.NewLeadResponse(&leads[i]))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== CREATE =====================
// POST /api/leads
func (h *LeadController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req leadDTO.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateLead.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(centerID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lead")
	}
	return helper.JsonCreated(c, "Lead created", leadDTO.NewLeadResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/leads/:id
// Stage moves come through here too; the pipeline imposes no ordering,
// a lead can jump straight to ENROLLED or LOST.
func (h *LeadController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lead not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var req leadDTO.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateLead.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.ApplyToModel(m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lead")
	}
	return helper.JsonOK(c, "Lead updated", leadDTO.NewLeadResponse(m))
}

// ===================== DELETE =====================
// DELETE /api/leads/:id
func (h *LeadController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lead not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lead")
	}
	return helper.JsonOK(c, "Lead deleted", fiber.Map{"id": m.ID})
}
