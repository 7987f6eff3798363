package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "nestflow_backend/internals/features/activities/model"
	childModel "nestflow_backend/internals/features/children/model"
	healthDTO "nestflow_backend/internals/features/health/dto"
	healthModel "nestflow_backend/internals/features/health/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type HealthController struct{ DB *gorm.DB }

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

var validateHealth = validator.New()

func (h *HealthController) findChildScoped(c *fiber.Ctx) (*childModel.ChildModel, error) {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	var m childModel.ChildModel
	if err := h.DB.First(&m, "id = ? AND center_id = ?", c.Params("childId"), centerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Child not found")
		}
		return nil, err
	}
	return &m, nil
}

func (h *HealthController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// ===================== HEALTH PROFILE =====================

// GET /api/children/:childId/health
func (h *HealthController) GetProfile(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var profile healthModel.HealthProfileModel
	if err := h.DB.First(&profile, "child_id = ?", child.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No profile yet is a normal state, not an error.
			return helper.JsonOK(c, "OK", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", healthDTO.NewHealthProfileResponse(&profile))
}

// PUT /api/children/:childId/health
func (h *HealthController) UpsertProfile(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req healthDTO.UpsertHealthProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateHealth.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var profile healthModel.HealthProfileModel
	err = h.DB.First(&profile, "child_id = ?", child.ID).Error
	switch {
	case err == nil:
		req.ApplyToModel(&profile)
		if err := h.DB.Save(&profile).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update health profile")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = healthModel.HealthProfileModel{ID: uuid.New(), ChildID: child.ID}
		req.ApplyToModel(&profile)
		if err := h.DB.Create(&profile).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create health profile")
		}
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.JsonOK(c, "Health profile saved", healthDTO.NewHealthProfileResponse(&profile))
}

// ===================== IMMUNIZATIONS =====================

// GET /api/children/:childId/immunizations
func (h *HealthController) ListImmunizations(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var rows []healthModel.ImmunizationModel
	if err := h.DB.Where("child_id = ?", child.ID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	out := make([]*healthDTO.ImmunizationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, healthDTO.NewImmunizationResponse(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /api/children/:childId/immunizations
func (h *HealthController) CreateImmunization(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req healthDTO.CreateImmunizationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateHealth.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel(child.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create immunization")
	}
	return helper.JsonCreated(c, "Immunization recorded", healthDTO.NewImmunizationResponse(m))
}

// ===================== MEDICATIONS =====================

// GET /api/children/:childId/medications
func (h *HealthController) ListMedications(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var rows []healthModel.MedicationModel
	if err := h.DB.Where("child_id = ?", child.ID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	out := make([]*healthDTO.MedicationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, healthDTO.NewMedicationResponse(&rows[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /api/children/:childId/medications
func (h *HealthController) CreateMedication(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req healthDTO.CreateMedicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateHealth.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(child.ID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create medication")
	}
	return helper.JsonCreated(c, "Medication recorded", healthDTO.NewMedicationResponse(m))
}

// POST /api/children/:childId/medications/:id/administer
// Bumps last_administered and leaves a MEDICATION entry on the child's
// activity feed.
func (h *HealthController) AdministerMedication(c *fiber.Ctx) error {
	child, err := h.findChildScoped(c)
	if err != nil {
		return h.fail(c, err)
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var med healthModel.MedicationModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&med, "id = ? AND child_id = ?", c.Params("id"), child.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Medication not found")
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&med).Update("last_administered", now).Error; err != nil {
			return err
		}
		med.LastAdministered = &now

		audit := activityModel.ActivityModel{
			ID:       uuid.New(),
			ChildID:  child.ID,
			AuthorID: &actorID,
			Type:     activityModel.TypeMedication,
			Title:    fmt.Sprintf("%s administered for %s", med.Name, child.FirstName),
		}
		return tx.Create(&audit).Error
	})
	if txErr != nil {
		return h.fail(c, txErr)
	}

	return helper.JsonOK(c, "Medication administered", healthDTO.NewMedicationResponse(&med))
}
