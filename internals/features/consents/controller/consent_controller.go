package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	childModel "nestflow_backend/internals/features/children/model"
	consentDTO "nestflow_backend/internals/features/consents/dto"
	consentModel "nestflow_backend/internals/features/consents/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type ConsentController struct{ DB *gorm.DB }

func NewConsentController(db *gorm.DB) *ConsentController {
	return &ConsentController{DB: db}
}

var validateConsent = validator.New()

// ===================== TEMPLATES =====================

// GET /api/consents/templates
func (h *ConsentController) ListTemplates(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var templates []consentModel.ConsentTemplateModel
	if err := h.DB.
		Where("center_id = ?", centerID).
		Order("created_at ASC").
		Find(&templates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*consentDTO.TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, consentDTO.NewTemplateResponse(&templates[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /api/consents/templates
func (h *ConsentController) CreateTemplate(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req consentDTO.CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateConsent.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(centerID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create template")
	}
	return helper.JsonCreated(c, "Template created", consentDTO.NewTemplateResponse(m))
}

// ===================== SIGNED FORMS =====================

// GET /api/consents/forms?childId=
func (h *ConsentController) ListForms(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	q := h.DB.Model(&consentModel.SignedConsentFormModel{}).
		Joins("JOIN children ON children.id = signed_consent_forms.child_id").
		Where("children.center_id = ?", centerID)
	if childID := c.Query("childId"); childID != "" {
		q = q.Where("signed_consent_forms.child_id = ?", childID)
	}

	var forms []consentModel.SignedConsentFormModel
	if err := q.Order("signed_consent_forms.created_at ASC").Find(&forms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*consentDTO.SignedFormResponse, 0, len(forms))
	for i := range forms {
		out = append(out, consentDTO.NewSignedFormResponse(&forms[i], h.templateTitle(forms[i].TemplateID)))
	}
	return helper.JsonOK(c, "OK", out)
}

func (h *ConsentController) templateTitle(templateID uuid.UUID) string {
	var t consentModel.ConsentTemplateModel
	if err := h.DB.Select("title").First(&t, "id = ?", templateID).Error; err != nil {
		return ""
	}
	return t.Title
}

// POST /api/consents/forms/sign
// Signing is an upsert on (child, template): a second signature replaces
// the first rather than stacking a new row.
func (h *ConsentController) Sign(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req consentDTO.SignConsentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateConsent.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid childId")
	}
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid templateId")
	}

	var form consentModel.SignedConsentFormModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var child childModel.ChildModel
		if err := tx.Select("id").First(&child, "id = ? AND center_id = ?", childID, centerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Child not found")
			}
			return err
		}
		var template consentModel.ConsentTemplateModel
		if err := tx.Select("id").First(&template, "id = ? AND center_id = ?", templateID, centerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Template not found")
			}
			return err
		}

		now := time.Now()
		err := tx.First(&form, "child_id = ? AND template_id = ?", childID, templateID).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"status":        consentModel.ConsentSigned,
				"signed_by":     userID,
				"signed_at":     now,
				"signature_url": req.SignatureURL,
			}
			if err := tx.Model(&form).Updates(updates).Error; err != nil {
				return err
			}
			form.Status = consentModel.ConsentSigned
			form.SignedBy = &userID
			form.SignedAt = &now
			form.SignatureURL = req.SignatureURL
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			form = consentModel.SignedConsentFormModel{
				ID:           uuid.New(),
				ChildID:      childID,
				TemplateID:   templateID,
				Status:       consentModel.ConsentSigned,
				SignedBy:     &userID,
				SignedAt:     &now,
				SignatureURL: req.SignatureURL,
			}
			return tx.Create(&form).Error
		default:
			return err
		}
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.JsonOK(c, "Consent signed", consentDTO.NewSignedFormResponse(&form, h.templateTitle(templateID)))
}
