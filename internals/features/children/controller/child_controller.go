package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityModel "nestflow_backend/internals/features/activities/model"
	attendanceModel "nestflow_backend/internals/features/attendance/model"
	billingModel "nestflow_backend/internals/features/billing/model"
	childDTO "nestflow_backend/internals/features/children/dto"
	childModel "nestflow_backend/internals/features/children/model"
	classroomModel "nestflow_backend/internals/features/classrooms/model"
	consentModel "nestflow_backend/internals/features/consents/model"
	healthModel "nestflow_backend/internals/features/health/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type ChildController struct{ DB *gorm.DB }

func NewChildController(db *gorm.DB) *ChildController {
	return &ChildController{DB: db}
}

var validateChild = validator.New()

// FindScoped resolves a child within the caller's center. Wrong id and
// cross-tenant id both surface as record-not-found.
func (h *ChildController) FindScoped(id string, centerID uuid.UUID) (*childModel.ChildModel, error) {
	childID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m childModel.ChildModel
	if err := h.DB.First(&m, "id = ? AND center_id = ?", childID, centerID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *ChildController) classroomName(classroomID *uuid.UUID) *string {
	if classroomID == nil {
		return nil
	}
	var classroom classroomModel.ClassroomModel
	if err := h.DB.Select("name").First(&classroom, "id = ?", *classroomID).Error; err != nil {
		return nil
	}
	return &classroom.Name
}

// ===================== LIST =====================
// GET /api/children?classroomId=&page=&per_page=
func (h *ChildController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&childModel.ChildModel{}).Where("center_id = ?", centerID)
	if classroomID := c.Query("classroomId"); classroomID != "" {
		q = q.Where("classroom_id = ?", classroomID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var children []childModel.ChildModel
	if err := q.Order("first_name, last_name").Limit(p.Limit).Offset(p.Offset).Find(&children).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*childDTO.ChildResponse, 0, len(children))
	for i := range children {
		out = append(out, childDTO.NewChildResponse(&children[i], h.classroomName(children[i].ClassroomID)))
	}
	return helper.JsonList(c, "OK", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// ===================== GET =====================
// GET /api/children/:id
func (h *ChildController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.FindScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", childDTO.NewChildResponse(m, h.classroomName(m.ClassroomID)))
}

// ===================== CREATE =====================
// POST /api/children (ADMIN, TEACHER)
func (h *ChildController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req childDTO.CreateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateChild.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(centerID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create child")
	}
	return helper.JsonCreated(c, "Child created", childDTO.NewChildResponse(m, h.classroomName(m.ClassroomID)))
}

// ===================== UPDATE =====================
// PUT /api/children/:id (ADMIN, TEACHER)
func (h *ChildController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req childDTO.UpdateChildRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateChild.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.FindScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update child")
	}
	return helper.JsonOK(c, "Child updated", childDTO.NewChildResponse(m, h.classroomName(m.ClassroomID)))
}

// ===================== DELETE =====================
// DELETE /api/children/:id (ADMIN)
// Child-scoped rows go with the child, all in one transaction.
func (h *ChildController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.FindScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, step := range []error{
			tx.Where("child_id = ?", m.ID).Delete(&activityModel.ActivityModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&attendanceModel.AttendanceModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&childModel.GuardianModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&billingModel.InvoiceModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&consentModel.SignedConsentFormModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&healthModel.ImmunizationModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&healthModel.MedicationModel{}).Error,
			tx.Where("child_id = ?", m.ID).Delete(&healthModel.HealthProfileModel{}).Error,
		} {
			if step != nil {
				return step
			}
		}
		return tx.Delete(m).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete child")
	}
	return helper.JsonOK(c, "Child deleted", nil)
}
