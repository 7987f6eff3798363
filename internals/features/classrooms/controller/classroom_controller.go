package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	childModel "nestflow_backend/internals/features/children/model"
	classroomDTO "nestflow_backend/internals/features/classrooms/dto"
	classroomModel "nestflow_backend/internals/features/classrooms/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type ClassroomController struct{ DB *gorm.DB }

func NewClassroomController(db *gorm.DB) *ClassroomController {
	return &ClassroomController{DB: db}
}

var validateClassroom = validator.New()

func (h *ClassroomController) enrolledCount(classroomID uuid.UUID) (int64, error) {
	var n int64
	err := h.DB.Model(&childModel.ChildModel{}).
		Where("classroom_id = ?", classroomID).
		Count(&n).Error
	return n, err
}

// findScoped resolves a classroom within the caller's center. A wrong id and
// a cross-tenant id both come back as record-not-found.
func (h *ClassroomController) findScoped(id string, centerID uuid.UUID) (*classroomModel.ClassroomModel, error) {
	classroomID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m classroomModel.ClassroomModel
	if err := h.DB.First(&m, "id = ? AND center_id = ?", classroomID, centerID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== LIST =====================
// GET /api/classrooms
func (h *ClassroomController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var classrooms []classroomModel.ClassroomModel
	if err := h.DB.Where("center_id = ?", centerID).Order("name").Find(&classrooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*classroomDTO.ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		enrolled, err := h.enrolledCount(classrooms[i].ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
		out = append(out, classroomDTO.NewClassroomResponse(&classrooms[i], enrolled))
	}
	return helper.JsonOK(c, "OK", out)
}

// ===================== GET =====================
// GET /api/classrooms/:id
func (h *ClassroomController) GetByID(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	enrolled, err := h.enrolledCount(m.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", classroomDTO.NewClassroomResponse(m, enrolled))
}

// ===================== CREATE =====================
// POST /api/classrooms (ADMIN)
func (h *ClassroomController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req classroomDTO.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(centerID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create classroom")
	}
	return helper.JsonCreated(c, "Classroom created", classroomDTO.NewClassroomResponse(m, 0))
}

// ===================== UPDATE =====================
// PUT /api/classrooms/:id (ADMIN)
func (h *ClassroomController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req classroomDTO.UpdateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClassroom.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	req.ApplyToModel(m)
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update classroom")
	}

	enrolled, _ := h.enrolledCount(m.ID)
	return helper.JsonOK(c, "Classroom updated", classroomDTO.NewClassroomResponse(m, enrolled))
}

// ===================== DELETE =====================
// DELETE /api/classrooms/:id (ADMIN)
func (h *ClassroomController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	// Children keep their rows; they just lose the classroom reference.
	tx := h.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}
	if err := tx.Model(&childModel.ChildModel{}).
		Where("classroom_id = ?", m.ID).
		Update("classroom_id", nil).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to detach children")
	}
	if err := tx.Delete(m).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete classroom")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete classroom")
	}
	return helper.JsonOK(c, "Classroom deleted", nil)
}
