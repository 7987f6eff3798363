package controller

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	activityDTO "nestflow_backend/internals/features/activities/dto"
	activityModel "nestflow_backend/internals/features/activities/model"
	childModel "nestflow_backend/internals/features/children/model"
	userModel "nestflow_backend/internals/features/users/user/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type ActivityController struct{ DB *gorm.DB }

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

var validateActivity = validator.New()

func (h *ActivityController) authorName(authorID *uuid.UUID) string {
	if authorID == nil {
		return ""
	}
	var u userModel.UserModel
	if err := h.DB.Select("first_name", "last_name").First(&u, "id = ?", *authorID).Error; err != nil {
		return ""
	}
	return u.FullName()
}

// childInCenter doubles as the tenant check for activity writes.
func (h *ActivityController) childInCenter(childID, centerID uuid.UUID) error {
	var m childModel.ChildModel
	return h.DB.Select("id").First(&m, "id = ? AND center_id = ?", childID, centerID).Error
}

// ===================== LIST =====================
// GET /api/activities?childId=&limit=
func (h *ActivityController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	// Tenant scope rides on the child's center, like the original JOIN.
	q := h.DB.Model(&activityModel.ActivityModel{}).
		Joins("JOIN children ON children.id = activities.child_id").
		Where("children.center_id = ?", centerID)
	if childID := c.Query("childId"); childID != "" {
		q = q.Where("activities.child_id = ?", childID)
	}

	var activities []activityModel.ActivityModel
	if err := q.Order("activities.created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*activityDTO.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, activityDTO.NewActivityResponse(&activities[i], h.authorName(activities[i].AuthorID)))
	}
	return helper.JsonOK(c, "OK", out)
}

// ===================== CREATE =====================
// POST /api/activities
func (h *ActivityController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	authorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req activityDTO.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateActivity.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := h.childInCenter(req.ChildID, centerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	m := req.ToModel(authorID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create activity")
	}
	return helper.JsonCreated(c, "Activity created", activityDTO.NewActivityResponse(m, h.authorName(m.AuthorID)))
}

// ===================== BULK CREATE =====================
// POST /api/activities/bulk — one row per tagged child, all inside a single
// transaction so a mid-loop failure leaves nothing behind.
func (h *ActivityController) BulkCreate(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	authorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req activityDTO.BulkCreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if len(req.ChildIDs) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "childIds must be a non-empty array")
	}
	if err := validateActivity.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	models := req.ToModels(authorID)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range models {
			var child childModel.ChildModel
			if err := tx.Select("id").First(&child, "id = ? AND center_id = ?", m.ChildID, centerID).Error; err != nil {
				return err
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create activities")
	}

	name := h.authorName(&authorID)
	out := make([]*activityDTO.ActivityResponse, 0, len(models))
	for _, m := range models {
		out = append(out, activityDTO.NewActivityResponse(m, name))
	}
	return helper.JsonCreated(c, "Activities created", out)
}
