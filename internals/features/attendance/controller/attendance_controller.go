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
	attendanceDTO "nestflow_backend/internals/features/attendance/dto"
	attendanceModel "nestflow_backend/internals/features/attendance/model"
	childModel "nestflow_backend/internals/features/children/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type AttendanceController struct{ DB *gorm.DB }

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

var validateAttendance = validator.New()

// findChildScoped loads a child inside the caller's center. Cross-tenant
// ids come back as plain not-found.
func (h *AttendanceController) findChildScoped(tx *gorm.DB, childID, centerID uuid.UUID) (*childModel.ChildModel, error) {
	var m childModel.ChildModel
	if err := tx.First(&m, "id = ? AND center_id = ?", childID, centerID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== LIST =====================
// GET /api/attendance?childId=&date=&startDate=&endDate=
func (h *AttendanceController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	q := h.DB.Model(&attendanceModel.AttendanceModel{}).
		Joins("JOIN children ON children.id = attendance.child_id").
		Where("children.center_id = ?", centerID)

	if childID := c.Query("childId"); childID != "" {
		q = q.Where("attendance.child_id = ?", childID)
	}
	if date := c.Query("date"); date != "" {
		if day, err := time.Parse("2006-01-02", date); err == nil {
			q = q.Where("attendance.date = ?", attendanceModel.DateOnly(day))
		}
	}
	if start := c.Query("startDate"); start != "" {
		if day, err := time.Parse("2006-01-02", start); err == nil {
			q = q.Where("attendance.date >= ?", attendanceModel.DateOnly(day))
		}
	}
	if end := c.Query("endDate"); end != "" {
		if day, err := time.Parse("2006-01-02", end); err == nil {
			q = q.Where("attendance.date <= ?", attendanceModel.DateOnly(day))
		}
	}

	var records []attendanceModel.AttendanceModel
	if err := q.Order("attendance.check_in_time DESC").Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helper.JsonOK(c, "OK", attendanceDTO.NewAttendanceResponses(records))
}

// ===================== CHECK IN =====================
// POST /api/attendance/check-in
func (h *AttendanceController) CheckIn(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attendanceDTO.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ChildID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "childId is required")
	}
	if err := validateAttendance.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid childId")
	}

	now := time.Now()
	today := attendanceModel.DateOnly(now)

	var record attendanceModel.AttendanceModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		child, err := h.findChildScoped(tx, childID, centerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Child not found")
			}
			return err
		}

		// One open record per child per day. The partial unique index backs
		// this up under concurrency on Postgres.
		var open int64
		if err := tx.Model(&attendanceModel.AttendanceModel{}).
			Where("child_id = ? AND date = ? AND check_out_time IS NULL", childID, today).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return fiber.NewError(fiber.StatusConflict, "Child is already checked in")
		}

		record = attendanceModel.AttendanceModel{
			ID:           uuid.New(),
			ChildID:      childID,
			Date:         today,
			CheckInTime:  now,
			CheckedInBy:  &actorID,
			SignatureURL: req.SignatureURL,
			Notes:        req.Notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if err := tx.Model(&childModel.ChildModel{}).
			Where("id = ?", childID).
			Update("status", childModel.StatusPresent).Error; err != nil {
			return err
		}

		audit := activityModel.ActivityModel{
			ID:       uuid.New(),
			ChildID:  childID,
			AuthorID: &actorID,
			Type:     activityModel.TypeCheckIn,
			Title:    fmt.Sprintf("%s checked in", child.FirstName),
		}
		return tx.Create(&audit).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.JsonCreated(c, "Checked in", attendanceDTO.NewAttendanceResponse(record))
}

// ===================== CHECK OUT =====================
// POST /api/attendance/check-out
func (h *AttendanceController) CheckOut(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	actorID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req attendanceDTO.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ChildID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "childId is required")
	}
	if err := validateAttendance.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	childID, err := uuid.Parse(req.ChildID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid childId")
	}

	now := time.Now()
	today := attendanceModel.DateOnly(now)

	var record attendanceModel.AttendanceModel
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		child, err := h.findChildScoped(tx, childID, centerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Child not found")
			}
			return err
		}

		if err := tx.
			Where("child_id = ? AND date = ? AND check_out_time IS NULL", childID, today).
			Order("check_in_time DESC").
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "No active check-in found for today")
			}
			return err
		}

		updates := map[string]interface{}{
			"check_out_time": now,
			"checked_out_by": actorID,
		}
		if req.SignatureURL != nil {
			updates["signature_url"] = *req.SignatureURL
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}
		record.CheckOutTime = &now
		record.CheckedOutBy = &actorID

		if err := tx.Model(&childModel.ChildModel{}).
			Where("id = ?", childID).
			Update("status", childModel.StatusCheckedOut).Error; err != nil {
			return err
		}

		audit := activityModel.ActivityModel{
			ID:       uuid.New(),
			ChildID:  childID,
			AuthorID: &actorID,
			Type:     activityModel.TypeCheckOut,
			Title:    fmt.Sprintf("%s checked out", child.FirstName),
		}
		return tx.Create(&audit).Error
	})
	if txErr != nil {
		var fe *fiber.Error
		if errors.As(txErr, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.JsonOK(c, "Checked out", attendanceDTO.NewAttendanceResponse(record))
}
