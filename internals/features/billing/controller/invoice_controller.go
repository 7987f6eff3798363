package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	invoiceDTO "nestflow_backend/internals/features/billing/dto"
	invoiceModel "nestflow_backend/internals/features/billing/model"
	"nestflow_backend/internals/features/billing/service"
	childModel "nestflow_backend/internals/features/children/model"
	userModel "nestflow_backend/internals/features/users/user/model"
	helper "nestflow_backend/internals/helpers"
	helperAuth "nestflow_backend/internals/helpers/auth"
)

type InvoiceController struct{ DB *gorm.DB }

func NewInvoiceController(db *gorm.DB) *InvoiceController {
	return &InvoiceController{DB: db}
}

var validateInvoice = validator.New()

func (h *InvoiceController) childInCenter(childID, centerID uuid.UUID) error {
	var m childModel.ChildModel
	return h.DB.Select("id").First(&m, "id = ? AND center_id = ?", childID, centerID).Error
}

func (h *InvoiceController) findScoped(id string, centerID uuid.UUID) (*invoiceModel.InvoiceModel, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var m invoiceModel.InvoiceModel
	err = h.DB.
		Joins("JOIN children ON children.id = invoices.child_id").
		Where("invoices.id = ? AND children.center_id = ?", invoiceID, centerID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ===================== LIST =====================
// GET /api/billing/invoices?childId=&status=
func (h *InvoiceController) List(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	q := h.DB.Model(&invoiceModel.InvoiceModel{}).
		Joins("JOIN children ON children.id = invoices.child_id").
		Where("children.center_id = ?", centerID)
	if childID := c.Query("childId"); childID != "" {
		q = q.Where("invoices.child_id = ?", childID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("invoices.status = ?", status)
	}

	var invoices []invoiceModel.InvoiceModel
	if err := q.Order("invoices.due_date ASC").Find(&invoices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	out := make([]*invoiceDTO.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, invoiceDTO.NewInvoiceResponse(&invoices[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// ===================== CREATE =====================
// POST /api/billing/invoices
func (h *InvoiceController) Create(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req invoiceDTO.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateInvoice.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.childInCenter(m.ChildID, centerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Child not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	orderID := fmt.Sprintf("INV-%s", m.ID)
	m.OrderID = &orderID
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create invoice")
	}
	return helper.JsonCreated(c, "Invoice created", invoiceDTO.NewInvoiceResponse(m))
}

// ===================== UPDATE =====================
// PUT /api/billing/invoices/:id
func (h *InvoiceController) Update(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	var req invoiceDTO.UpdateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateInvoice.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	// PAID is terminal; a settled invoice never moves back to
	// PENDING/OVERDUE.
	if m.Status == invoiceModel.InvoicePaid && req.Status != nil && *req.Status != invoiceModel.InvoicePaid {
		return helper.JsonError(c, fiber.StatusConflict, "Invoice is already paid")
	}
	if err := req.ApplyToModel(m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update invoice")
	}
	return helper.JsonOK(c, "Invoice updated", invoiceDTO.NewInvoiceResponse(m))
}

// ===================== DELETE =====================
// DELETE /api/billing/invoices/:id
func (h *InvoiceController) Delete(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if err := h.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete invoice")
	}
	return helper.JsonOK(c, "Invoice deleted", fiber.Map{"id": m.ID})
}

// ===================== PAY =====================
// POST /api/billing/invoices/:id/pay
// Opens a Snap transaction for the invoice and hands the token back to
// the client.
func (h *InvoiceController) Pay(c *fiber.Ctx) error {
	centerID, err := helperAuth.GetCenterIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	m, err := h.findScoped(c.Params("id"), centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if m.Status == invoiceModel.InvoicePaid {
		return helper.JsonError(c, fiber.StatusConflict, "Invoice is already paid")
	}

	var payer userModel.UserModel
	if err := h.DB.First(&payer, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	input := service.PayerInput{Email: payer.Email}
	if payer.FirstName != nil {
		input.FirstName = *payer.FirstName
	}
	if payer.LastName != nil {
		input.LastName = *payer.LastName
	}

	token, redirectURL, err := service.GenerateSnapToken(*m, input)
	if err != nil {
		log.Printf("[BILLING] snap transaction failed for invoice %s: %v", m.ID, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to initiate payment")
	}

	return helper.JsonOK(c, "Payment initiated", invoiceDTO.PayInvoiceResponse{
		InvoiceID:   m.ID,
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

// ===================== WEBHOOK =====================
// POST /api/billing/notification
// Called by the payment gateway, not by users. The route is excluded from
// auth; order ids that don't resolve are acknowledged and dropped.
func (h *InvoiceController) Notification(c *fiber.Ctx) error {
	var payload struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification body")
	}
	if payload.OrderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id is required")
	}

	var m invoiceModel.InvoiceModel
	if err := h.DB.First(&m, "order_id = ?", payload.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[BILLING] notification for unknown order %s ignored", payload.OrderID)
			return helper.JsonOK(c, "OK", nil)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	if service.SettledStatus(payload.TransactionStatus, payload.FraudStatus) && m.Status != invoiceModel.InvoicePaid {
		now := time.Now()
		updates := map[string]interface{}{
			"status":  invoiceModel.InvoicePaid,
			"paid_at": now,
		}
		if err := h.DB.Model(&m).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update invoice")
		}
		log.Printf("[BILLING] invoice %s marked paid via %s", m.ID, payload.TransactionStatus)
	}

	return helper.JsonOK(c, "OK", nil)
}
