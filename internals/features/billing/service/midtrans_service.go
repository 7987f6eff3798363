package service

import (
	"errors"
	"math"
	"os"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"nestflow_backend/internals/features/billing/model"
)

var SnapClient snap.Client

// InitMidtrans must run during bootstrap before any invoice can be paid.
// MIDTRANS_PRODUCTION=true switches off the sandbox.
func InitMidtrans(serverKey string) {
	if os.Getenv("MIDTRANS_PRODUCTION") == "true" {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type PayerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// GenerateSnapToken opens a Midtrans Snap transaction for the invoice,
// using the invoice's OrderID as the gateway order id.
func GenerateSnapToken(inv model.InvoiceModel, payer PayerInput) (string, string, error) {
	if inv.Amount <= 0 {
		return "", "", errors.New("invalid invoice amount")
	}
	if inv.OrderID == nil || *inv.OrderID == "" {
		return "", "", errors.New("invoice order_id is required")
	}

	gross := int64(math.Round(inv.Amount))
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *inv.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payer.FirstName,
			LName: payer.LastName,
			Email: payer.Email,
			Phone: payer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       inv.ID.String(),
				Price:    gross,
				Qty:      1,
				Name:     truncate(inv.Title, 50),
				Category: "Tuition",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// SettledStatus reports whether a gateway notification means the invoice
// is paid. Capture only counts when fraud screening accepted it.
func SettledStatus(transactionStatus, fraudStatus string) bool {
	switch transactionStatus {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "accept"
	default:
		return false
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
