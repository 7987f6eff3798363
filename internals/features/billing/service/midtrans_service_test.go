package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nestflow_backend/internals/features/billing/model"
)

func TestSettledStatus(t *testing.T) {
	assert.True(t, SettledStatus("settlement", ""))
	assert.True(t, SettledStatus("capture", "accept"))
	assert.False(t, SettledStatus("capture", "challenge"))
	assert.False(t, SettledStatus("pending", ""))
	assert.False(t, SettledStatus("deny", ""))
	assert.False(t, SettledStatus("expire", ""))
}

func TestGenerateSnapTokenValidation(t *testing.T) {
	_, _, err := GenerateSnapToken(model.InvoiceModel{Amount: 0}, PayerInput{})
	assert.Error(t, err)

	_, _, err = GenerateSnapToken(model.InvoiceModel{Amount: 100}, PayerInput{})
	assert.Error(t, err, "missing order_id must be rejected before hitting the gateway")
}
