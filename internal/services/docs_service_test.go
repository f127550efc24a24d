package services

import (
	"bytes"
	"context"
	"testing"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateETicket(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	res := sampleReservation("PNRE2E001")
	res.Query = models.TripQuery{
		Origin: "New Delhi", Destination: "Mumbai Central", TravelDate: "2026-09-15",
	}
	res.Class = models.SecondAC
	res.TotalFare = 2750
	res.TransactionID = "TXN1234567890"
	require.NoError(t, reg.Put(ctx, res))

	svc := DocsService{Registry: reg}
	data, filename, err := svc.GenerateETicket(ctx, "PNRE2E001")
	require.NoError(t, err)
	assert.Equal(t, "eticket-pnre2e001.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
	assert.Greater(t, len(data), 500)
}

func TestGenerateRefundReceipt(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	res := sampleReservation("PNRREF001")
	res.State = models.StatePartiallyCancelled
	res.TotalFare = 2750
	res.RefundTotal = 687
	res.Seats[0].Cancelled = true
	res.Seats[0].Refunded = 687
	require.NoError(t, reg.Put(ctx, res))

	svc := DocsService{Registry: reg}
	data, filename, err := svc.GenerateRefundReceipt(ctx, "PNRREF001")
	require.NoError(t, err)
	assert.Equal(t, "refund-pnrref001.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateRefundReceipt_NoRefund(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()
	require.NoError(t, reg.Put(ctx, sampleReservation("PNRREF002")))

	svc := DocsService{Registry: reg}
	_, _, err := svc.GenerateRefundReceipt(ctx, "PNRREF002")
	assert.True(t, domain.IsValidation(err))
}

func TestGenerateETicket_UnknownPNR(t *testing.T) {
	svc := DocsService{Registry: NewMemoryRegistry()}
	_, _, err := svc.GenerateETicket(context.Background(), "PNRNOPE01")
	assert.True(t, domain.IsNotFound(err))
}
