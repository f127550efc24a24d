package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"railbooking/internal/domain"
	"railbooking/internal/domain/models"
	"railbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders e-tickets as PDF from confirmed reservations.
type DocsService struct {
	Registry  domain.PNRRegistry
	RequestID string
}

func (s DocsService) GenerateETicket(ctx context.Context, pnr string) ([]byte, string, error) {
	res, err := s.Registry.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("pnr=%s", pnr))
	return buildETicketPDF(res)
}

func buildETicketPDF(res *models.Reservation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	train := "-"
	schedule := "-"
	if res.Train != nil {
		train = fmt.Sprintf("%s (#%s)", res.Train.Name, res.Train.Number)
		schedule = fmt.Sprintf("%s -> %s (%s)", res.Train.Departure, res.Train.Arrival, res.Train.Duration)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR            : %s", res.PNR),
		fmt.Sprintf("Booking ID     : %s", res.ID),
		fmt.Sprintf("Train          : %s", train),
		fmt.Sprintf("Route          : %s -> %s", res.Query.Origin, res.Query.Destination),
		fmt.Sprintf("Travel Date    : %s", res.Query.TravelDate),
		fmt.Sprintf("Schedule       : %s", schedule),
		fmt.Sprintf("Class          : %s", res.Class),
		fmt.Sprintf("Status         : %s", res.State),
		fmt.Sprintf("Total Fare     : %s", utils.FormatINR(int64(res.TotalFare))),
		fmt.Sprintf("Transaction    : %s", safe(res.TransactionID, "-")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Passengers")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for i, p := range res.Manifest {
		seat := "-"
		note := ""
		if i < len(res.Seats) {
			seat = res.Seats[i].SeatCode
			if res.Seats[i].Cancelled {
				note = " (cancelled)"
			}
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s, %d, %s - Seat %s%s", i+1, p.Name, p.Age, p.Gender, seat, note))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: carry the identity document used at booking. One seat per passenger.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("eticket-%s.pdf", strings.ToLower(res.PNR))
	return buf.Bytes(), filename, nil
}

// GenerateRefundReceipt renders a receipt for the cancelled passengers
// of a reservation. Fails when nothing has been refunded yet.
func (s DocsService) GenerateRefundReceipt(ctx context.Context, pnr string) ([]byte, string, error) {
	res, err := s.Registry.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, "", err
	}
	if res.RefundTotal <= 0 {
		return nil, "", domain.ValidationError{Field: "pnr", Msg: "no refund recorded for this reservation"}
	}
	utils.LogEvent(s.RequestID, "docs", "generate_refund_receipt", fmt.Sprintf("pnr=%s", pnr))
	return buildRefundReceiptPDF(res)
}

func buildRefundReceiptPDF(res *models.Reservation) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Refund Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "REFUND RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("PNR            : %s", res.PNR),
		fmt.Sprintf("Booking ID     : %s", res.ID),
		fmt.Sprintf("Status         : %s", res.State),
		fmt.Sprintf("Total Paid     : %s", utils.FormatINR(int64(res.TotalFare))),
		fmt.Sprintf("Total Refunded : %s", utils.FormatINR(int64(res.RefundTotal))),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Cancelled Passengers")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for i, p := range res.Manifest {
		if i >= len(res.Seats) || !res.Seats[i].Cancelled {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s - Seat %s - Refund %s",
			i+1, p.Name, res.Seats[i].SeatCode, utils.FormatINR(int64(res.Seats[i].Refunded))))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Refunds are credited to the original payment method within 5-7 business days.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("refund-%s.pdf", strings.ToLower(res.PNR))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
