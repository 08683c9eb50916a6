// Package receipt renders payment receipts for bookings as PDF.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

type Data struct {
	Booking   *entity.Booking
	Payments  []*entity.Payment
	TotalPaid decimal.Decimal
	Remaining decimal.Decimal
	IssuedAt  time.Time
}

// Build returns the PDF bytes and a download filename.
func Build(d Data) ([]byte, string, error) {
	if d.Booking == nil {
		return nil, "", fmt.Errorf("receipt: booking is required")
	}
	if d.IssuedAt.IsZero() {
		d.IssuedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	b := d.Booking
	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		"Booking Code   : " + b.CodeBooking,
		"Issued         : " + d.IssuedAt.Format("2006-01-02 15:04"),
		"Rental Period  : " + b.StartDate.Format("2006-01-02") + " - " + b.EndDate.Format("2006-01-02"),
		"Booking Status : " + string(b.Status),
		"Payment Status : " + string(b.PaymentStatus),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 8, "Date", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Method", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, p := range d.Payments {
		method := string(p.PaymentMethod)
		if p.BankName != nil && *p.BankName != "" {
			method += " (" + *p.BankName + ")"
		}
		pdf.CellFormat(40, 7, p.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 7, method, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, string(p.Status), "1", 0, "", false, 0, "")
		pdf.CellFormat(50, 7, utils.FormatRupiah(p.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	totals := [][2]string{
		{"Total Amount", utils.FormatRupiah(b.TotalAmount)},
		{"Total Paid", utils.FormatRupiah(d.TotalPaid)},
		{"Remaining", utils.FormatRupiah(d.Remaining)},
	}
	for _, row := range totals {
		pdf.CellFormat(130, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, row[1], "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}

	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", b.CodeBooking), nil
}
