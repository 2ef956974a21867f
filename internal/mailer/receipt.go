package mailer

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"marathon-registration/internal/model"
)

// buildReceipt renders the bib receipt attached to the confirmation email.
func buildReceipt(p model.Participant, event Event) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("%s - Registration Receipt", event.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Name: %s", p.Name))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Chest Number: %d", p.ChestNumber))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Category: %s", p.Category))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Payment ID: %s", p.PaymentID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Event Date: %s", event.Date))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Venue: %s", event.Venue))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Issued: %s", time.Now().Format("2006-01-02 15:04:05")))

	return pdf
}
