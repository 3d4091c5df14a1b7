// Package pdf renders printable invoices. It is a presentation
// collaborator with a single contract: Render(invoice, client,
// settings) returns PDF bytes. Page layout details are deliberately
// plain; the computation engine never depends on this package.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/money"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

const dateLayout = "02.01.2006"

// Render produces a printable A4 invoice.
func Render(inv *model.Invoice, client *model.Client, cfg settings.Settings) ([]byte, error) {
	if inv == nil {
		return nil, model.NewBuildError("invoice", "invoice is required")
	}
	if client == nil {
		return nil, model.NewBuildError("client", "client is required")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 12, 15)
	pdf.AddPage()

	// Header: company left, invoice identity right
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(110, 7, tr(cfg.CompanyName), "", 0, "L", false, 0, "")
	pdf.SetTextColor(29, 78, 216)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 7, tr("RĒĶINS"), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(110, 5, tr(cfg.LegalAddress), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 5, inv.InvoiceNumber, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	reg := ""
	if cfg.RegNumber != "" {
		reg = tr("Reģ. nr. ") + cfg.RegNumber
	}
	pdf.CellFormat(110, 5, reg, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Datums: ")+inv.Date.Format(dateLayout), "", 1, "R", false, 0, "")

	vat := ""
	if cfg.VATNumber != "" {
		vat = tr("PVN nr. ") + cfg.VATNumber
	}
	pdf.CellFormat(110, 5, vat, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Apmaksas termiņš: ")+inv.DueDate.Format(dateLayout), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Client block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, tr("Maksātājs:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, tr(client.Name), "", 1, "L", false, 0, "")
	if client.RegNumber != "" {
		pdf.CellFormat(0, 5, tr("Reģ. nr. ")+client.RegNumber, "", 1, "L", false, 0, "")
	}
	if client.VATNumber != "" {
		pdf.CellFormat(0, 5, tr("PVN nr. ")+client.VATNumber, "", 1, "L", false, 0, "")
	}
	if client.LegalAddress != "" {
		addr := client.LegalAddress
		if client.PostalCode != "" {
			addr += ", " + client.PostalCode
		}
		pdf.CellFormat(0, 5, tr(addr), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Item table
	colWidths := []float64{78, 18, 20, 24, 16, 24}
	headers := []string{"Apraksts", "Vienība", "Daudzums", "Cena EUR", "PVN %", "Summa EUR"}

	pdf.SetFillColor(29, 78, 216)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for i := range inv.Items {
		item := &inv.Items[i]
		pdf.CellFormat(colWidths[0], 6, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 6, tr(item.Unit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 6, item.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 6, money.Format(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 6, item.VATRate.StringFixed(0), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 6, money.Format(item.Total()), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// Totals
	label := func(s string) {
		pdf.CellFormat(140, 6, tr(s), "", 0, "R", false, 0, "")
	}
	subtotal := inv.Subtotal()
	vatAmount := inv.VATAmount()
	grand := inv.GrandTotal()

	pdf.SetFont("Helvetica", "", 10)
	label("Summa bez PVN:")
	pdf.CellFormat(40, 6, money.Format(subtotal)+" EUR", "", 1, "R", false, 0, "")
	label("PVN:")
	pdf.CellFormat(40, 6, money.Format(vatAmount)+" EUR", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	label(tr("Kopā apmaksai:"))
	pdf.CellFormat(40, 7, money.Format(grand)+" EUR", "", 1, "R", false, 0, "")
	pdf.Ln(2)

	grandFloat, _ := grand.Float64()
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Summa vārdiem: %s", AmountInWordsLV(grandFloat))), "", "L", false)
	pdf.Ln(4)

	// Bank details
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, tr("Rekvizīti:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if cfg.Bank1Name != "" || cfg.Bank1Account != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  %s  %s", cfg.Bank1Name, cfg.Bank1SWIFT, cfg.Bank1Account)), "", 1, "L", false, 0, "")
	}
	if cfg.Bank2Name != "" || cfg.Bank2Account != "" {
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  %s  %s", cfg.Bank2Name, cfg.Bank2SWIFT, cfg.Bank2Account)), "", 1, "L", false, 0, "")
	}

	if inv.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
	}

	if inv.IssuerName != "" {
		pdf.Ln(8)
		pdf.CellFormat(0, 5, tr("Izrakstīja: ")+tr(inv.IssuerName), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
