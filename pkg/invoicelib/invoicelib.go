// Package invoicelib provides a public API for the invoice computation
// and e-invoice generation engine.
//
// This package exposes the core types for computing invoice totals,
// allocating invoice numbers, and generating UBL 2.1 / PEPPOL BIS
// Billing 3.0 e-invoice XML.
//
// Example usage:
//
//	doc, err := invoicelib.Build(invoice, client, settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := invoicelib.Serialize(doc)
package invoicelib

import (
	"github.com/rigalabs/invoice-manager/internal/einvoice"
	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/numbering"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

// Re-export core types for the public API
type (
	Invoice  = model.Invoice
	LineItem = model.LineItem
	Client   = model.Client
	Settings = settings.Settings
	Document = einvoice.Document
)

// Re-export invoice status values
const (
	StatusSent = model.StatusSent
	StatusPaid = model.StatusPaid
)

// Re-export e-invoice identifiers
const (
	CustomizationID = einvoice.CustomizationID
	ProfileID       = einvoice.ProfileID
	InvoiceTypeCode = einvoice.InvoiceTypeCode
	CurrencyEUR     = einvoice.CurrencyEUR
)

// Re-export error types
type (
	NumberFormatError    = model.NumberFormatError
	DuplicateNumberError = model.DuplicateNumberError
	BuildError           = model.BuildError
)

// Build assembles the UBL document tree for one invoice.
func Build(inv *Invoice, client *Client, cfg Settings) (*Document, error) {
	return einvoice.Build(inv, client, cfg)
}

// Serialize renders a document tree to e-invoice XML bytes.
func Serialize(doc *Document) ([]byte, error) {
	return einvoice.Serialize(doc)
}

// Generate builds and serializes in one step.
func Generate(inv *Invoice, client *Client, cfg Settings) ([]byte, error) {
	return einvoice.Generate(inv, client, cfg)
}

// NextNumber computes the next invoice number for a prefix given a
// lookup into the invoice history.
func NextNumber(prefix string, last numbering.LastNumberFunc) (string, error) {
	return numbering.Next(prefix, last)
}
