// Package model defines the persistent entities of the invoice manager:
// clients, the service catalog, invoices with their line items, issuer
// settings rows, and user accounts.
//
// Monetary totals are always derived from line items via the money
// package, never stored. An invoice's subtotal, VAT amount, and grand
// total are recomputed on every read so they cannot desynchronize.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rigalabs/invoice-manager/internal/money"
)

// Invoice status values. Draft was removed; invoices are created as sent.
const (
	StatusSent = "sent"
	StatusPaid = "paid"
)

// User is an application operator account.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Setting is one issuer settings row, stored as a key-value pair.
type Setting struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// Client is an invoice recipient.
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	RegNumber    string    `gorm:"size:50" json:"reg_number"`
	VATNumber    string    `gorm:"size:50" json:"vat_number"`
	LegalAddress string    `gorm:"size:500" json:"legal_address"`
	PostalCode   string    `gorm:"size:20" json:"postal_code"`
	BankName     string    `gorm:"size:255" json:"bank_name"`
	BankSWIFT    string    `gorm:"size:20" json:"bank_swift"`
	BankAccount  string    `gorm:"size:50" json:"bank_account"`
	Email        string    `gorm:"size:255" json:"email"`
	CreatedAt    time.Time `json:"created_at"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`
}

// Service is a predefined catalog entry used to prefill invoice lines.
type Service struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:500;not null" json:"name"`
	Unit         string          `gorm:"size:50;default:gab." json:"unit"`
	DefaultPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"default_price"`
	VATRate      decimal.Decimal `gorm:"type:decimal(5,2);default:21" json:"vat_rate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Invoice is one issued invoice. Line items are owned exclusively by
// the invoice and are deleted with it.
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"size:20;uniqueIndex;not null" json:"invoice_number"`
	ClientID      uint      `gorm:"not null" json:"client_id"`
	Date          time.Time `gorm:"type:date;not null" json:"date"`
	DueDate       time.Time `gorm:"type:date;not null" json:"due_date"`
	IssuerName    string    `gorm:"size:255" json:"issuer_name"`
	Notes         string    `gorm:"type:text" json:"notes"`
	Status        string    `gorm:"size:20;default:sent" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []LineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"-"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Unit        string          `gorm:"size:50;default:gab." json:"unit"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"vat_rate"`
}

// Total returns quantity * unit price, rounded to cents.
func (li *LineItem) Total() decimal.Decimal {
	return money.LineTotal(li.Quantity, li.UnitPrice)
}

// VATAmount returns the line VAT, rounded to cents.
func (li *LineItem) VATAmount() decimal.Decimal {
	return money.LineVAT(li.Total(), li.VATRate)
}

// TotalWithVAT returns the line total including VAT, rounded to cents.
func (li *LineItem) TotalWithVAT() decimal.Decimal {
	return money.LineTotalWithVAT(li.Total(), li.VATAmount())
}

// Subtotal sums the rounded line totals.
func (inv *Invoice) Subtotal() decimal.Decimal {
	totals := make([]decimal.Decimal, 0, len(inv.Items))
	for i := range inv.Items {
		totals = append(totals, inv.Items[i].Total())
	}
	return money.Sum(totals)
}

// VATAmount sums the rounded per-line VAT amounts. Mixed rates are
// supported; each line carries its own rate.
func (inv *Invoice) VATAmount() decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for i := range inv.Items {
		amounts = append(amounts, inv.Items[i].VATAmount())
	}
	return money.Sum(amounts)
}

// GrandTotal returns subtotal + VAT amount.
func (inv *Invoice) GrandTotal() decimal.Decimal {
	return money.Round2(inv.Subtotal().Add(inv.VATAmount()))
}
