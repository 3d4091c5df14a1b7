package server

import (
	"github.com/shopspring/decimal"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/money"
)

// LoginRequest is the credentials payload for /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ClientRequest is the create/update payload for clients.
type ClientRequest struct {
	Name         string `json:"name" binding:"required"`
	RegNumber    string `json:"reg_number"`
	VATNumber    string `json:"vat_number"`
	LegalAddress string `json:"legal_address"`
	PostalCode   string `json:"postal_code"`
	BankName     string `json:"bank_name"`
	BankSWIFT    string `json:"bank_swift"`
	BankAccount  string `json:"bank_account"`
	Email        string `json:"email"`
}

// ServiceRequest is the create/update payload for catalog entries.
type ServiceRequest struct {
	Name         string          `json:"name" binding:"required"`
	Unit         string          `json:"unit"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	VATRate      decimal.Decimal `json:"vat_rate"`
}

// LineItemRequest is one invoice line in a create/update payload.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// InvoiceCreateRequest is the payload for creating an invoice. The
// invoice number is allocated server-side, never supplied.
type InvoiceCreateRequest struct {
	ClientID   uint              `json:"client_id" binding:"required"`
	Date       string            `json:"date" binding:"required"`
	DueDate    string            `json:"due_date" binding:"required"`
	IssuerName string            `json:"issuer_name"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items" binding:"required"`
}

// InvoiceUpdateRequest is the payload for updating an invoice. A nil
// Items slice leaves line items unchanged.
type InvoiceUpdateRequest struct {
	ClientID   *uint             `json:"client_id"`
	Date       *string           `json:"date"`
	DueDate    *string           `json:"due_date"`
	IssuerName *string           `json:"issuer_name"`
	Notes      *string           `json:"notes"`
	Status     *string           `json:"status"`
	Items      []LineItemRequest `json:"items"`
}

// BulkIDsRequest selects invoices by id for bulk operations.
type BulkIDsRequest struct {
	InvoiceIDs []uint `json:"invoice_ids" binding:"required"`
}

// EmailRequest is the payload for emailing an invoice.
type EmailRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
}

// ProfileUpdateRequest updates the operator account.
type ProfileUpdateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// lineItemJSON is a line item with its derived amounts.
type lineItemJSON struct {
	ID           uint   `json:"id"`
	Description  string `json:"description"`
	Unit         string `json:"unit"`
	Quantity     string `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	VATRate      string `json:"vat_rate"`
	Total        string `json:"total"`
	VATAmount    string `json:"vat_amount"`
	TotalWithVAT string `json:"total_with_vat"`
}

// invoiceJSON is an invoice with client, items, and derived totals.
type invoiceJSON struct {
	ID            uint           `json:"id"`
	InvoiceNumber string         `json:"invoice_number"`
	ClientID      uint           `json:"client_id"`
	Client        *model.Client  `json:"client,omitempty"`
	Date          string         `json:"date"`
	DueDate       string         `json:"due_date"`
	IssuerName    string         `json:"issuer_name"`
	Notes         string         `json:"notes"`
	Status        string         `json:"status"`
	Subtotal      string         `json:"subtotal"`
	VATAmount     string         `json:"vat_amount"`
	GrandTotal    string         `json:"grand_total"`
	Items         []lineItemJSON `json:"items"`
}

const apiDateLayout = "2006-01-02"

func toInvoiceJSON(inv *model.Invoice) invoiceJSON {
	out := invoiceJSON{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		Client:        inv.Client,
		Date:          inv.Date.Format(apiDateLayout),
		DueDate:       inv.DueDate.Format(apiDateLayout),
		IssuerName:    inv.IssuerName,
		Notes:         inv.Notes,
		Status:        inv.Status,
		Subtotal:      money.Format(inv.Subtotal()),
		VATAmount:     money.Format(inv.VATAmount()),
		GrandTotal:    money.Format(inv.GrandTotal()),
		Items:         make([]lineItemJSON, 0, len(inv.Items)),
	}
	for i := range inv.Items {
		item := &inv.Items[i]
		out.Items = append(out.Items, lineItemJSON{
			ID:           item.ID,
			Description:  item.Description,
			Unit:         item.Unit,
			Quantity:     item.Quantity.StringFixed(2),
			UnitPrice:    money.Format(item.UnitPrice),
			VATRate:      item.VATRate.StringFixed(2),
			Total:        money.Format(item.Total()),
			VATAmount:    money.Format(item.VATAmount()),
			TotalWithVAT: money.Format(item.TotalWithVAT()),
		})
	}
	return out
}
