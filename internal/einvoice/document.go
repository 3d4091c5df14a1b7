// Package einvoice builds and serializes UBL 2.1 / PEPPOL BIS Billing
// 3.0 (EN 16931) e-invoice documents for electronic exchange and for
// submission to the tax-authority gateway.
package einvoice

import "encoding/xml"

// Namespace URIs and identifiers fixed by the PEPPOL BIS Billing 3.0
// profile. The consuming gateway validates against these byte-exact.
const (
	NamespaceInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NamespaceCAC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NamespaceCBC     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	CustomizationID = "urn:cen.eu:en16931:2017#compliant#urn:fdc:peppol.eu:2017:poacc:billing:3.0"
	ProfileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	// 380 = commercial invoice
	InvoiceTypeCode = "380"
	CurrencyEUR     = "EUR"

	// Tax category identifiers: S = standard rate, E = exempt
	TaxCategoryStandard = "S"
	TaxCategoryExempt   = "E"

	// 30 = credit transfer
	PaymentMeansCreditTransfer = "30"

	// EA = each (gab.)
	UnitCodeEach = "EA"

	// Endpoint ID schemes: 9936 Latvian VAT register, 0184 Latvian
	// enterprise register
	EndpointSchemeVAT      = "9936"
	EndpointSchemeRegistry = "0184"
	EndpointUnknown        = "UNKNOWN"
)

// Document is the in-memory UBL invoice tree produced by the builder
// and consumed by Serialize.
type Document struct {
	XMLName  xml.Name `xml:"Invoice"`
	Xmlns    string   `xml:"xmlns,attr"`
	XmlnsCAC string   `xml:"xmlns:cac,attr"`
	XmlnsCBC string   `xml:"xmlns:cbc,attr"`

	CustomizationID string `xml:"cbc:CustomizationID"`
	ProfileID       string `xml:"cbc:ProfileID"`
	ID              string `xml:"cbc:ID"`
	IssueDate       string `xml:"cbc:IssueDate"`
	DueDate         string `xml:"cbc:DueDate"`
	InvoiceTypeCode string `xml:"cbc:InvoiceTypeCode"`
	CurrencyCode    string `xml:"cbc:DocumentCurrencyCode"`

	SupplierParty      SupplierParty `xml:"cac:AccountingSupplierParty"`
	CustomerParty      CustomerParty `xml:"cac:AccountingCustomerParty"`
	PaymentMeans       PaymentMeans  `xml:"cac:PaymentMeans"`
	TaxTotal           TaxTotal      `xml:"cac:TaxTotal"`
	LegalMonetaryTotal MonetaryTotal `xml:"cac:LegalMonetaryTotal"`
	Lines              []InvoiceLine `xml:"cac:InvoiceLine"`
}

// SupplierParty wraps the seller party.
type SupplierParty struct {
	Party Party `xml:"cac:Party"`
}

// CustomerParty wraps the buyer party.
type CustomerParty struct {
	Party Party `xml:"cac:Party"`
}

// Party is a supplier or customer block.
type Party struct {
	EndpointID  EndpointID    `xml:"cbc:EndpointID"`
	Name        string        `xml:"cac:PartyName>cbc:Name"`
	Address     PostalAddress `xml:"cac:PostalAddress"`
	LegalEntity LegalEntity   `xml:"cac:PartyLegalEntity"`
	// Omitted entirely when the party has no VAT registration.
	TaxScheme *PartyTaxScheme `xml:"cac:PartyTaxScheme,omitempty"`
}

// EndpointID is a scheme-qualified party identifier.
type EndpointID struct {
	SchemeID string `xml:"schemeID,attr"`
	Value    string `xml:",chardata"`
}

// PostalAddress is a party address.
type PostalAddress struct {
	StreetName string `xml:"cbc:StreetName"`
	CityName   string `xml:"cbc:CityName,omitempty"`
	PostalZone string `xml:"cbc:PostalZone,omitempty"`
	Country    struct {
		IdentificationCode string `xml:"cbc:IdentificationCode"`
	} `xml:"cac:Country"`
}

// LegalEntity carries the registered name and registration number.
type LegalEntity struct {
	RegistrationName string `xml:"cbc:RegistrationName"`
	CompanyID        string `xml:"cbc:CompanyID,omitempty"`
}

// PartyTaxScheme carries the VAT registration.
type PartyTaxScheme struct {
	CompanyID string    `xml:"cbc:CompanyID"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// TaxScheme identifies the tax system, always "VAT" here.
type TaxScheme struct {
	ID string `xml:"cbc:ID"`
}

// PaymentMeans carries the credit-transfer payment instruction.
type PaymentMeans struct {
	Code    string           `xml:"cbc:PaymentMeansCode"`
	Account FinancialAccount `xml:"cac:PayeeFinancialAccount"`
}

// FinancialAccount is the payee bank account.
type FinancialAccount struct {
	ID     string `xml:"cbc:ID"`
	Branch struct {
		ID string `xml:"cbc:ID"`
	} `xml:"cac:FinancialInstitutionBranch"`
}

// Amount is a currency-qualified monetary value, already formatted to
// exactly two decimals.
type Amount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

// Quantity is a unit-qualified quantity value.
type Quantity struct {
	UnitCode string `xml:"unitCode,attr"`
	Value    string `xml:",chardata"`
}

// TaxTotal aggregates the invoice tax and its per-rate subtotals.
type TaxTotal struct {
	TaxAmount   Amount        `xml:"cbc:TaxAmount"`
	TaxSubtotal []TaxSubtotal `xml:"cac:TaxSubtotal"`
}

// TaxSubtotal is one per-rate aggregation bucket.
type TaxSubtotal struct {
	TaxableAmount Amount      `xml:"cbc:TaxableAmount"`
	TaxAmount     Amount      `xml:"cbc:TaxAmount"`
	TaxCategory   TaxCategory `xml:"cac:TaxCategory"`
}

// TaxCategory classifies a rate as standard or exempt.
type TaxCategory struct {
	ID        string    `xml:"cbc:ID"`
	Percent   string    `xml:"cbc:Percent"`
	TaxScheme TaxScheme `xml:"cac:TaxScheme"`
}

// MonetaryTotal is the LegalMonetaryTotal block.
type MonetaryTotal struct {
	LineExtensionAmount Amount `xml:"cbc:LineExtensionAmount"`
	TaxExclusiveAmount  Amount `xml:"cbc:TaxExclusiveAmount"`
	TaxInclusiveAmount  Amount `xml:"cbc:TaxInclusiveAmount"`
	PayableAmount       Amount `xml:"cbc:PayableAmount"`
}

// InvoiceLine is one billable line of the document.
type InvoiceLine struct {
	ID                  string   `xml:"cbc:ID"`
	InvoicedQuantity    Quantity `xml:"cbc:InvoicedQuantity"`
	LineExtensionAmount Amount   `xml:"cbc:LineExtensionAmount"`
	Item                Item     `xml:"cac:Item"`
	Price               Price    `xml:"cac:Price"`
}

// Item describes the billed service or product.
type Item struct {
	Name        string      `xml:"cbc:Name"`
	TaxCategory TaxCategory `xml:"cac:ClassifiedTaxCategory"`
}

// Price is the unit price block.
type Price struct {
	PriceAmount Amount `xml:"cbc:PriceAmount"`
}
