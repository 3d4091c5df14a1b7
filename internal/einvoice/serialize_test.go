package einvoice_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/einvoice"
)

// parsedInvoice unmarshals the serialized output by local element name,
// exercising the documents the way a consuming system would.
type parsedInvoice struct {
	CustomizationID string `xml:"CustomizationID"`
	ProfileID       string `xml:"ProfileID"`
	ID              string `xml:"ID"`
	IssueDate       string `xml:"IssueDate"`
	DueDate         string `xml:"DueDate"`
	TypeCode        string `xml:"InvoiceTypeCode"`
	Currency        string `xml:"DocumentCurrencyCode"`
	Supplier        struct {
		Name string `xml:"Party>PartyName>Name"`
	} `xml:"AccountingSupplierParty"`
	TaxTotal struct {
		TaxAmount string `xml:"TaxAmount"`
	} `xml:"TaxTotal"`
	Payable string `xml:"LegalMonetaryTotal>PayableAmount"`
	Lines   []struct {
		ID       string `xml:"ID"`
		Quantity string `xml:"InvoicedQuantity"`
		Name     string `xml:"Item>Name"`
	} `xml:"InvoiceLine"`
}

func TestSerialize_DeclarationAndNamespaces(t *testing.T) {
	doc, err := einvoice.Build(testInvoice(), testClient(), testSettings())
	require.NoError(t, err)

	out, err := einvoice.Serialize(doc)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, xml.Header), "output must start with the XML declaration")
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Contains(t, text, `xmlns="`+einvoice.NamespaceInvoice+`"`)
	assert.Contains(t, text, `xmlns:cac="`+einvoice.NamespaceCAC+`"`)
	assert.Contains(t, text, `xmlns:cbc="`+einvoice.NamespaceCBC+`"`)
	assert.Contains(t, text, "<cbc:CustomizationID>")
	assert.Contains(t, text, "<cac:AccountingSupplierParty>")
}

func TestSerialize_RoundTrip(t *testing.T) {
	out, err := einvoice.Generate(testInvoice(), testClient(), testSettings())
	require.NoError(t, err)

	var parsed parsedInvoice
	require.NoError(t, xml.Unmarshal(out, &parsed))

	assert.Equal(t, einvoice.CustomizationID, parsed.CustomizationID)
	assert.Equal(t, einvoice.ProfileID, parsed.ProfileID)
	assert.Equal(t, "NC-000042", parsed.ID)
	assert.Equal(t, "2026-03-15", parsed.IssueDate)
	assert.Equal(t, "2026-03-29", parsed.DueDate)
	assert.Equal(t, "380", parsed.TypeCode)
	assert.Equal(t, "EUR", parsed.Currency)
	assert.Equal(t, "SIA Darbnīca", parsed.Supplier.Name)
	assert.Equal(t, "4.20", parsed.TaxTotal.TaxAmount)
	assert.Equal(t, "29.20", parsed.Payable)

	require.Len(t, parsed.Lines, 2)
	assert.Equal(t, "1", parsed.Lines[0].ID)
	assert.Equal(t, "2.00", parsed.Lines[0].Quantity)
	assert.Equal(t, "Consulting", parsed.Lines[0].Name)
	assert.Equal(t, "Hosting", parsed.Lines[1].Name)
}

func TestGenerate_Deterministic(t *testing.T) {
	inv := testInvoice()
	client := testClient()
	cfg := testSettings()

	first, err := einvoice.Generate(inv, client, cfg)
	require.NoError(t, err)
	second, err := einvoice.Generate(inv, client, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second, "regeneration of an unchanged invoice must be byte-identical")
}

func TestGenerate_PropagatesBuildError(t *testing.T) {
	_, err := einvoice.Generate(nil, testClient(), testSettings())
	assert.Error(t, err)
}
