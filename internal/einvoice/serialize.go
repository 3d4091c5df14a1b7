package einvoice

import (
	"bytes"
	"encoding/xml"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

// Serialize renders the document tree as UTF-8 XML bytes with an XML
// declaration and the three fixed namespace bindings. Output is
// deterministic: serializing the same document twice yields identical
// bytes.
func Serialize(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Generate builds and serializes in one step.
func Generate(inv *model.Invoice, client *model.Client, cfg settings.Settings) ([]byte, error) {
	doc, err := Build(inv, client, cfg)
	if err != nil {
		return nil, err
	}
	return Serialize(doc)
}
