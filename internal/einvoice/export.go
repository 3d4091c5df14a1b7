package einvoice

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// ExportFile is one named e-invoice XML payload.
type ExportFile struct {
	Name string
	Data []byte
}

// Filename returns the export file name for an invoice number.
func Filename(prefix, invoiceNumber string) string {
	return fmt.Sprintf("E-Invoice_%s-%s.xml", prefix, invoiceNumber)
}

// Bundle packages exported e-invoices: a single XML file passes
// through unchanged, multiple files become a zip archive with one XML
// entry per invoice. contentType is the media type of the returned
// bytes.
func Bundle(files []ExportFile) (data []byte, name, contentType string, err error) {
	if len(files) == 0 {
		return nil, "", "", fmt.Errorf("no e-invoice files to bundle")
	}
	if len(files) == 1 {
		return files[0].Data, files[0].Name, "application/xml", nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Name)
		if err != nil {
			zw.Close()
			return nil, "", "", err
		}
		if _, err := w.Write(f.Data); err != nil {
			zw.Close()
			return nil, "", "", err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), "e_invoices.zip", "application/zip", nil
}
