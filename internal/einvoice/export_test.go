package einvoice_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/einvoice"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "E-Invoice_NC-NC-000007.xml", einvoice.Filename("NC", "NC-000007"))
}

func TestBundle_Empty(t *testing.T) {
	_, _, _, err := einvoice.Bundle(nil)
	assert.Error(t, err)
}

func TestBundle_SingleFilePassesThrough(t *testing.T) {
	payload := []byte("<Invoice/>")
	data, name, contentType, err := einvoice.Bundle([]einvoice.ExportFile{
		{Name: "E-Invoice_NC-NC-000001.xml", Data: payload},
	})
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "E-Invoice_NC-NC-000001.xml", name)
	assert.Equal(t, "application/xml", contentType)
}

func TestBundle_MultipleFilesZipped(t *testing.T) {
	files := []einvoice.ExportFile{
		{Name: "E-Invoice_NC-NC-000001.xml", Data: []byte("<Invoice>1</Invoice>")},
		{Name: "E-Invoice_NC-NC-000002.xml", Data: []byte("<Invoice>2</Invoice>")},
	}

	data, name, contentType, err := einvoice.Bundle(files)
	require.NoError(t, err)
	assert.Equal(t, "e_invoices.zip", name)
	assert.Equal(t, "application/zip", contentType)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for i, f := range zr.File {
		assert.Equal(t, files[i].Name, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		contents, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Equal(t, files[i].Data, contents)
	}
}
