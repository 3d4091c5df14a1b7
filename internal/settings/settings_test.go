package settings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rigalabs/invoice-manager/internal/settings"
)

func TestDefault(t *testing.T) {
	s := settings.Default()
	assert.True(t, s.VATEnabled)
	assert.True(t, s.SMTPTLS)
	assert.Equal(t, "NC", s.InvoicePrefix)
	assert.False(t, s.GDriveEnabled)
	assert.False(t, s.EDSEnabled)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "NC", settings.Settings{}.Prefix())
	assert.Equal(t, "RX", settings.Settings{InvoicePrefix: "RX"}.Prefix())
}

func TestFromMap(t *testing.T) {
	s := settings.FromMap(map[string]string{
		"company_name":   "SIA Darbnīca",
		"vat_enabled":    "false",
		"smtp_tls":       "false",
		"gdrive_enabled": "true",
		"eds_enabled":    "true",
		"invoice_prefix": "RX",
		"unknown_key":    "ignored",
	})

	assert.Equal(t, "SIA Darbnīca", s.CompanyName)
	assert.False(t, s.VATEnabled)
	assert.False(t, s.SMTPTLS)
	assert.True(t, s.GDriveEnabled)
	assert.True(t, s.EDSEnabled)
	assert.Equal(t, "RX", s.InvoicePrefix)
}

func TestFromMap_MissingKeysKeepDefaults(t *testing.T) {
	s := settings.FromMap(map[string]string{})
	assert.True(t, s.VATEnabled, "vat stays enabled unless explicitly turned off")
	assert.True(t, s.SMTPTLS)
	assert.Equal(t, "NC", s.Prefix())
}

func TestMapRoundTrip(t *testing.T) {
	original := settings.Default()
	original.CompanyName = "SIA Darbnīca"
	original.VATNumber = "LV40009876543"
	original.VATEnabled = false
	original.Bank1Account = "LV80HABA0551000000001"
	original.SMTPPort = "587"
	original.EDSEnabled = true
	original.EDSAPIKey = "key"

	assert.Equal(t, original, settings.FromMap(original.ToMap()))
}

func TestKeysMatchToMap(t *testing.T) {
	m := settings.Default().ToMap()
	assert.Len(t, m, len(settings.Keys))
	for _, key := range settings.Keys {
		_, ok := m[key]
		assert.True(t, ok, "key %s missing from ToMap", key)
	}
}
