// Package settings defines the issuer configuration read by the
// rendering and e-invoice components. Settings are persisted as
// key-value rows; this package converts them to a typed struct so the
// engine never does stringly-typed lookups. Missing keys become zero
// values, never errors.
package settings

// Recognized settings keys, in storage order.
var Keys = []string{
	"company_name", "reg_number", "vat_number", "vat_enabled", "legal_address",
	"bank1_name", "bank1_swift", "bank1_account",
	"bank2_name", "bank2_swift", "bank2_account",
	"phone", "email",
	"smtp_server", "smtp_port", "smtp_username", "smtp_password", "smtp_from_email", "smtp_tls",
	"gdrive_enabled", "gdrive_folder_id", "gdrive_client_id", "gdrive_client_secret", "gdrive_refresh_token",
	"logo_base64",
	"invoice_prefix",
	"eds_enabled", "eds_api_key",
}

// DefaultPrefix is used when invoice_prefix is empty.
const DefaultPrefix = "NC"

// Settings is the issuer configuration, passed by value into the
// builder and renderer.
type Settings struct {
	CompanyName  string `json:"company_name"`
	RegNumber    string `json:"reg_number"`
	VATNumber    string `json:"vat_number"`
	VATEnabled   bool   `json:"vat_enabled"`
	LegalAddress string `json:"legal_address"`

	Bank1Name    string `json:"bank1_name"`
	Bank1SWIFT   string `json:"bank1_swift"`
	Bank1Account string `json:"bank1_account"`
	Bank2Name    string `json:"bank2_name"`
	Bank2SWIFT   string `json:"bank2_swift"`
	Bank2Account string `json:"bank2_account"`

	Phone string `json:"phone"`
	Email string `json:"email"`

	SMTPServer    string `json:"smtp_server"`
	SMTPPort      string `json:"smtp_port"`
	SMTPUsername  string `json:"smtp_username"`
	SMTPPassword  string `json:"smtp_password"`
	SMTPFromEmail string `json:"smtp_from_email"`
	SMTPTLS       bool   `json:"smtp_tls"`

	GDriveEnabled      bool   `json:"gdrive_enabled"`
	GDriveFolderID     string `json:"gdrive_folder_id"`
	GDriveClientID     string `json:"gdrive_client_id"`
	GDriveClientSecret string `json:"gdrive_client_secret"`
	GDriveRefreshToken string `json:"gdrive_refresh_token"`

	LogoBase64    string `json:"logo_base64"`
	InvoicePrefix string `json:"invoice_prefix"`

	EDSEnabled bool   `json:"eds_enabled"`
	EDSAPIKey  string `json:"eds_api_key"`
}

// Default returns the settings applied to a fresh installation.
// VAT is enabled unless explicitly turned off.
func Default() Settings {
	return Settings{
		VATEnabled:    true,
		SMTPTLS:       true,
		InvoicePrefix: DefaultPrefix,
	}
}

// Prefix returns the invoice number prefix, falling back to the
// default when unset.
func (s Settings) Prefix() string {
	if s.InvoicePrefix == "" {
		return DefaultPrefix
	}
	return s.InvoicePrefix
}

// FromMap builds Settings from raw key-value rows. Unknown keys are
// ignored; missing keys keep their defaults.
func FromMap(values map[string]string) Settings {
	s := Default()
	get := func(key string) string { return values[key] }

	s.CompanyName = get("company_name")
	s.RegNumber = get("reg_number")
	s.VATNumber = get("vat_number")
	if v, ok := values["vat_enabled"]; ok {
		s.VATEnabled = v == "true"
	}
	s.LegalAddress = get("legal_address")

	s.Bank1Name = get("bank1_name")
	s.Bank1SWIFT = get("bank1_swift")
	s.Bank1Account = get("bank1_account")
	s.Bank2Name = get("bank2_name")
	s.Bank2SWIFT = get("bank2_swift")
	s.Bank2Account = get("bank2_account")

	s.Phone = get("phone")
	s.Email = get("email")

	s.SMTPServer = get("smtp_server")
	s.SMTPPort = get("smtp_port")
	s.SMTPUsername = get("smtp_username")
	s.SMTPPassword = get("smtp_password")
	s.SMTPFromEmail = get("smtp_from_email")
	if v, ok := values["smtp_tls"]; ok {
		s.SMTPTLS = v == "true"
	}

	s.GDriveEnabled = get("gdrive_enabled") == "true"
	s.GDriveFolderID = get("gdrive_folder_id")
	s.GDriveClientID = get("gdrive_client_id")
	s.GDriveClientSecret = get("gdrive_client_secret")
	s.GDriveRefreshToken = get("gdrive_refresh_token")

	s.LogoBase64 = get("logo_base64")
	if v := get("invoice_prefix"); v != "" {
		s.InvoicePrefix = v
	}

	s.EDSEnabled = get("eds_enabled") == "true"
	s.EDSAPIKey = get("eds_api_key")

	return s
}

// ToMap converts Settings back to key-value rows for persistence.
func (s Settings) ToMap() map[string]string {
	boolStr := func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	}
	return map[string]string{
		"company_name":  s.CompanyName,
		"reg_number":    s.RegNumber,
		"vat_number":    s.VATNumber,
		"vat_enabled":   boolStr(s.VATEnabled),
		"legal_address": s.LegalAddress,

		"bank1_name":    s.Bank1Name,
		"bank1_swift":   s.Bank1SWIFT,
		"bank1_account": s.Bank1Account,
		"bank2_name":    s.Bank2Name,
		"bank2_swift":   s.Bank2SWIFT,
		"bank2_account": s.Bank2Account,

		"phone": s.Phone,
		"email": s.Email,

		"smtp_server":     s.SMTPServer,
		"smtp_port":       s.SMTPPort,
		"smtp_username":   s.SMTPUsername,
		"smtp_password":   s.SMTPPassword,
		"smtp_from_email": s.SMTPFromEmail,
		"smtp_tls":        boolStr(s.SMTPTLS),

		"gdrive_enabled":       boolStr(s.GDriveEnabled),
		"gdrive_folder_id":     s.GDriveFolderID,
		"gdrive_client_id":     s.GDriveClientID,
		"gdrive_client_secret": s.GDriveClientSecret,
		"gdrive_refresh_token": s.GDriveRefreshToken,

		"logo_base64":    s.LogoBase64,
		"invoice_prefix": s.InvoicePrefix,

		"eds_enabled": boolStr(s.EDSEnabled),
		"eds_api_key": s.EDSAPIKey,
	}
}
