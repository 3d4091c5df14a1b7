// Package mailer delivers invoices by email over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

// SendInvoice emails the rendered invoice PDF to the given address
// using the SMTP settings of the issuer.
func SendInvoice(inv *model.Invoice, cfg settings.Settings, pdfBytes []byte, toEmail string) error {
	if cfg.SMTPServer == "" {
		return fmt.Errorf("smtp server is not configured")
	}

	port := 587
	if cfg.SMTPPort != "" {
		p, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			return fmt.Errorf("invalid smtp port %q: %w", cfg.SMTPPort, err)
		}
		port = p
	}

	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Rēķins %s", inv.InvoiceNumber))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Labdien!\n\nPielikumā rēķins %s.\n\nAr cieņu,\n%s",
		inv.InvoiceNumber, cfg.CompanyName,
	))
	msg.Attach(
		fmt.Sprintf("%s.pdf", inv.InvoiceNumber),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdfBytes)
			return err
		}),
	)

	dialer := gomail.NewDialer(cfg.SMTPServer, port, cfg.SMTPUsername, cfg.SMTPPassword)
	if cfg.SMTPTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPServer}
	}

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send invoice email: %w", err)
	}
	log.Info().Str("invoice", inv.InvoiceNumber).Str("to", toEmail).Msg("invoice emailed")
	return nil
}
